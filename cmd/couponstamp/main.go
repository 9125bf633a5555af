// Command couponstamp overlays payment annotations, a signature image and
// citation text onto an image or PDF of a remittance coupon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrnam205/autotender/compositor"
	"github.com/mrnam205/autotender/config"
	"github.com/mrnam205/autotender/fonts"
	"github.com/mrnam205/autotender/observability"
	"github.com/mrnam205/autotender/ocr"
	_ "github.com/mrnam205/autotender/ocr/tesseract"
)

type options struct {
	inPath     string
	outPath    string
	configPath string
	fontPath   string
	useOCR     bool
	languages  []string
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "couponstamp: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "couponstamp: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: couponstamp -in coupon.png -out annotated.png -config annotations.yaml\n")
		flag.PrintDefaults()
	}
	in := flag.String("in", "", "Source document (png/jpg/bmp/tiff/webp/pdf)")
	out := flag.String("out", "", "Destination path for the annotated document")
	cfg := flag.String("config", "", "Annotation config file (yaml or json)")
	font := flag.String("font", "", "TrueType/OpenType font file for raster text (default: embedded Go fonts)")
	useOCR := flag.Bool("ocr", false, "Resolve match-driven placements with Tesseract OCR")
	lang := flag.String("lang", "eng", "Comma-separated OCR language hints")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *in == "" || *out == "" || *cfg == "" {
		flag.Usage()
		return options{}, fmt.Errorf("-in, -out and -config are required")
	}
	opts.inPath = *in
	opts.outPath = *out
	opts.configPath = *cfg
	opts.fontPath = *font
	opts.useOCR = *useOCR
	opts.verbose = *verbose
	for _, l := range strings.Split(*lang, ",") {
		if l = strings.TrimSpace(l); l != "" {
			opts.languages = append(opts.languages, l)
		}
	}
	return opts, nil
}

func run(opts options) error {
	logger := observability.NewConsoleLogger(os.Stderr, opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	spec, err := cfg.Spec()
	if err != nil {
		return err
	}

	fontSource := fonts.NewSource()
	if opts.fontPath != "" {
		fontSource, err = fonts.Load(opts.fontPath)
		if err != nil {
			return err
		}
	}

	copts := []compositor.Option{
		compositor.WithFonts(fontSource),
		compositor.WithLogger(logger),
	}
	if opts.useOCR {
		copts = append(copts, compositor.WithOCR(ocr.DefaultEngine(), opts.languages...))
	}

	c := compositor.New(copts...)
	return c.AnnotateFile(context.Background(), opts.inPath, opts.outPath, spec)
}
