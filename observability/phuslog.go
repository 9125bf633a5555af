package observability

import (
	"io"

	"github.com/phuslu/log"
)

// phusluLogger adapts a phuslu logger to the Logger interface. Fields added
// via With are replayed on every entry.
type phusluLogger struct {
	l      *log.Logger
	fields []Field
}

// NewConsoleLogger returns a Logger writing human-readable lines to w.
// Set debug to lower the threshold from info to debug.
func NewConsoleLogger(w io.Writer, debug bool) Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return &phusluLogger{l: &log.Logger{
		Level:  level,
		Writer: &log.ConsoleWriter{Writer: w, ColorOutput: false},
	}}
}

func (p *phusluLogger) Debug(msg string, fields ...Field) { p.emit(p.l.Debug(), msg, fields) }
func (p *phusluLogger) Info(msg string, fields ...Field)  { p.emit(p.l.Info(), msg, fields) }
func (p *phusluLogger) Warn(msg string, fields ...Field)  { p.emit(p.l.Warn(), msg, fields) }
func (p *phusluLogger) Error(msg string, fields ...Field) { p.emit(p.l.Error(), msg, fields) }

func (p *phusluLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(p.fields)+len(fields))
	merged = append(merged, p.fields...)
	merged = append(merged, fields...)
	return &phusluLogger{l: p.l, fields: merged}
}

func (p *phusluLogger) emit(e *log.Entry, msg string, fields []Field) {
	for _, f := range p.fields {
		e = appendField(e, f)
	}
	for _, f := range fields {
		e = appendField(e, f)
	}
	e.Msg(msg)
}

func appendField(e *log.Entry, f Field) *log.Entry {
	switch v := f.Value().(type) {
	case string:
		return e.Str(f.Key(), v)
	case int:
		return e.Int(f.Key(), v)
	case float64:
		return e.Float64(f.Key(), v)
	case error:
		return e.AnErr(f.Key(), v)
	default:
		return e.Any(f.Key(), v)
	}
}
