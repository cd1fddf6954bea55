package diag

import "github.com/charmbracelet/log"

// LogSink writes every diagnostic to a structured logger.
type LogSink struct {
	Logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Raise(d Diagnostic) {
	if s == nil || s.Logger == nil {
		return
	}
	kv := []any{"kind", d.Kind.String()}
	if d.Line > 0 {
		kv = append(kv, "line", d.Line)
	}
	msg := d.Message
	if msg == "" {
		msg = d.Kind.String()
	}
	if d.Kind.Fatal() {
		s.Logger.Error(msg, kv...)
		return
	}
	s.Logger.Warn(msg, kv...)
}
