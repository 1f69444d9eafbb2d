package logsvc

import (
	"log"
	"sync/atomic"

	"github.com/darasahub/njia/core"
)

// StdLogger writes to the std library logger only; used in tests and local
// development where no reporting backend is configured.
type StdLogger struct {
	std      *log.Logger
	disabled atomic.Bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

func (l *StdLogger) Enable(enabled bool) {
	l.disabled.Store(!enabled)
}

func (l *StdLogger) print(level, msg string, args []interface{}) {
	if l.disabled.Load() {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }
func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
