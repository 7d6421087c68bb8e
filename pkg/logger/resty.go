package logger

import "fmt"

// RestyLogger satisfies resty's Logger interface.
type RestyLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

type restyAdapter struct {
	l Logger
}

// Resty adapts l for resty.Client.SetLogger.
func Resty(l Logger) RestyLogger {
	if l == nil {
		l = Nop()
	}
	return restyAdapter{l: l.With("component", "http")}
}

func (a restyAdapter) Errorf(format string, v ...any) { a.l.Error(fmt.Sprintf(format, v...)) }
func (a restyAdapter) Warnf(format string, v ...any)  { a.l.Warn(fmt.Sprintf(format, v...)) }
func (a restyAdapter) Debugf(format string, v ...any) { a.l.Debug(fmt.Sprintf(format, v...)) }
