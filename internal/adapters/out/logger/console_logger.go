package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

// ZerologLogger implements out.LoggerPort on top of zerolog.
// Every entry carries the module name and the event name.
type ZerologLogger struct {
	base          zerolog.Logger
	defaultFields out.LogFields
	module        string
}

// NewConsoleLogger пишет человекочитаемый вывод локально и JSON в остальных окружениях
func NewConsoleLogger(timezone string, pretty bool) (*ZerologLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	var writer io.Writer = os.Stdout
	if pretty {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "2006-01-02 15:04:05.000",
		}
	}

	return NewZerologLogger(zerolog.New(writer).With().Timestamp().Logger()), nil
}

func NewZerologLogger(base zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{
		base:          base,
		defaultFields: make(out.LogFields),
	}
}

// NewNopLogger discards everything, used by tests and CLI commands.
func NewNopLogger() *ZerologLogger {
	return NewZerologLogger(zerolog.Nop())
}

func (l *ZerologLogger) WithFields(fields out.LogFields) out.LoggerPort {
	merged := make(out.LogFields, len(l.defaultFields)+len(fields))
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &ZerologLogger{
		base:          l.base,
		defaultFields: merged,
		module:        l.module,
	}
}

func (l *ZerologLogger) WithModule(module string) out.LoggerPort {
	return &ZerologLogger{
		base:          l.base,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ZerologLogger) Debug(event string, fields out.LogFields) {
	l.log(l.base.Debug(), event, fields)
}

func (l *ZerologLogger) Info(event string, fields out.LogFields) {
	l.log(l.base.Info(), event, fields)
}

func (l *ZerologLogger) Warn(event string, fields out.LogFields) {
	l.log(l.base.Warn(), event, fields)
}

func (l *ZerologLogger) Error(event string, fields out.LogFields) {
	l.log(l.base.Error(), event, fields)
}

func (l *ZerologLogger) log(entry *zerolog.Event, event string, fields out.LogFields) {
	if entry == nil {
		return
	}

	module := l.module
	if module == "" {
		module = "unknown"
	}

	entry.
		Str("module", module).
		Fields(map[string]interface{}(l.defaultFields)).
		Fields(map[string]interface{}(fields)).
		Msg(event)
}
