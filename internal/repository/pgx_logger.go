package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

var traceLevels = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// traceLogger writes pgx query tracing through zerolog under component=pgx.
type traceLogger struct {
	log zerolog.Logger
}

func newTraceLogger(base zerolog.Logger) *traceLogger {
	return &traceLogger{log: base.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger. Unknown pgx levels are written at info with the raw level attached.
func (l *traceLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	zl, known := traceLevels[level]
	if !known {
		zl = zerolog.InfoLevel
	}
	ev := l.log.WithLevel(zl)
	if !known {
		ev = ev.Str("pgx_log_level", level.String())
	}
	if level == tracelog.LogLevelTrace {
		ev = liftStatement(ev, data)
	}
	if len(data) > 0 {
		ev = ev.Fields(data)
	}
	ev.Msg(msg)
}

// liftStatement moves the statement and its arguments out of data into their own fields.
func liftStatement(ev *zerolog.Event, data map[string]any) *zerolog.Event {
	if sql, ok := data["sql"].(string); ok {
		ev = ev.Str("sql", sql)
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		ev = ev.Interface("args", args)
		delete(data, "args")
	}
	return ev
}
