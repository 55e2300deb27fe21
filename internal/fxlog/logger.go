package fxlog

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"log/slog"
)

// Logger routes fx lifecycle events to slog.
func Logger() fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.SlogLogger{Logger: slog.With(slog.String("component", "fx"))}
	})
}
