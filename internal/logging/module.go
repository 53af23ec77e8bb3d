package logging

import (
	"context"

	"receipt_check/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"logging",
		fx.Provide(func(cfg config.Config) (*FileSink, error) {
			return OpenFileSink(cfg.LogFile, cfg.Debug)
		}),
		fx.Invoke(func(lc fx.Lifecycle, sink *FileSink) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					return sink.Close()
				},
			})
		}),
	)
}

// Decorate tees every *zap.Logger in the app into the file sink. Decorations
// are scoped to the fx module they are declared in, so this belongs at the
// root of the application.
func Decorate() fx.Option {
	return fx.Decorate(func(base *zap.Logger, sink *FileSink) *zap.Logger {
		return sink.Attach(base)
	})
}
