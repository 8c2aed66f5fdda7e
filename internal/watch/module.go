package watch

import (
	"context"

	"github.com/go-core-fx/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/repospect/repospect/internal/repos"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"watch",
		logger.WithNamedLogger("watch"),
		fx.Provide(func(svc *repos.Service, logger *zap.Logger) *Watcher {
			return NewWatcher(svc, prometheus.DefaultRegisterer, logger)
		}),
		fx.Invoke(func(config Config, watcher *Watcher, logger *zap.Logger, lc fx.Lifecycle) {
			if !config.Enabled {
				logger.Info("base path watcher disabled")
				return
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return watcher.Start(ctx)
				},
				OnStop: func(_ context.Context) error {
					return watcher.Stop()
				},
			})
		}),
	)
}
