package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/fiberfx/health"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/repospect/repospect/internal/config"
	"github.com/repospect/repospect/internal/inspections"
	"github.com/repospect/repospect/internal/repos"
	"github.com/repospect/repospect/internal/server"
	"github.com/repospect/repospect/internal/watch"
	"github.com/repospect/repospect/pkg/badgerfx"
	"github.com/repospect/repospect/pkg/openapifx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		openapifx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() health.Version { return health.Version{Version: "1.0.0", ReleaseID: 1} }),
		repos.Module(),
		inspections.Module(),
		watch.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, svc *repos.Service, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 Repospect starting up", zap.String("base_path", svc.BasePath()))
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 Repospect shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
