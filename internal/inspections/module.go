package inspections

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"inspections",
		logger.WithNamedLogger("inspections"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewService),
	)
}
