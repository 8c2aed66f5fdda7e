package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/repospect/repospect/internal/inspections"
	"github.com/repospect/repospect/internal/repos"
	"github.com/repospect/repospect/internal/server/handlers/repositories"
	"github.com/repospect/repospect/internal/watch"
	"github.com/repospect/repospect/pkg/badgerfx"
	"github.com/repospect/repospect/pkg/openapifx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:      cfg.Storage.DataDir,
				InMemory: cfg.Storage.InMemory,
			}
		}),
		fx.Provide(func(cfg Config) repos.Config {
			return repos.Config{
				BasePath: cfg.Git.BasePath,
			}
		}),
		fx.Provide(func(cfg Config) repositories.Config {
			return repositories.Config{
				Timeout: cfg.Git.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) watch.Config {
			return watch.Config{
				Enabled: cfg.Git.Watch,
			}
		}),
		fx.Provide(func(cfg Config) inspections.Config {
			return inspections.Config{
				MaxPerRepository: cfg.Inspections.MaxPerRepository,
			}
		}),
	)
}
