package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	DataDir  string `koanf:"data_dir"`
	InMemory bool   `koanf:"in_memory"`
}

type gitConfig struct {
	BasePath string        `koanf:"base_path"`
	Timeout  time.Duration `koanf:"timeout"`
	Watch    bool          `koanf:"watch"`
}

type inspectionsConfig struct {
	MaxPerRepository int `koanf:"max_per_repository"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage     storageConfig     `koanf:"storage"`
	Git         gitConfig         `koanf:"git"`
	Inspections inspectionsConfig `koanf:"inspections"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
			OpenAPI: openAPIConfig{
				Enabled: true,
			},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Git: gitConfig{
			BasePath: "./repos",
			Timeout:  30 * time.Second,
			Watch:    true,
		},

		Inspections: inspectionsConfig{
			MaxPerRepository: 50,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
