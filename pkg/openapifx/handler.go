package openapifx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Handler serves the Swagger UI for a registered swag document.
type Handler struct {
	spec   *swag.Spec
	config Config
	logger *zap.Logger
}

func New(spec *swag.Spec, config Config, logger *zap.Logger) *Handler {
	if config.PublicHost != "" {
		spec.Host = config.PublicHost
	}
	if config.PublicPath != "" {
		spec.BasePath = config.PublicPath
	}

	return &Handler{
		spec:   spec,
		config: config,
		logger: logger,
	}
}

// Register mounts the UI on r, nothing is mounted when disabled.
func (h *Handler) Register(r fiber.Router) {
	if !h.config.Enabled {
		h.logger.Info("openapi disabled")
		return
	}

	r.Get("/*", swagger.New(swagger.Config{
		InstanceName: h.spec.InstanceName(),
	}))

	h.logger.Info("openapi enabled",
		zap.String("host", h.spec.Host),
		zap.String("base_path", h.spec.BasePath))
}
