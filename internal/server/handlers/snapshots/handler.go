package snapshots

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/repospect/repospect/internal/inspections"
	"github.com/repospect/repospect/internal/server/handlers/repositories"
	"github.com/repospect/repospect/internal/server/validation"
	"go.uber.org/zap"
)

type Handler struct {
	inspectionsSvc *inspections.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(inspectionsSvc *inspections.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		inspectionsSvc: inspectionsSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/snapshots")

	r.Use(h.errorsHandler)
	r.Get("/:id", validation.DecorateWithParamsEx(h.validator, h.get))
}

//	@Summary		Get a status snapshot
//	@Description	Get a recorded working-tree status by its ID
//	@Tags			snapshots
//	@Produce		json
//	@Param			id	path		string	true	"Snapshot ID"
//	@Success		200	{object}	repositories.SnapshotResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/snapshots/{id} [get]
//
// Get snapshot.
func (h *Handler) get(c *fiber.Ctx, params *GetParams) error {
	snapshot, err := h.inspectionsSvc.Get(c.UserContext(), uuid.MustParse(params.ID))
	if err != nil {
		return fmt.Errorf("failed to get snapshot: %w", err)
	}

	return c.JSON(repositories.NewSnapshotResponse(*snapshot))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, inspections.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
