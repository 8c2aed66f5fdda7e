package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/repospect/repospect/internal/inspections"
	"github.com/repospect/repospect/internal/repos"
	"github.com/repospect/repospect/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	reposSvc       *repos.Service
	inspectionsSvc *inspections.Service

	config    Config
	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	reposSvc *repos.Service,
	inspectionsSvc *inspections.Service,
	config Config,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		reposSvc:       reposSvc,
		inspectionsSvc: inspectionsSvc,

		config:    config,
		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/repositories")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/:name/log", validation.DecorateWithQueryEx(h.validator, h.log))
	r.Get("/:name/status", h.status)
	r.Get("/:name/snapshots", validation.DecorateWithQueryEx(h.validator, h.snapshots))
}

//	@Summary		Find git repositories
//	@Description	Find git repositories in the base directory. Only immediate subdirectories are considered.
//	@Tags			repositories
//	@Produce		json
//	@Success		200	{array}		string
//	@Failure		500	{object}	fiberfx.ErrorResponse
//	@Router			/repositories [get]
//
// List repositories.
func (h *Handler) list(c *fiber.Ctx) error {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	names, err := h.reposSvc.ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	return c.JSON(names)
}

//	@Summary		Get the git log
//	@Description	Get the git log for the given repository. Latest commits are returned first.
//	@Tags			repositories
//	@Produce		json
//	@Param			name		path		string	true	"Folder name of the git repository"
//	@Param			max_entries	query		int		false	"Positive number limits how many commits are returned, zero or negative returns the full log"
//	@Success		200			{array}		CommitEntryResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Failure		404			{object}	fiberfx.ErrorResponse
//	@Failure		504			{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/log [get]
//
// Get commit log.
func (h *Handler) log(c *fiber.Ctx, req *LogQuery) error {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	entries, err := h.reposSvc.GetLog(ctx, repositoryName(c), req.MaxEntries)
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}

	return c.JSON(lo.Map(entries, newCommitEntryResponse))
}

//	@Summary		Get the working-tree status
//	@Description	Return the working-tree status of the given repository. The status is recorded as a snapshot.
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Folder name of the git repository"
//	@Success		200		{object}	StatusResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Failure		504		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/status [get]
//
// Get working-tree status.
func (h *Handler) status(c *fiber.Ctx) error {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	name := repositoryName(c)

	status, err := h.reposSvc.GetStatus(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if _, recErr := h.inspectionsSvc.Record(ctx, name, status); recErr != nil {
		h.logger.Warn("status not recorded", zap.String("repository", name), zap.Error(recErr))
	}

	return c.JSON(NewStatusResponse(status))
}

//	@Summary		List status snapshots
//	@Description	List recorded working-tree statuses of the given repository, newest first.
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Folder name of the git repository"
//	@Param			limit	query		int		false	"Maximum number of snapshots, zero returns all"
//	@Success		200		{array}		SnapshotResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/repositories/{name}/snapshots [get]
//
// List snapshots.
func (h *Handler) snapshots(c *fiber.Ctx, req *SnapshotsQuery) error {
	snapshots, err := h.inspectionsSvc.List(c.UserContext(), repositoryName(c), req.Limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	return c.JSON(lo.Map(snapshots, newSnapshotResponse))
}

func (h *Handler) withTimeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.config.Timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}

	return context.WithTimeout(c.UserContext(), h.config.Timeout)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repos.ErrNotARepository):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func repositoryName(c *fiber.Ctx) string {
	return strings.Clone(c.Params("name"))
}
