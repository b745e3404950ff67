package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/application"
	"talent-match/internal/domain/user"
	"talent-match/internal/pkg/response"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type bulkTransitionRequest struct {
	ApplicationIDs []uuid.UUID `json:"application_ids"`
	Status         string      `json:"status"`
	Notes          string      `json:"notes"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/applications")
	grp.Post("", h.Apply)
	grp.Get("/:application_id", h.Get)
	grp.Get("/:application_id/history", h.History)
	grp.Post("/:application_id/status", h.Transition)
	grp.Post("/:application_id/advance", h.Advance)
	grp.Post("/bulk-status", h.BulkTransition)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.Apply(c.Context(), actor.ID, req.JobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) History(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entries, err := h.uc.History(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHistoryResponse(entries))
}

func (h *ApplicationHandler) Transition(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req transitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	target, err := application.Parse(req.Status)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown status", nil, err)
	}

	app, err := h.uc.RequestTransition(c.Context(), id, target, actor, req.Notes)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Advance(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("application_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.Advance(c.Context(), id, actor)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

// BulkTransition reports outcomes per item; the call itself only fails when
// every item failed.
func (h *ApplicationHandler) BulkTransition(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req bulkTransitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(req.ApplicationIDs) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "No applications selected", nil, nil)
	}

	target, err := application.Parse(req.Status)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown status", nil, err)
	}

	outcomes := h.uc.BulkTransition(c.Context(), req.ApplicationIDs, target, actor, req.Notes)

	failed := 0
	for _, o := range outcomes {
		if !o.OK {
			failed++
		}
	}
	data := dto.NewBulkOutcomeResponse(outcomes)
	if failed == len(outcomes) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "All transitions failed", data, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func actorFromCtx(c fiber.Ctx) (usecase.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(user.Role)
	return usecase.Actor{ID: userID, Role: role}, nil
}

func mapApplicationUsecaseError(err error) error {
	var invalid *application.InvalidTransitionError
	switch {
	case errors.As(err, &invalid):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, invalid.Error(), nil, err)
	case errors.Is(err, application.ErrInvalidTransition), errors.Is(err, application.ErrUnknownStatus):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", nil, err)
	case errors.Is(err, repository.ErrConcurrentModification):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrAdvanceUnavailable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No forward transition available", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
