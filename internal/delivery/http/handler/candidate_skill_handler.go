package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CandidateSkillHandler struct {
	uc usecase.CandidateSkillUsecase
}

type candidateSkillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Proficiency string    `json:"proficiency"`
}

func NewCandidateSkillHandler(uc usecase.CandidateSkillUsecase) *CandidateSkillHandler {
	return &CandidateSkillHandler{uc: uc}
}

func (h *CandidateSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/me/skills")
	grp.Get("", h.List)
	grp.Post("", h.Add)
	grp.Put("/:skill_id", h.Update)
	grp.Delete("/:skill_id", h.Remove)
}

func (h *CandidateSkillHandler) List(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skills, err := h.uc.List(c.Context(), seekerID)
	if err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateSkillListResponse(skills))
}

func (h *CandidateSkillHandler) Add(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req candidateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cs, err := h.uc.Add(c.Context(), seekerID, req.SkillID, matching.Proficiency(req.Proficiency))
	if err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewCandidateSkillResponse(cs))
}

func (h *CandidateSkillHandler) Update(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req candidateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cs, err := h.uc.Update(c.Context(), seekerID, skillID, matching.Proficiency(req.Proficiency))
	if err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateSkillResponse(cs))
}

func (h *CandidateSkillHandler) Remove(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Remove(c.Context(), seekerID, skillID); err != nil {
		return mapCandidateSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapCandidateSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyAdded):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already in inventory", nil, err)
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
