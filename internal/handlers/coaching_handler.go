package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type coachingWorkflow interface {
	VerifyClientOwnership(ctx context.Context, actor models.Actor, clientID int64) (*models.ClientProfile, error)
	GetClientDetail(ctx context.Context, actor models.Actor, clientID int64) (*services.ClientDetail, error)
	AddClientByEmail(ctx context.Context, trainer models.Actor, email string) (*models.ClientProfile, error)
	RemoveClient(ctx context.Context, actor models.Actor, clientID int64) error
	ListClients(ctx context.Context, trainerID int64) ([]models.ClientProfile, error)
	UpdateBodyStats(ctx context.Context, actor models.Actor, clientID int64, input repository.BodyStatsInput) (*models.ClientProfile, error)
	UpdateQuestionnaire(ctx context.Context, actor models.Actor, clientID int64, input repository.QuestionnaireInput) (*models.ClientProfile, error)
}

type CoachingHandler struct {
	service coachingWorkflow
}

func NewCoachingHandler(service coachingWorkflow) *CoachingHandler {
	return &CoachingHandler{service: service}
}

// OwnershipGuard is the route-level half of the double ownership check. The service
// re-applies the same predicate on the profile it loads, so neither layer alone is
// trusted with the decision.
func (h *CoachingHandler) OwnershipGuard(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client id"})
	}

	if _, err := h.service.VerifyClientOwnership(c.Context(), actor, clientID); err != nil {
		return coachingError(c, err, "Failed to resolve client")
	}

	return c.Next()
}

func (h *CoachingHandler) GetClientDetail(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client id"})
	}

	detail, err := h.service.GetClientDetail(c.Context(), actor, clientID)
	if err != nil {
		return coachingError(c, err, "Failed to fetch client")
	}

	return c.JSON(detail)
}

type addClientRequest struct {
	Email string `json:"email"`
}

func (h *CoachingHandler) AddClient(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	var req addClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email format"})
	}

	profile, err := h.service.AddClientByEmail(c.Context(), actor, strings.ToLower(parsedEmail.Address))
	if err != nil {
		if errors.Is(err, services.ErrAlreadyAssigned) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Client is already assigned to another trainer"})
		}
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Not a client account"})
		}
		return coachingError(c, err, "Failed to add client")
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *CoachingHandler) ListClients(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clients, err := h.service.ListClients(c.Context(), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to list clients"})
	}
	return c.JSON(fiber.Map{"clients": clients})
}

func (h *CoachingHandler) RemoveClient(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client id"})
	}

	if err := h.service.RemoveClient(c.Context(), actor, clientID); err != nil {
		return coachingError(c, err, "Failed to remove client")
	}
	return c.JSON(fiber.Map{"message": "Client removed"})
}

type bodyStatsRequest struct {
	CurrentWeightKG *float64 `json:"current_weight_kg"`
	TargetWeightKG  *float64 `json:"target_weight_kg"`
	HeightCM        *float64 `json:"height_cm"`
	BodyFatPercent  *float64 `json:"body_fat_percent"`
}

func (h *CoachingHandler) UpdateBodyStats(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client id"})
	}

	var req bodyStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if validationErr := validateBodyStats(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": validationErr})
	}

	profile, err := h.service.UpdateBodyStats(c.Context(), actor, clientID, repository.BodyStatsInput{
		CurrentWeightKG: req.CurrentWeightKG,
		TargetWeightKG:  req.TargetWeightKG,
		HeightCM:        req.HeightCM,
		BodyFatPercent:  req.BodyFatPercent,
	})
	if err != nil {
		return coachingError(c, err, "Failed to update body stats")
	}
	return c.JSON(profile)
}

type questionnaireRequest struct {
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	FitnessGoal   *string `json:"fitness_goal"`
	ActivityLevel *string `json:"activity_level"`
	MedicalNotes  *string `json:"medical_notes"`
}

func (h *CoachingHandler) UpdateQuestionnaire(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	clientID, err := parseClientID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client id"})
	}

	var req questionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Age != nil && (*req.Age < 10 || *req.Age > 120) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Age out of range"})
	}

	profile, err := h.service.UpdateQuestionnaire(c.Context(), actor, clientID, repository.QuestionnaireInput{
		Age:           req.Age,
		Gender:        req.Gender,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
		MedicalNotes:  req.MedicalNotes,
	})
	if err != nil {
		return coachingError(c, err, "Failed to update questionnaire")
	}
	return c.JSON(profile)
}

func parseClientID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("clientId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid client id")
	}
	return id, nil
}

func validateBodyStats(req bodyStatsRequest) string {
	for _, weight := range []*float64{req.CurrentWeightKG, req.TargetWeightKG} {
		if weight != nil && (*weight <= 0 || *weight > 500) {
			return "Weight out of range"
		}
	}
	if req.HeightCM != nil && (*req.HeightCM <= 0 || *req.HeightCM > 300) {
		return "Height out of range"
	}
	if req.BodyFatPercent != nil && (*req.BodyFatPercent < 0 || *req.BodyFatPercent > 100) {
		return "Body fat out of range"
	}
	return ""
}

func coachingError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	case errors.Is(err, services.ErrForbidden):
		// Terse on purpose: do not reveal whether the client exists for someone else.
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": fallback})
}
