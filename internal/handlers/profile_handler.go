package handlers

import (
	"context"
	"errors"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type trainerProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error)
	Update(ctx context.Context, userID int64, input repository.TrainerProfileInput) (*models.TrainerProfile, error)
}

// ProfileHandler serves the trainer's own profile (bio, specialization, the QR code
// clients pay against). Client profile reads/writes go through the coaching handler
// because they are ownership-gated.
type ProfileHandler struct {
	trainerProfileRepo trainerProfileStore
}

func NewProfileHandler(trainerProfileRepo trainerProfileStore) *ProfileHandler {
	return &ProfileHandler{trainerProfileRepo: trainerProfileRepo}
}

func (h *ProfileHandler) GetTrainerProfile(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	profile, err := h.trainerProfileRepo.GetByUserID(c.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch profile"})
	}
	return c.JSON(profile)
}

type trainerProfileRequest struct {
	Specialization  *string `json:"specialization"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years"`
	PaymentQRURL    *string `json:"payment_qr_url"`
}

func (h *ProfileHandler) UpdateTrainerProfile(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	var req trainerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.ExperienceYears != nil && (*req.ExperienceYears < 0 || *req.ExperienceYears > 80) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Experience years out of range"})
	}

	profile, err := h.trainerProfileRepo.Update(c.Context(), actor.ID, repository.TrainerProfileInput{
		Specialization:  req.Specialization,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		PaymentQRURL:    req.PaymentQRURL,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update profile"})
	}
	return c.JSON(profile)
}
