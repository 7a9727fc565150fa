package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type adminUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type settingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, input repository.SettingsInput) (*models.Settings, error)
}

type AdminHandler struct {
	db           *pgxpool.Pool
	userRepo     adminUserStore
	settingsRepo settingsStore
}

func NewAdminHandler(db *pgxpool.Pool, userRepo adminUserStore, settingsRepo settingsStore) *AdminHandler {
	return &AdminHandler{
		db:           db,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	total, err := h.userRepo.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to list users"})
	}
	users, err := h.userRepo.List(c.Context(), limit, (page-1)*limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to list users"})
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *AdminHandler) ToggleActive(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch user"})
	}

	if err := h.userRepo.SetActive(c.Context(), userID, !user.IsActive); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user"})
	}

	return c.JSON(fiber.Map{
		"message":   "User updated",
		"is_active": !user.IsActive,
	})
}

// DeleteUser removes an account with its owned profiles. Deleting a trainer only
// detaches their clients; the client accounts survive with trainer_id nulled out.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch user"})
	}

	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txClientProfileRepo := repository.NewClientProfileRepository(tx)

	if user.Role == models.RoleTrainer {
		if err := txClientProfileRepo.ClearTrainer(c.Context(), userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
		}
	}
	if err := txUserRepo.Delete(c.Context(), userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

type settingsRequest struct {
	SubscriptionDurationDays *int     `json:"subscription_duration_days"`
	TrainerSubscriptionPrice *float64 `json:"trainer_subscription_price"`
	ClientActivationPrice    *float64 `json:"client_activation_price"`
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.SubscriptionDurationDays != nil && *req.SubscriptionDurationDays <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Duration must be positive"})
	}
	if req.TrainerSubscriptionPrice != nil && *req.TrainerSubscriptionPrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Price must be positive"})
	}
	if req.ClientActivationPrice != nil && *req.ClientActivationPrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Price must be positive"})
	}

	settings, err := h.settingsRepo.Update(c.Context(), repository.SettingsInput{
		SubscriptionDurationDays: req.SubscriptionDurationDays,
		TrainerSubscriptionPrice: req.TrainerSubscriptionPrice,
		ClientActivationPrice:    req.ClientActivationPrice,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update settings"})
	}
	return c.JSON(settings)
}
