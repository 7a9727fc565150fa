package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLoginToken(ctx context.Context, id int64, loginToken string) error
}

type clientProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error)
}

type trainerProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error)
}

type AuthHandler struct {
	db                 *pgxpool.Pool
	userRepo           authUserStore
	clientProfileRepo  clientProfileReader
	trainerProfileRepo trainerProfileReader
	jwtSecret          string
}

func NewAuthHandler(
	db *pgxpool.Pool,
	userRepo authUserStore,
	clientProfileRepo clientProfileReader,
	trainerProfileRepo trainerProfileReader,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		db:                 db,
		userRepo:           userRepo,
		clientProfileRepo:  clientProfileRepo,
		trainerProfileRepo: trainerProfileRepo,
		jwtSecret:          jwtSecret,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name is required"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "Password must be at least 8 characters"})
	}
	role := models.Role(req.Role)
	if role != models.RoleTrainer && role != models.RoleClient {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to hash password"})
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hashed,
		Role:          role,
		AccountStatus: models.AccountPending,
	}

	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to start registration transaction"})
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txClientProfileRepo := repository.NewClientProfileRepository(tx)
	txTrainerProfileRepo := repository.NewTrainerProfileRepository(tx)

	if err := txUserRepo.CreateUser(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "User already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create user"})
	}

	if role == models.RoleClient {
		if err := txClientProfileRepo.CreateEmpty(c.Context(), user.ID); err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "Failed to create client profile"})
		}
	} else {
		if err := txTrainerProfileRepo.CreateEmpty(c.Context(), user.ID); err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "Failed to create trainer profile"})
		}
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to finalize registration"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"message": "Registration successful. Awaiting activation.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		// Same response as a failed lookup so callers cannot probe for accounts.
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid email or password"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)

	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to lookup user"})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid email or password"})
	}

	// Rotating the stored marker is what invalidates every previously issued token.
	loginToken := uuid.NewString()
	if err := h.userRepo.UpdateLoginToken(c.Context(), user.ID, loginToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to start session"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), string(user.Role), loginToken, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"is_active": user.IsActive,
		"token":     token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	response := fiber.Map{
		"id":                      user.ID,
		"name":                    user.Name,
		"email":                   user.Email,
		"role":                    user.Role,
		"is_active":               user.IsActive,
		"account_status":          user.AccountStatus,
		"subscription_expires_at": user.SubscriptionExpiresAt,
	}

	switch user.Role {
	case models.RoleClient:
		profile, err := h.clientProfileRepo.GetByUserID(c.Context(), user.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch profile"})
		}
		response["profile"] = profile
		response["activation_status"] = profile.EffectiveActivationStatus()
	case models.RoleTrainer:
		profile, err := h.trainerProfileRepo.GetByUserID(c.Context(), user.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch profile"})
		}
		response["profile"] = profile
		response["subscription_valid"] = services.SubscriptionCurrent(user, time.Now())
	}

	return c.JSON(response)
}
