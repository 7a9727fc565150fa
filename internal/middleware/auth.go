package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

const (
	ActorKey = "actor"
	UserKey  = "current_user"
)

type userLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthRequired validates the bearer token and enforces single-device semantics: the
// marker embedded in the token must match the marker stored on the user row, which
// rotates on every login. Tokens minted before the latest login therefore fail here.
func AuthRequired(secret string, users userLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "token failed",
			})
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "token failed",
			})
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to authenticate",
			})
		}

		if user.LoginToken == nil || *user.LoginToken != claims.LoginToken {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Session expired. Logged in on another device.",
			})
		}

		c.Locals(ActorKey, models.Actor{ID: user.ID, Role: user.Role})
		c.Locals(UserKey, user)

		return c.Next()
	}
}

func ActorFromCtx(c *fiber.Ctx) (models.Actor, bool) {
	actor, ok := c.Locals(ActorKey).(models.Actor)
	return actor, ok
}

func UserFromCtx(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(UserKey).(*models.User)
	return user, ok
}

// RequireRole gates a route on the caller's role. Admin passes any gate that admits
// trainers; the reverse never holds.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
			if role == models.RoleTrainer && actor.IsAdmin() {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": roleDeniedMessage(roles),
		})
	}
}

func roleDeniedMessage(roles []models.Role) string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return "Access denied: requires " + strings.Join(names, " or ") + " role"
}

// RequireActiveTrainer gates paid trainer features. The expiry comparison happens
// here, at read time; an ACTIVE account whose window lapsed is turned away.
func RequireActiveTrainer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}
		if user.Role == models.RoleAdmin {
			return c.Next()
		}
		if user.Role != models.RoleTrainer {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied: requires trainer role",
			})
		}
		if !services.SubscriptionCurrent(user, time.Now()) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Subscription inactive or expired",
			})
		}
		return c.Next()
	}
}
