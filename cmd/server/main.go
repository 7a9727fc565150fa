package main

import (
	"context"
	"errors"
	"log"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/config"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/database"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/routes"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 3. Seed singleton settings and the default admin
	if err := bootstrap(context.Background(), cfg, db); err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	// 4. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, db)

	// 5. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func bootstrap(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) error {
	settingsRepo := repository.NewSettingsRepository(db)
	if err := settingsRepo.EnsureDefaults(ctx,
		cfg.SubscriptionDurationDays,
		cfg.TrainerSubscriptionPrice,
		cfg.ClientActivationPrice,
	); err != nil {
		return err
	}

	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	_, err := userRepo.GetByEmail(ctx, cfg.DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:          cfg.DefaultAdminName,
		Email:         cfg.DefaultAdminEmail,
		PasswordHash:  hashed,
		Role:          models.RoleAdmin,
		AccountStatus: models.AccountActive,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("Seeded default admin %s", cfg.DefaultAdminEmail)
	return nil
}
