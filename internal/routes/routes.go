package routes

import (
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/config"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/handlers"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	clientProfileRepo := repository.NewClientProfileRepository(db)
	trainerProfileRepo := repository.NewTrainerProfileRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	paymentService := services.NewPaymentService(db, paymentRepo, settingsRepo)
	coachingService := services.NewCoachingService(db, userRepo, clientProfileRepo, paymentRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, clientProfileRepo, trainerProfileRepo, cfg.JWTSecret)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	coachingHandler := handlers.NewCoachingHandler(coachingService)
	profileHandler := handlers.NewProfileHandler(trainerProfileRepo)
	adminHandler := handlers.NewAdminHandler(db, userRepo, settingsRepo)

	authRequired := middleware.AuthRequired(cfg.JWTSecret, userRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)

	v1 := api.Group("/v1", authRequired)

	payments := v1.Group("/payments")
	payments.Post("", paymentHandler.Submit)
	payments.Get("/mine", paymentHandler.MyPayments)
	payments.Get("/pending", middleware.RequireRole(models.RoleAdmin), paymentHandler.Pending)
	payments.Put("/:id/approve", middleware.RequireRole(models.RoleAdmin), paymentHandler.Approve)
	payments.Put("/:id/reject", middleware.RequireRole(models.RoleAdmin), paymentHandler.Reject)

	trainers := v1.Group("/trainers", middleware.RequireRole(models.RoleTrainer))
	trainers.Get("/profile", profileHandler.GetTrainerProfile)
	trainers.Put("/profile", profileHandler.UpdateTrainerProfile)

	// Roster mutations are paid trainer features; reads of an owned client are not
	// re-gated on the subscription so an expired trainer can still see history.
	clients := v1.Group("/clients", middleware.RequireRole(models.RoleTrainer))
	clients.Get("", coachingHandler.ListClients)
	clients.Post("", middleware.RequireActiveTrainer(), coachingHandler.AddClient)
	clients.Delete("/:clientId", middleware.RequireActiveTrainer(), coachingHandler.RemoveClient)

	coaching := v1.Group("/coaching")
	coaching.Get("/client/:clientId", coachingHandler.OwnershipGuard, coachingHandler.GetClientDetail)
	coaching.Put("/client/:clientId/stats",
		middleware.RequireRole(models.RoleTrainer), middleware.RequireActiveTrainer(),
		coachingHandler.OwnershipGuard, coachingHandler.UpdateBodyStats)
	coaching.Put("/client/:clientId/questionnaire",
		coachingHandler.OwnershipGuard, coachingHandler.UpdateQuestionnaire)

	admin := v1.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/toggle-active", adminHandler.ToggleActive)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)

	if cfg.DocsEnabled() {
		api.Get("/docs", docsHandler(app))
	}
}
