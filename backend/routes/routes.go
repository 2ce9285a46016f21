package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mitboard/backend/config"
	"mitboard/backend/controllers"
	"mitboard/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Skills routes
	skillsController := controllers.NewSkillsController(db, cfg)
	skills := app.Group("/api/skills", authMiddleware)
	skills.Get("/", skillsController.GetSkills)
	skills.Post("/", skillsController.CreateSkill)
	skills.Put("/:id", skillsController.UpdateSkill)
	skills.Delete("/:id", skillsController.DeleteSkill)

	// Check-in routes
	checkinsController := controllers.NewCheckinsController(db, cfg)
	checkins := app.Group("/api/checkins", authMiddleware)
	checkins.Get("/", checkinsController.GetCheckinByDate)
	checkins.Post("/", checkinsController.CreateCheckin)
	checkins.Get("/:id", checkinsController.GetCheckin)
	checkins.Put("/:id", checkinsController.UpdateCheckin)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)

	// Summary routes
	summaryController := controllers.NewSummaryController(db, cfg)
	summary := app.Group("/api/summary", authMiddleware)
	summary.Get("/monthly", summaryController.GetMonthlySummary)
	summary.Get("/weekly", summaryController.GetWeeklySummary)
}
