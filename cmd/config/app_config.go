package config

import (
	"os"
	"time"

	"pantry-tracker/internal/api/handlers"
	"pantry-tracker/internal/api/routes"
	"pantry-tracker/internal/middleware"
	"pantry-tracker/internal/utils"
	"pantry-tracker/internal/utils/storage"
	"pantry-tracker/pkg/importer"
	"pantry-tracker/pkg/jwt"
	"pantry-tracker/pkg/pantry"
	"pantry-tracker/pkg/recipe"
	"pantry-tracker/pkg/report"
	"pantry-tracker/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	pantryService := pantry.NewPantryService(pantryRepository, userRepository, s3)
	importerService := importer.NewImporterService(pantryService)
	completionClient := recipe.NewCompletionClient()
	recipeService := recipe.NewRecipeService(recipeRepository, completionClient)
	reportService := report.NewReportService(pantryService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, reportService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	importHandler := handlers.NewImportHandler(importerService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PantryHandler: pantryHandler,
		RecipeHandler: recipeHandler,
		ImportHandler: importHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
