package routes

import (
	"pantry-tracker/internal/api/handlers"
	"pantry-tracker/internal/middleware"
	"pantry-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PantryHandler handlers.PantryHandler
	RecipeHandler handlers.RecipeHandler
	ImportHandler handlers.ImportHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.PantryItems()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) PantryItems() {
	pantryItems := c.App.Group("/api/v1/pantry-items", c.Middleware.AuthMiddleware(c.JWTService))
	pantryItems.Get("/dashboard", c.PantryHandler.GetDashboard)
	pantryItems.Get("/analysis", c.PantryHandler.GetAnalysis)
	pantryItems.Get("/report", c.PantryHandler.DownloadReport)

	pantryItems.Post("", c.PantryHandler.AddItem)
	pantryItems.Get("", c.PantryHandler.GetItems)
	pantryItems.Post("/image", c.PantryHandler.UploadItemImage)
	pantryItems.Post("/import", c.ImportHandler.ImportSpreadsheet)
	pantryItems.Post("/expiry-digest", c.PantryHandler.SendExpiryDigest)

	pantryItems.Get("/:id", c.PantryHandler.GetItemDetails)
	pantryItems.Patch("/:id", c.PantryHandler.UpdateItem)
	pantryItems.Delete("/:id", c.PantryHandler.DeleteItem)
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/api/generate-recipe", auth, c.RecipeHandler.GenerateRecipe)
	c.App.Post("/api/suggest-recipes", auth, c.RecipeHandler.SuggestRecipes)

	recipes := c.App.Group("/api/v1/recipes", auth)
	recipes.Post("", c.RecipeHandler.SaveRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Patch("/:id/tags", c.RecipeHandler.UpdateRecipeTags)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
