package routes

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	foodHandler *handlers.FoodHandler,
	mealHandler *handlers.MealHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Static segments are registered before /:id so they are not parsed as ids.
	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/search", userHandler.Search)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/meals/count", userHandler.CountMeals)
	users.Get("/:id/meals-with-foods", userHandler.MealsWithFoods)

	foods := app.Group("/foods")
	foods.Post("/", foodHandler.Create)
	foods.Get("/", foodHandler.List)
	foods.Get("/search", foodHandler.Search)
	foods.Get("/:id", foodHandler.Get)
	foods.Put("/:id", foodHandler.Update)
	foods.Delete("/:id", foodHandler.Delete)
	foods.Get("/:id/meals/count", foodHandler.CountMeals)

	meals := app.Group("/meals")
	meals.Post("/", mealHandler.Create)
	meals.Get("/", mealHandler.List)
	meals.Get("/by_date", mealHandler.ListByDate)
	meals.Get("/:id", mealHandler.Get)
	meals.Put("/:id", mealHandler.Update)
	meals.Delete("/:id", mealHandler.Delete)
	meals.Get("/:id/foods", mealHandler.ListFoods)
	meals.Get("/:id/foods/count", mealHandler.CountFoods)
	meals.Get("/:id/user", mealHandler.User)
}
