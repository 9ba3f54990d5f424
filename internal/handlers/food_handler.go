package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FoodHandler struct {
	foodService *services.FoodService
}

func NewFoodHandler(foodService *services.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

func (h *FoodHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	food, err := h.foodService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "Failed to create food")
	}

	return c.Status(fiber.StatusCreated).JSON(food)
}

func (h *FoodHandler) List(c *fiber.Ctx) error {
	q, msg := listQuery(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	page, err := h.foodService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err, "Failed to list foods")
	}

	return c.JSON(page)
}

func (h *FoodHandler) Search(c *fiber.Ctx) error {
	foods, err := h.foodService.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err, "Failed to search foods")
	}

	return c.JSON(foods)
}

func (h *FoodHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid food ID")
	}

	food, err := h.foodService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to get food")
	}

	return c.JSON(food)
}

func (h *FoodHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid food ID")
	}

	var req dto.UpdateFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	food, err := h.foodService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update food")
	}

	return c.JSON(food)
}

func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid food ID")
	}

	if err := h.foodService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to delete food")
	}

	return c.JSON(dto.DeleteResponse{Message: "Food deleted successfully", ID: id})
}

func (h *FoodHandler) CountMeals(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid food ID")
	}

	count, err := h.foodService.CountMeals(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to count meals")
	}

	return c.JSON(dto.FoodMealCountResponse{FoodID: id, MealCount: count})
}
