package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MealHandler struct {
	mealService *services.MealService
}

func NewMealHandler(mealService *services.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	meal, err := h.mealService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "Failed to create meal")
	}

	return c.Status(fiber.StatusCreated).JSON(meal)
}

// List accepts the common list parameters plus user_id, from and to.
func (h *MealHandler) List(c *fiber.Ctx) error {
	q, msg := listQuery(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	filter := dto.MealFilter{
		ListQuery: q,
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	if v := c.Query("user_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return badRequest(c, "user_id must be a positive integer")
		}
		userID := uint(n)
		filter.UserID = &userID
	}

	page, err := h.mealService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Failed to list meals")
	}

	return c.JSON(page)
}

// ListByDate reads the day from ?data=, falling back to ?date=.
func (h *MealHandler) ListByDate(c *fiber.Ctx) error {
	value := c.Query("data")
	if value == "" {
		value = c.Query("date")
	}
	if value == "" {
		return badRequest(c, "Query parameter 'data' is required")
	}

	meals, err := h.mealService.ListByDate(c.UserContext(), value)
	if err != nil {
		return respondError(c, err, "Failed to list meals")
	}

	return c.JSON(meals)
}

func (h *MealHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	meal, err := h.mealService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to get meal")
	}

	return c.JSON(meal)
}

func (h *MealHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	var req dto.UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	meal, err := h.mealService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update meal")
	}

	return c.JSON(meal)
}

func (h *MealHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	if err := h.mealService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to delete meal")
	}

	return c.JSON(dto.DeleteResponse{Message: "Meal deleted successfully", ID: id})
}

func (h *MealHandler) ListFoods(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	foods, err := h.mealService.ListFoods(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to list meal foods")
	}

	return c.JSON(foods)
}

func (h *MealHandler) CountFoods(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	count, err := h.mealService.CountFoods(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to count foods")
	}

	return c.JSON(dto.FoodCountResponse{MealID: id, FoodCount: count})
}

func (h *MealHandler) User(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid meal ID")
	}

	user, err := h.mealService.User(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to get meal user")
	}

	return c.JSON(user)
}
