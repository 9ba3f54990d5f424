package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	q, msg := listQuery(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	page, err := h.userService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err, "Failed to list users")
	}

	return c.JSON(page)
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.userService.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err, "Failed to search users")
	}

	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to get user")
	}

	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update user")
	}

	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to delete user")
	}

	return c.JSON(dto.DeleteResponse{Message: "User deleted successfully", ID: id})
}

func (h *UserHandler) CountMeals(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	count, err := h.userService.CountMeals(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to count meals")
	}

	return c.JSON(dto.MealCountResponse{UserID: id, MealCount: count})
}

func (h *UserHandler) MealsWithFoods(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	meals, err := h.userService.MealsWithFoods(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to list meals")
	}

	return c.JSON(meals)
}
