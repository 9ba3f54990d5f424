package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
)

// DateLayout is the wire format of meal dates.
const DateLayout = "2006-01-02"

type CreateMealRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required,max=100"`
	Date    string `json:"date" validate:"required"`
	FoodIDs []uint `json:"food_ids"`
}

// UpdateMealRequest changes only the fields that are present. A present
// food_ids list, even an empty one, replaces the meal's whole food set.
type UpdateMealRequest struct {
	UserID  *uint   `json:"user_id"`
	Type    *string `json:"type" validate:"omitempty,max=100"`
	Date    *string `json:"date"`
	FoodIDs *[]uint `json:"food_ids"`
}

// MealFilter narrows a meal listing. From and To are inclusive dates.
type MealFilter struct {
	ListQuery
	UserID *uint
	From   string
	To     string
}

type MealResponse struct {
	ID        uint          `json:"id"`
	Type      string        `json:"type"`
	Date      string        `json:"date"`
	UserID    uint          `json:"user_id"`
	Foods     []models.Food `json:"foods"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewMealResponse(meal *models.Meal, foods []models.Food) MealResponse {
	if foods == nil {
		foods = []models.Food{}
	}
	return MealResponse{
		ID:        meal.ID,
		Type:      meal.Type,
		Date:      time.Time(meal.Date).Format(DateLayout),
		UserID:    meal.UserID,
		Foods:     foods,
		CreatedAt: meal.CreatedAt,
		UpdatedAt: meal.UpdatedAt,
	}
}

type FoodCountResponse struct {
	MealID    uint  `json:"meal_id"`
	FoodCount int64 `json:"food_count"`
}
