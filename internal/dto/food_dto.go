package dto

type CreateFoodRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Sodium        float64 `json:"sodium"`
	Sugar         float64 `json:"sugar"`
}

type UpdateFoodRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=255"`
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Fat           *float64 `json:"fat"`
	Sodium        *float64 `json:"sodium"`
	Sugar         *float64 `json:"sugar"`
}

type FoodMealCountResponse struct {
	FoodID    uint  `json:"food_id"`
	MealCount int64 `json:"meal_count"`
}
