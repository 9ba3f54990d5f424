package dto

type CreateUserRequest struct {
	Name   string  `json:"name" validate:"required,max=255"`
	Age    int     `json:"age" validate:"gte=0,lte=150"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

type UpdateUserRequest struct {
	Name   *string  `json:"name" validate:"omitempty,max=255"`
	Age    *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
}

type MealCountResponse struct {
	UserID    uint  `json:"user_id"`
	MealCount int64 `json:"meal_count"`
}
