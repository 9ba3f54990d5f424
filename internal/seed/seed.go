// Package seed loads the demo dataset through the services, so seeded rows
// obey the same rules as API writes.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"gorm.io/gorm"
)

var users = []dto.CreateUserRequest{
	{Name: "Carlos", Age: 30, Weight: 80.5},
	{Name: "Ana", Age: 25, Weight: 65.0},
	{Name: "João", Age: 22, Weight: 70.3},
	{Name: "Mariana", Age: 28, Weight: 55.0},
	{Name: "Pedro", Age: 35, Weight: 85.0},
	{Name: "Juliana", Age: 32, Weight: 68.2},
	{Name: "Lucas", Age: 27, Weight: 72.0},
	{Name: "Fernanda", Age: 24, Weight: 58.5},
	{Name: "Ricardo", Age: 29, Weight: 76.3},
	{Name: "Beatriz", Age: 26, Weight: 62.4},
}

var foods = []dto.CreateFoodRequest{
	{Name: "Maçã", Calories: 52, Protein: 0.3, Carbohydrates: 14, Fat: 0.2, Sodium: 1, Sugar: 10},
	{Name: "Banana", Calories: 96, Protein: 1.3, Carbohydrates: 27, Fat: 0.3, Sodium: 1, Sugar: 14},
	{Name: "Arroz", Calories: 130, Protein: 2.7, Carbohydrates: 28, Fat: 0.3, Sodium: 1, Sugar: 0},
	{Name: "Feijão", Calories: 127, Protein: 8.7, Carbohydrates: 23, Fat: 0.5, Sodium: 5, Sugar: 0},
	{Name: "Frango", Calories: 239, Protein: 27, Carbohydrates: 0, Fat: 14, Sodium: 70, Sugar: 0},
	{Name: "Ovo", Calories: 155, Protein: 13, Carbohydrates: 1.1, Fat: 11, Sodium: 124, Sugar: 0},
	{Name: "Leite", Calories: 42, Protein: 3.4, Carbohydrates: 5, Fat: 1, Sodium: 44, Sugar: 5},
	{Name: "Pão", Calories: 265, Protein: 9, Carbohydrates: 49, Fat: 3.2, Sodium: 491, Sugar: 5},
	{Name: "Queijo", Calories: 402, Protein: 25, Carbohydrates: 1.3, Fat: 33, Sodium: 621, Sugar: 0},
	{Name: "Tomate", Calories: 18, Protein: 0.9, Carbohydrates: 3.9, Fat: 0.2, Sodium: 5, Sugar: 2.6},
}

var mealTypes = []string{"Café da manhã", "Almoço", "Jantar"}

// mealFoods lists, per meal, 1-based positions into foods.
var mealFoods = [][]int{
	{1, 2}, {3, 4}, {5, 6}, {1, 7}, {3, 8},
	{9, 10}, {1, 4}, {2, 9}, {5, 6}, {7, 8},
}

type Result struct {
	Users int
	Foods int
	Meals int
	Links int
}

// Run inserts the dataset. It refuses to run against a database that
// already holds users unless force is set.
func Run(ctx context.Context, db *gorm.DB, force bool) (*Result, error) {
	if !force {
		var existing int64
		if err := db.WithContext(ctx).Model(&models.User{}).Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to check existing users: %w", err)
		}
		if existing > 0 {
			return nil, fmt.Errorf("database already holds %d user(s); use --force to seed anyway", existing)
		}
	}

	userService := services.NewUserService(db)
	foodService := services.NewFoodService(db)
	mealService := services.NewMealService(db)

	res := &Result{}
	userIDs := make([]uint, 0, len(users))
	for i := range users {
		u, err := userService.Create(ctx, &users[i])
		if err != nil {
			return res, fmt.Errorf("seed user %q: %w", users[i].Name, err)
		}
		userIDs = append(userIDs, u.ID)
		res.Users++
	}

	foodIDs := make([]uint, 0, len(foods))
	for i := range foods {
		f, err := foodService.Create(ctx, &foods[i])
		if err != nil {
			return res, fmt.Errorf("seed food %q: %w", foods[i].Name, err)
		}
		foodIDs = append(foodIDs, f.ID)
		res.Foods++
	}

	for i, positions := range mealFoods {
		ids := make([]uint, len(positions))
		for j, p := range positions {
			ids[j] = foodIDs[p-1]
		}
		req := dto.CreateMealRequest{
			UserID:  userIDs[i],
			Type:    mealTypes[i%len(mealTypes)],
			Date:    fmt.Sprintf("2023-01-%02d", i+1),
			FoodIDs: ids,
		}
		if _, err := mealService.Create(ctx, &req); err != nil {
			return res, fmt.Errorf("seed meal %d: %w", i+1, err)
		}
		res.Meals++
		res.Links += len(ids)
	}

	slog.Info("seed completed", "users", res.Users, "foods", res.Foods, "meals", res.Meals, "links", res.Links)
	return res, nil
}
