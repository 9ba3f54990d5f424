package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/gorm"
)

// ensureExists returns a *NotFoundError unless a row of model with the
// given primary key exists.
func ensureExists(tx *gorm.DB, model any, entity string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", entity, err)
	}
	if count == 0 {
		return notFound(entity, id)
	}
	return nil
}

// ensureFoods checks every id in one query and reports the first missing
// one in request order.
func ensureFoods(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Model(&models.Food{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("failed to look up foods: %w", err)
	}
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return notFound(EntityFood, id)
		}
	}
	return nil
}

// linkFoods inserts one association row per food id.
func linkFoods(tx *gorm.DB, mealID uint, foodIDs []uint) error {
	if len(foodIDs) == 0 {
		return nil
	}
	rows := make([]models.MealFood, len(foodIDs))
	for i, foodID := range foodIDs {
		rows[i] = models.MealFood{MealID: mealID, FoodID: foodID}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to link foods to meal %d: %w", mealID, err)
	}
	return nil
}

// withFoods loads the foods of every meal with two queries and builds the
// response payloads in the order of meals.
func withFoods(tx *gorm.DB, meals []models.Meal) ([]dto.MealResponse, error) {
	out := make([]dto.MealResponse, 0, len(meals))
	if len(meals) == 0 {
		return out, nil
	}

	mealIDs := make([]uint, len(meals))
	for i, m := range meals {
		mealIDs[i] = m.ID
	}

	var links []models.MealFood
	if err := tx.Where("meal_id IN ?", mealIDs).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load meal foods: %w", err)
	}

	mealsByFood := make(map[uint][]uint, len(links))
	for _, l := range links {
		mealsByFood[l.FoodID] = append(mealsByFood[l.FoodID], l.MealID)
	}

	var foods []models.Food
	if len(mealsByFood) > 0 {
		foodIDs := make([]uint, 0, len(mealsByFood))
		for id := range mealsByFood {
			foodIDs = append(foodIDs, id)
		}
		if err := tx.Where("id IN ?", foodIDs).Scopes(OrderBy("name", false)).Find(&foods).Error; err != nil {
			return nil, fmt.Errorf("failed to load foods: %w", err)
		}
	}

	// foods arrive sorted by name, so each meal's list is sorted too
	byMeal := make(map[uint][]models.Food, len(meals))
	for _, f := range foods {
		for _, mealID := range mealsByFood[f.ID] {
			byMeal[mealID] = append(byMeal[mealID], f)
		}
	}
	for i := range meals {
		out = append(out, dto.NewMealResponse(&meals[i], byMeal[meals[i].ID]))
	}
	return out, nil
}

// wrapStorage leaves taxonomy errors untouched and annotates the rest.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
