package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

func (s *FoodService) Create(ctx context.Context, req *dto.CreateFoodRequest) (*models.Food, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("name", &req.Name); err != nil {
		return nil, err
	}

	food := models.Food{
		Name:          req.Name,
		Calories:      req.Calories,
		Protein:       req.Protein,
		Carbohydrates: req.Carbohydrates,
		Fat:           req.Fat,
		Sodium:        req.Sodium,
		Sugar:         req.Sugar,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, fmt.Errorf("failed to create food: %w", err)
	}
	return &food, nil
}

func (s *FoodService) Get(ctx context.Context, id uint) (*models.Food, error) {
	return findFood(s.db.WithContext(ctx), id)
}

func (s *FoodService) List(ctx context.Context, q dto.ListQuery) (*dto.ListResponse[models.Food], error) {
	plan, err := planList(q, foodSortColumns, "name")
	if err != nil {
		return nil, err
	}

	var foods []models.Food
	var total int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Food{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Scopes(plan.scopes()...).Find(&foods).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	return &dto.ListResponse[models.Food]{
		Items:  foods,
		Total:  total,
		Offset: plan.Offset,
		Limit:  plan.Limit,
	}, nil
}

func (s *FoodService) Search(ctx context.Context, query string) ([]models.Food, error) {
	if err := requireNonBlank("query", &query); err != nil {
		return nil, err
	}

	foods := []models.Food{}
	err := s.db.WithContext(ctx).
		Scopes(NameContains(query), OrderBy("name", false)).
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	return foods, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, req *dto.UpdateFoodRequest) (*models.Food, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("name", req.Name); err != nil {
		return nil, err
	}

	var food *models.Food
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if food, err = findFood(tx, id); err != nil {
			return err
		}

		if req.Name != nil {
			food.Name = *req.Name
		}
		if req.Calories != nil {
			food.Calories = *req.Calories
		}
		if req.Protein != nil {
			food.Protein = *req.Protein
		}
		if req.Carbohydrates != nil {
			food.Carbohydrates = *req.Carbohydrates
		}
		if req.Fat != nil {
			food.Fat = *req.Fat
		}
		if req.Sodium != nil {
			food.Sodium = *req.Sodium
		}
		if req.Sugar != nil {
			food.Sugar = *req.Sugar
		}
		return tx.Save(food).Error
	})
	if err != nil {
		return nil, wrapStorage("update food", err)
	}
	return food, nil
}

// Delete removes the food and detaches it from every meal that listed it.
// The meals themselves are kept.
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		food, err := findFood(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("food_id = ?", id).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(food).Error
	})
	return wrapStorage("delete food", err)
}

// CountMeals returns how many meals include the food.
func (s *FoodService) CountMeals(ctx context.Context, foodID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Food{}, EntityFood, foodID); err != nil {
			return err
		}
		return tx.Model(&models.MealFood{}).Where("food_id = ?", foodID).Count(&count).Error
	})
	if err != nil {
		return 0, wrapStorage("count meals", err)
	}
	return count, nil
}

func findFood(db *gorm.DB, id uint) (*models.Food, error) {
	var food models.Food
	if err := db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(EntityFood, id)
		}
		return nil, fmt.Errorf("failed to load food: %w", err)
	}
	return &food, nil
}
