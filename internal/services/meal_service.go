package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// Create inserts the meal and its food links atomically. The owning user
// and every food must exist; duplicate food ids are collapsed.
func (s *MealService) Create(ctx context.Context, req *dto.CreateMealRequest) (*dto.MealResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("type", &req.Type); err != nil {
		return nil, err
	}
	date, err := ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	foodIDs := uniqueIDs(req.FoodIDs)

	var resp dto.MealResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.User{}, EntityUser, req.UserID); err != nil {
			return err
		}
		if err := ensureFoods(tx, foodIDs); err != nil {
			return err
		}

		meal := models.Meal{
			Type:   req.Type,
			Date:   datatypes.Date(date),
			UserID: req.UserID,
		}
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		if err := linkFoods(tx, meal.ID, foodIDs); err != nil {
			return err
		}

		out, err := withFoods(tx, []models.Meal{meal})
		if err != nil {
			return err
		}
		resp = out[0]
		return nil
	})
	if err != nil {
		return nil, wrapStorage("create meal", err)
	}
	return &resp, nil
}

func (s *MealService) Get(ctx context.Context, id uint) (*dto.MealResponse, error) {
	var resp dto.MealResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal, err := findMeal(tx, id)
		if err != nil {
			return err
		}
		out, err := withFoods(tx, []models.Meal{*meal})
		if err != nil {
			return err
		}
		resp = out[0]
		return nil
	})
	if err != nil {
		return nil, wrapStorage("get meal", err)
	}
	return &resp, nil
}

// List pages through meals, optionally restricted to one user and an
// inclusive date range.
func (s *MealService) List(ctx context.Context, f dto.MealFilter) (*dto.ListResponse[dto.MealResponse], error) {
	plan, err := planList(f.ListQuery, mealSortColumns, "date")
	if err != nil {
		return nil, err
	}
	filter, err := mealFilterScope(f)
	if err != nil {
		return nil, err
	}

	var items []dto.MealResponse
	var total int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Meal{}).Scopes(filter).Count(&total).Error; err != nil {
			return err
		}
		var meals []models.Meal
		if err := tx.Scopes(filter).Scopes(plan.scopes()...).Find(&meals).Error; err != nil {
			return err
		}
		items, err = withFoods(tx, meals)
		return err
	})
	if err != nil {
		return nil, wrapStorage("list meals", err)
	}

	return &dto.ListResponse[dto.MealResponse]{
		Items:  items,
		Total:  total,
		Offset: plan.Offset,
		Limit:  plan.Limit,
	}, nil
}

func mealFilterScope(f dto.MealFilter) (func(*gorm.DB) *gorm.DB, error) {
	var from, to *time.Time
	if strings.TrimSpace(f.From) != "" {
		d, err := ParseDate("from", f.From)
		if err != nil {
			return nil, err
		}
		from = &d
	}
	if strings.TrimSpace(f.To) != "" {
		d, err := ParseDate("to", f.To)
		if err != nil {
			return nil, err
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, invalid("to", "must not be before from")
	}

	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			db = db.Where("user_id = ?", *f.UserID)
		}
		if from != nil {
			db = db.Where("date >= ?", datatypes.Date(*from))
		}
		if to != nil {
			db = db.Where("date <= ?", datatypes.Date(*to))
		}
		return db
	}, nil
}

// Update applies the present fields of req. A non-nil FoodIDs replaces the
// whole food set; an empty list clears it.
func (s *MealService) Update(ctx context.Context, id uint, req *dto.UpdateMealRequest) (*dto.MealResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("type", req.Type); err != nil {
		return nil, err
	}
	var date *time.Time
	if req.Date != nil {
		d, err := ParseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		date = &d
	}
	if req.UserID != nil && *req.UserID == 0 {
		return nil, invalid("user_id", "must be a positive id")
	}

	var resp dto.MealResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal, err := findMeal(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}

		if req.UserID != nil {
			if err := ensureExists(tx, &models.User{}, EntityUser, *req.UserID); err != nil {
				return err
			}
			meal.UserID = *req.UserID
		}
		if req.Type != nil {
			meal.Type = *req.Type
		}
		if date != nil {
			meal.Date = datatypes.Date(*date)
		}

		if req.FoodIDs != nil {
			foodIDs := uniqueIDs(*req.FoodIDs)
			if err := ensureFoods(tx, foodIDs); err != nil {
				return err
			}
			if err := tx.Where("meal_id = ?", id).Delete(&models.MealFood{}).Error; err != nil {
				return err
			}
			if err := linkFoods(tx, id, foodIDs); err != nil {
				return err
			}
		}

		if err := tx.Save(meal).Error; err != nil {
			return err
		}
		out, err := withFoods(tx, []models.Meal{*meal})
		if err != nil {
			return err
		}
		resp = out[0]
		return nil
	})
	if err != nil {
		return nil, wrapStorage("update meal", err)
	}
	return &resp, nil
}

// Delete removes the meal together with its food links.
func (s *MealService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal, err := findMeal(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", id).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(meal).Error
	})
	return wrapStorage("delete meal", err)
}

// ListByDate returns every meal on the given YYYY-MM-DD day.
func (s *MealService) ListByDate(ctx context.Context, value string) ([]dto.MealResponse, error) {
	date, err := ParseDate("date", value)
	if err != nil {
		return nil, err
	}

	var out []dto.MealResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meals []models.Meal
		if err := tx.Where("date = ?", datatypes.Date(date)).Scopes(OrderBy("id", false)).Find(&meals).Error; err != nil {
			return err
		}
		out, err = withFoods(tx, meals)
		return err
	})
	if err != nil {
		return nil, wrapStorage("list meals by date", err)
	}
	return out, nil
}

// ListFoods returns the foods of a meal ordered by name.
func (s *MealService) ListFoods(ctx context.Context, mealID uint) ([]models.Food, error) {
	foods := []models.Food{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Meal{}, EntityMeal, mealID); err != nil {
			return err
		}
		return tx.Joins("JOIN meal_foods ON meal_foods.food_id = foods.id").
			Where("meal_foods.meal_id = ?", mealID).
			Scopes(OrderBy("name", false)).
			Find(&foods).Error
	})
	if err != nil {
		return nil, wrapStorage("list meal foods", err)
	}
	return foods, nil
}

func (s *MealService) CountFoods(ctx context.Context, mealID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Meal{}, EntityMeal, mealID); err != nil {
			return err
		}
		return tx.Model(&models.MealFood{}).Where("meal_id = ?", mealID).Count(&count).Error
	})
	if err != nil {
		return 0, wrapStorage("count foods", err)
	}
	return count, nil
}

// User returns the owner of a meal.
func (s *MealService) User(ctx context.Context, mealID uint) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal, err := findMeal(tx, mealID)
		if err != nil {
			return err
		}
		user, err = findUser(tx, meal.UserID)
		return err
	})
	if err != nil {
		return nil, wrapStorage("get meal user", err)
	}
	return user, nil
}

func findMeal(db *gorm.DB, id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := db.First(&meal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(EntityMeal, id)
		}
		return nil, fmt.Errorf("failed to load meal: %w", err)
	}
	return &meal, nil
}
