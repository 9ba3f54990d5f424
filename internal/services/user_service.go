package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("name", &req.Name); err != nil {
		return nil, err
	}

	user := models.User{
		Name:   req.Name,
		Age:    req.Age,
		Weight: req.Weight,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), id)
}

func (s *UserService) List(ctx context.Context, q dto.ListQuery) (*dto.ListResponse[models.User], error) {
	plan, err := planList(q, userSortColumns, "id")
	if err != nil {
		return nil, err
	}

	var users []models.User
	var total int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Scopes(plan.scopes()...).Find(&users).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &dto.ListResponse[models.User]{
		Items:  users,
		Total:  total,
		Offset: plan.Offset,
		Limit:  plan.Limit,
	}, nil
}

// Search matches users whose name contains query, ignoring case.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	if err := requireNonBlank("query", &query); err != nil {
		return nil, err
	}

	users := []models.User{}
	err := s.db.WithContext(ctx).
		Scopes(NameContains(query), OrderBy("name", false)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := requireNonBlank("name", req.Name); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(tx, id); err != nil {
			return err
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Age != nil {
			user.Age = *req.Age
		}
		if req.Weight != nil {
			user.Weight = *req.Weight
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, wrapStorage("update user", err)
	}
	return user, nil
}

// Delete removes a user that owns no meals. Users with meals are kept and
// a *ConflictError is returned.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}

		var meals int64
		if err := tx.Model(&models.Meal{}).Where("user_id = ?", id).Count(&meals).Error; err != nil {
			return err
		}
		if meals > 0 {
			return &ConflictError{Entity: EntityUser, ID: id, Reason: fmt.Sprintf("user still owns %d meal(s)", meals)}
		}

		if err := tx.Delete(user).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return &ConflictError{Entity: EntityUser, ID: id, Reason: "user is still referenced by meals"}
			}
			return err
		}
		return nil
	})
	return wrapStorage("delete user", err)
}

func (s *UserService) CountMeals(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.User{}, EntityUser, userID); err != nil {
			return err
		}
		return tx.Model(&models.Meal{}).Where("user_id = ?", userID).Count(&count).Error
	})
	if err != nil {
		return 0, wrapStorage("count meals", err)
	}
	return count, nil
}

// MealsWithFoods returns every meal of the user, oldest first, each with
// its foods.
func (s *UserService) MealsWithFoods(ctx context.Context, userID uint) ([]dto.MealResponse, error) {
	var out []dto.MealResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.User{}, EntityUser, userID); err != nil {
			return err
		}
		var meals []models.Meal
		if err := tx.Where("user_id = ?", userID).Scopes(OrderBy("date", false)).Find(&meals).Error; err != nil {
			return err
		}
		var err error
		out, err = withFoods(tx, meals)
		return err
	})
	if err != nil {
		return nil, wrapStorage("list meals with foods", err)
	}
	return out, nil
}

func findUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(EntityUser, id)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
