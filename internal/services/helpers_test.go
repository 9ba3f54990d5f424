package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel: "silent",
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func mustUser(t *testing.T, svc *UserService, name string) *models.User {
	t.Helper()
	u, err := svc.Create(context.Background(), &dto.CreateUserRequest{Name: name, Age: 30, Weight: 70})
	require.NoError(t, err)
	return u
}

func mustFood(t *testing.T, svc *FoodService, name string, calories float64) *models.Food {
	t.Helper()
	f, err := svc.Create(context.Background(), &dto.CreateFoodRequest{Name: name, Calories: calories})
	require.NoError(t, err)
	return f
}

func mustMeal(t *testing.T, svc *MealService, userID uint, date string, foodIDs ...uint) *dto.MealResponse {
	t.Helper()
	m, err := svc.Create(context.Background(), &dto.CreateMealRequest{
		UserID:  userID,
		Type:    "Almoço",
		Date:    date,
		FoodIDs: foodIDs,
	})
	require.NoError(t, err)
	return m
}

func ptr[T any](v T) *T {
	return &v
}
