package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mealFixture struct {
	db    *gorm.DB
	users *UserService
	foods *FoodService
	meals *MealService
}

func newMealFixture(t *testing.T) *mealFixture {
	db := newTestDB(t)
	return &mealFixture{
		db:    db,
		users: NewUserService(db),
		foods: NewFoodService(db),
		meals: NewMealService(db),
	}
}

func (f *mealFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestMealService_CreateWithFoods(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	ana, err := f.users.Create(ctx, &dto.CreateUserRequest{Name: "Ana", Age: 25, Weight: 65.0})
	require.NoError(t, err)
	apple, err := f.foods.Create(ctx, &dto.CreateFoodRequest{
		Name: "Maçã", Calories: 52, Protein: 0.3, Carbohydrates: 14, Fat: 0.2, Sodium: 1, Sugar: 10,
	})
	require.NoError(t, err)

	meal, err := f.meals.Create(ctx, &dto.CreateMealRequest{
		UserID:  ana.ID,
		Type:    "breakfast",
		Date:    "2023-01-01",
		FoodIDs: []uint{apple.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, meal.ID)
	assert.Equal(t, "2023-01-01", meal.Date)
	assert.Equal(t, ana.ID, meal.UserID)
	require.Len(t, meal.Foods, 1)
	assert.Equal(t, apple.ID, meal.Foods[0].ID)

	foods, err := f.meals.ListFoods(ctx, meal.ID)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, apple.ID, foods[0].ID)
	assert.Equal(t, "Maçã", foods[0].Name)
	assert.InDelta(t, 52.0, foods[0].Calories, 1e-9)
}

func TestMealService_CreateDeduplicatesFoods(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	rice := mustFood(t, f.foods, "Arroz", 130)

	meal := mustMeal(t, f.meals, owner.ID, "2023-01-02", rice.ID, rice.ID)
	assert.Len(t, meal.Foods, 1)

	count, err := f.meals.CountFoods(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMealService_CreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	rice := mustFood(t, f.foods, "Arroz", 130)

	_, err := f.meals.Create(ctx, &dto.CreateMealRequest{
		UserID:  owner.ID,
		Type:    "Almoço",
		Date:    "2023-01-02",
		FoodIDs: []uint{rice.ID, 404, 405},
	})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, EntityFood, nf.Entity)
	assert.Equal(t, uint(404), nf.ID)

	assert.Zero(t, f.count(t, &models.Meal{}))
	assert.Zero(t, f.count(t, &models.MealFood{}))
}

func TestMealService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")

	_, err := f.meals.Create(ctx, &dto.CreateMealRequest{UserID: 999, Type: "Jantar", Date: "2023-01-01"})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, EntityUser, nf.Entity)

	_, err = f.meals.Create(ctx, &dto.CreateMealRequest{UserID: owner.ID, Type: "Jantar", Date: "01/01/2023"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.meals.Create(ctx, &dto.CreateMealRequest{UserID: owner.ID, Date: "2023-01-01"})
	assert.True(t, errors.Is(err, ErrValidation))

	assert.Zero(t, f.count(t, &models.Meal{}))
}

func TestMealService_UpdateReplacesFoods(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	other := mustUser(t, f.users, "Pedro")
	rice := mustFood(t, f.foods, "Arroz", 130)
	beans := mustFood(t, f.foods, "Feijão", 127)
	egg := mustFood(t, f.foods, "Ovo", 155)
	meal := mustMeal(t, f.meals, owner.ID, "2023-01-02", rice.ID, beans.ID)

	// absent food_ids leaves the set alone
	updated, err := f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{Type: ptr("Jantar")})
	require.NoError(t, err)
	assert.Equal(t, "Jantar", updated.Type)
	assert.Len(t, updated.Foods, 2)

	updated, err = f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{
		FoodIDs: &[]uint{egg.ID},
		Date:    ptr("2023-02-01"),
		UserID:  &other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01", updated.Date)
	assert.Equal(t, other.ID, updated.UserID)
	require.Len(t, updated.Foods, 1)
	assert.Equal(t, egg.ID, updated.Foods[0].ID)

	// an empty list clears the set
	updated, err = f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{FoodIDs: &[]uint{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Foods)
	assert.Zero(t, f.count(t, &models.MealFood{}))
}

func TestMealService_UpdateRollsBackOnMissingFood(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	rice := mustFood(t, f.foods, "Arroz", 130)
	meal := mustMeal(t, f.meals, owner.ID, "2023-01-02", rice.ID)

	_, err := f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{
		Type:    ptr("Jantar"),
		FoodIDs: &[]uint{rice.ID, 77},
	})
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err := f.meals.Get(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Almoço", got.Type)
	require.Len(t, got.Foods, 1)
	assert.Equal(t, rice.ID, got.Foods[0].ID)

	_, err = f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{UserID: ptr(uint(999))})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.meals.Update(ctx, 999, &dto.UpdateMealRequest{Type: ptr("Jantar")})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMealService_DeleteCascadesLinks(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	rice := mustFood(t, f.foods, "Arroz", 130)
	meal := mustMeal(t, f.meals, owner.ID, "2023-01-02", rice.ID)

	require.NoError(t, f.meals.Delete(ctx, meal.ID))
	assert.Zero(t, f.count(t, &models.MealFood{}))
	assert.Equal(t, int64(1), f.count(t, &models.Food{}))

	_, err := f.meals.Get(ctx, meal.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(f.meals.Delete(ctx, meal.ID), ErrNotFound))

	_, err = f.meals.ListFoods(ctx, meal.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMealService_ListAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	ana := mustUser(t, f.users, "Ana")
	pedro := mustUser(t, f.users, "Pedro")
	mustMeal(t, f.meals, ana.ID, "2023-01-03")
	mustMeal(t, f.meals, ana.ID, "2023-01-01")
	mustMeal(t, f.meals, pedro.ID, "2023-01-02")
	mustMeal(t, f.meals, pedro.ID, "2023-01-01")

	page, err := f.meals.List(ctx, dto.MealFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "2023-01-01", page.Items[0].Date)
	assert.Equal(t, "2023-01-01", page.Items[1].Date)
	assert.Less(t, page.Items[0].ID, page.Items[1].ID)
	assert.Equal(t, "2023-01-03", page.Items[3].Date)

	page, err = f.meals.List(ctx, dto.MealFilter{UserID: &ana.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = f.meals.List(ctx, dto.MealFilter{From: "2023-01-02", To: "2023-01-03"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = f.meals.List(ctx, dto.MealFilter{From: "2023-01-03", To: "2023-01-01"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.meals.List(ctx, dto.MealFilter{ListQuery: dto.ListQuery{SortBy: "calories"}})
	assert.True(t, errors.Is(err, ErrValidation))

	byDate, err := f.meals.ListByDate(ctx, "2023-01-01")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byDate, err = f.meals.ListByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, byDate)
}

func TestMealService_User(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Beatriz")
	meal := mustMeal(t, f.meals, owner.ID, "2023-01-10")

	user, err := f.meals.User(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", user.Name)

	_, err = f.meals.User(ctx, meal.ID+1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMealService_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	f := newMealFixture(t)
	owner := mustUser(t, f.users, "Ana")
	rice := mustFood(t, f.foods, "Arroz", 130)
	beans := mustFood(t, f.foods, "Feijão", 127)
	meal := mustMeal(t, f.meals, owner.ID, "2023-01-02")

	sets := [][]uint{{rice.ID}, {beans.ID}, {rice.ID, beans.ID}, {}}
	var wg sync.WaitGroup
	errs := make(chan error, len(sets))
	for _, set := range sets {
		wg.Add(1)
		go func(ids []uint) {
			defer wg.Done()
			_, err := f.meals.Update(ctx, meal.ID, &dto.UpdateMealRequest{FoodIDs: &ids})
			errs <- err
		}(set)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// whatever update won, the stored set is one of the requested sets
	got, err := f.meals.Get(ctx, meal.ID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(got.Foods))
	for _, food := range got.Foods {
		ids = append(ids, food.ID)
	}
	assert.Contains(t, [][]uint{{}, {rice.ID}, {beans.ID}, {rice.ID, beans.ID}}, ids)
}
