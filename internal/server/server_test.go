package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "api.db"),
		DBLogLevel:  "silent",
		CORSOrigins: "*",
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return New(cfg, db, Options{})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func TestMealLifecycle(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/users/", dto.CreateUserRequest{Name: "Ana", Age: 25, Weight: 65.0})
	require.Equal(t, http.StatusCreated, status, string(body))
	ana := decode[models.User](t, body)

	status, body = doJSON(t, app, http.MethodPost, "/foods/", dto.CreateFoodRequest{
		Name: "Maçã", Calories: 52, Protein: 0.3, Carbohydrates: 14, Fat: 0.2, Sodium: 1, Sugar: 10,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	apple := decode[models.Food](t, body)

	status, body = doJSON(t, app, http.MethodPost, "/meals/", map[string]any{
		"user_id":  ana.ID,
		"type":     "breakfast",
		"date":     "2023-01-01",
		"food_ids": []uint{apple.ID},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	meal := decode[dto.MealResponse](t, body)
	assert.NotZero(t, meal.ID)
	assert.Equal(t, "2023-01-01", meal.Date)
	require.Len(t, meal.Foods, 1)
	assert.Equal(t, "Maçã", meal.Foods[0].Name)

	status, body = doJSON(t, app, http.MethodGet, "/meals/"+itoa(meal.ID)+"/foods", nil)
	require.Equal(t, http.StatusOK, status)
	foods := decode[[]models.Food](t, body)
	require.Len(t, foods, 1)
	assert.Equal(t, apple.ID, foods[0].ID)
	assert.Equal(t, apple.Name, foods[0].Name)
	assert.InDelta(t, apple.Calories, foods[0].Calories, 1e-9)

	status, body = doJSON(t, app, http.MethodGet, "/meals/"+itoa(meal.ID)+"/foods/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"meal_id":`+itoa(meal.ID)+`,"food_count":1}`, string(body))

	status, body = doJSON(t, app, http.MethodGet, "/users/"+itoa(ana.ID)+"/meals/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"user_id":`+itoa(ana.ID)+`,"meal_count":1}`, string(body))

	status, body = doJSON(t, app, http.MethodGet, "/meals/by_date/?data=2023-01-01", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.MealResponse](t, body), 1)

	status, body = doJSON(t, app, http.MethodGet, "/meals/"+itoa(meal.ID)+"/user", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ana", decode[models.User](t, body).Name)

	status, body = doJSON(t, app, http.MethodDelete, "/users/"+itoa(ana.ID), nil)
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, _ = doJSON(t, app, http.MethodPut, "/meals/"+itoa(meal.ID), map[string]any{"food_ids": []uint{}})
	assert.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodDelete, "/meals/"+itoa(meal.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Meal deleted successfully","id":`+itoa(meal.ID)+`}`, string(body))

	status, _ = doJSON(t, app, http.MethodDelete, "/users/"+itoa(ana.ID), nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestErrorMapping(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"unknown user", http.MethodGet, "/users/42", nil, http.StatusNotFound, "user 42 not found"},
		{"non-numeric id", http.MethodGet, "/foods/abc", nil, http.StatusBadRequest, "Invalid food ID"},
		{"bad limit", http.MethodGet, "/users/?limit=500", nil, http.StatusBadRequest, "invalid limit: must be between 1 and 100"},
		{"zero limit", http.MethodGet, "/users/?limit=0", nil, http.StatusBadRequest, "invalid limit: must be between 1 and 100"},
		{"malformed offset", http.MethodGet, "/foods/?offset=x", nil, http.StatusBadRequest, "offset must be an integer"},
		{"unknown sort", http.MethodGet, "/foods/?sort_by=secret", nil, http.StatusBadRequest, `invalid sort_by: unknown sort field "secret"`},
		{"empty search", http.MethodGet, "/foods/search/?query=", nil, http.StatusBadRequest, "invalid query: must not be empty"},
		{"missing date", http.MethodGet, "/meals/by_date/", nil, http.StatusBadRequest, "Query parameter 'data' is required"},
		{"bad date", http.MethodGet, "/meals/by_date/?date=2023-13-01", nil, http.StatusBadRequest, `invalid date: expected a date in YYYY-MM-DD format, got "2023-13-01"`},
		{"meal for missing user", http.MethodPost, "/meals/", map[string]any{"user_id": 9, "type": "Jantar", "date": "2023-01-01"}, http.StatusNotFound, "user 9 not found"},
		{"missing name", http.MethodPost, "/users/", map[string]any{"age": 20}, http.StatusBadRequest, "invalid name: is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(body))
			resp := decode[dto.ErrorResponse](t, body)
			assert.True(t, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListEnvelope(t *testing.T) {
	app := newTestApp(t)
	for _, name := range []string{"Carlos", "Ana", "João"} {
		status, _ := doJSON(t, app, http.MethodPost, "/users", dto.CreateUserRequest{Name: name, Age: 30, Weight: 70})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/users/?limit=2&sort_by=name", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[dto.ListResponse[models.User]](t, body)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ana", page.Items[0].Name)
	assert.Equal(t, "Carlos", page.Items[1].Name)

	status, body = doJSON(t, app, http.MethodGet, "/users/search/?query=jo", nil)
	require.Equal(t, http.StatusOK, status)
	users := decode[[]models.User](t, body)
	require.Len(t, users, 1)
	assert.Equal(t, "João", users[0].Name)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	health := decode[dto.HealthResponse](t, body)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, config.DriverSQLite, health.Driver)
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
