package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	_ "time/tzdata"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/message"
	"github.com/chitieu/chitieu/pkg/report"
	"github.com/chitieu/chitieu/pkg/storage"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (http.Handler, *storage.MemoryRepository) {
	cfg := config.Defaults()
	settings, err := BudgetSettings(cfg.Budget)
	require.NoError(t, err)
	repo := storage.NewMemoryRepository()

	r := mux.NewRouter()
	deps := BuildDependencies(repo, settings, cfg)
	SetupMiddleware(r, deps, cfg)
	RegisterRoutes(r, deps, cfg)
	return r, repo
}

func request(router http.Handler, method, path, userId, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestApplication_MessageFlow(t *testing.T) {
	router, repo := setupRouter(t)

	w := request(router, http.MethodPost, "/api/message", "7", `{"text": "cơm 35k, trà sữa 30k, xăng 50k"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var reply message.ReplyDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reply))
	assert.Len(t, reply.Transactions, 3)
	assert.True(t, reply.Persisted)
	assert.Equal(t, 3, repo.Len())

	rows, err := repo.List(context.Background(), 7, reply.Budget.Start, reply.Budget.End)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// users are isolated
	w = request(router, http.MethodGet, "/api/budget/weekly", "8", "")
	require.Equal(t, http.StatusOK, w.Code)
	var week report.WeekDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&week))
	assert.Equal(t, int64(0), week.Spent)

	w = request(router, http.MethodPost, "/api/message/undo", "7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, repo.Len())

	w = request(router, http.MethodGet, "/api/report", "7", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary report.SummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, int64(65_000), summary.Week.Spent)
}

func TestApplication_UserHeader(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("invalid header", func(t *testing.T) {
		w := request(router, http.MethodGet, "/api/budget/weekly", "abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("missing header", func(t *testing.T) {
		w := request(router, http.MethodGet, "/api/budget/weekly", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
	t.Run("split does not need a user", func(t *testing.T) {
		w := request(router, http.MethodPost, "/api/split", "", `{"amount": "500k", "people": 4}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
	t.Run("health", func(t *testing.T) {
		w := request(router, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}

func TestBudgetSettings(t *testing.T) {
	settings, err := BudgetSettings(config.Defaults().Budget)

	require.NoError(t, err)
	assert.Equal(t, int64(700_000), settings.Limit)
	assert.Equal(t, "Asia/Ho_Chi_Minh", settings.Location.String())
	assert.Equal(t, int64(80), settings.WarningPercent)
	assert.Equal(t, 4, settings.EarlyWarningDays)

	_, err = BudgetSettings(config.Budget{FirstDay: "someday", Timezone: "UTC"})
	assert.Error(t, err)
	_, err = BudgetSettings(config.Budget{FirstDay: "monday", Timezone: "Mars/Olympus"})
	assert.Error(t, err)
	_, err = BudgetSettings(config.Budget{FirstDay: "monday", Timezone: "UTC", WeeklyLimit: -1})
	assert.Error(t, err)
}

func TestCategoryRules(t *testing.T) {
	rules, fallback := CategoryRules(config.Categories{Default: "Khác"})
	assert.Equal(t, expense.DefaultCategoryRules(), rules)
	assert.Equal(t, expense.Category("Khác"), fallback)

	rules, _ = CategoryRules(config.Categories{
		Default: "Other",
		Rules:   []config.CategoryRule{{Name: "Pets", Keywords: []string{"pate", "cát mèo"}}},
	})
	assert.Equal(t, []expense.CategoryRule{{Name: "Pets", Keywords: []string{"pate", "cát mèo"}}}, rules)
}

func TestOpenStore(t *testing.T) {
	cfg := config.Defaults()

	store, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryRepository{}, store.Repository)
	store.Close()

	cfg.Storage.Driver = "dropbox"
	_, err = OpenStore(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg.Storage.Driver = config.StorageSheets
	_, err = OpenStore(context.Background(), cfg, nil)
	assert.Error(t, err)
}
