package message

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chitieu/chitieu/internal/rest"
	"github.com/chitieu/chitieu/pkg/report"
	"github.com/chitieu/chitieu/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A middleware that sets the user in the context
func withUser(userId int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: userId})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupHandlerTest(t *testing.T) http.Handler {
	f := setup(t)
	handler := NewHandler(f.service)

	router := mux.NewRouter()
	router.HandleFunc("/api/message", handler.PostMessage).Methods("POST")
	router.HandleFunc("/api/message/undo", handler.Undo).Methods("POST")
	router.HandleFunc("/api/budget/weekly", handler.WeeklyBudget).Methods("GET")
	return withUser(1, router)
}

func postMessage(t *testing.T, router http.Handler, text string) ReplyDTO {
	body, err := json.Marshal(MessageDTO{Text: text})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/message", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var reply ReplyDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reply))
	return reply
}

func TestHandler_PostMessage(t *testing.T) {
	router := setupHandlerTest(t)

	reply := postMessage(t, router, "cơm 35k\ntrà sữa 30k")

	assert.Equal(t, "expense", reply.Kind)
	require.Len(t, reply.Transactions, 2)
	assert.Equal(t, "cơm", reply.Transactions[0].Description)
	assert.Equal(t, int64(35_000), reply.Transactions[0].Amount)
	assert.Equal(t, "Food", reply.Transactions[0].Category)
	assert.True(t, reply.Transactions[1].IsWasteful)
	assert.NotEmpty(t, reply.Transactions[1].Id)
	assert.Equal(t, int64(65_000), reply.Budget.Spent)
	assert.Equal(t, "normal", reply.Budget.Level)
	assert.True(t, reply.Persisted)
	assert.Contains(t, reply.Text, "Đã lưu 2 khoản chi")
}

func TestHandler_PostMessage_BadRequest(t *testing.T) {
	router := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/message", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_PostMessage_NoUser(t *testing.T) {
	f := setup(t)
	handler := NewHandler(f.service)

	req := httptest.NewRequest(http.MethodPost, "/api/message", bytes.NewBufferString(`{"text": "cơm 35k"}`))
	w := httptest.NewRecorder()
	handler.PostMessage(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_Undo(t *testing.T) {
	router := setupHandlerTest(t)

	t.Run("nothing to undo", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/message/undo", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var errResponse rest.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "nothing to undo", errResponse.Error)
	})
	t.Run("undoes the last expense", func(t *testing.T) {
		postMessage(t, router, "cơm 35k, xăng 50k")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/message/undo", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var reply ReplyDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&reply))
		assert.Equal(t, "undo", reply.Kind)
		assert.Equal(t, "xăng", reply.Transactions[0].Description)
		assert.Equal(t, int64(35_000), reply.Budget.Spent)
	})
}

func TestHandler_WeeklyBudget(t *testing.T) {
	router := setupHandlerTest(t)
	postMessage(t, router, "laptop 560k")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/budget/weekly", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var week report.WeekDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&week))
	assert.Equal(t, int64(560_000), week.Spent)
	assert.Equal(t, int64(140_000), week.Remaining)
	assert.Equal(t, "warning", week.Level)
	assert.InDelta(t, 80.0, week.UsedPercent, 0.001)
}
