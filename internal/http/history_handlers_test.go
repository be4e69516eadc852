package http_test

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/rogerio-castellano/catalog-manager/internal/http/handlers"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

func seedHistory(t *testing.T, env testEnv) handler.ProductResponse {
	t.Helper()
	created := env.createProduct(t, lampRequest())
	stock := 7
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), handler.ProductUpdateRequest{Stock: &stock}).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/products/2", nil).Code)
	return created
}

func TestGetHistoryHandler(t *testing.T) {
	env := setup(t)
	created := seedHistory(t, env)

	w := env.do(t, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[handler.HistorySearchResult](t, w)
	assert.Equal(t, 3, all.Meta.TotalCount)

	w = env.do(t, http.MethodGet, "/history?action=deleted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decode[handler.HistorySearchResult](t, w)
	require.Equal(t, 1, deleted.Meta.TotalCount)
	assert.Equal(t, 2, deleted.Data[0].ProductID)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/products/%d/history?limit=1", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[handler.HistorySearchResult](t, w)
	assert.Equal(t, 2, page.Meta.TotalCount)
	require.Len(t, page.Data, 1)
	assert.Equal(t, string(models.ActionCreated), page.Data[0].Action)
}

func TestGetHistoryHandler_InvalidInput(t *testing.T) {
	env := setup(t)
	for _, q := range []string{"?action=exploded", "?since=yesterday", "?limit=-2", "?productId=x"} {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/history"+q, nil).Code, q)
	}
}

func TestGetHistoryHandler_SinceWithOffset(t *testing.T) {
	env := setup(t)
	seedHistory(t, env)

	// '+' decodes to a space in query strings.
	w := env.do(t, http.MethodGet, "/history?since=2000-01-01T00:00:00+02:00", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[handler.HistorySearchResult](t, w).Meta.TotalCount)

	w = env.do(t, http.MethodGet, "/history?until=2000-01-01T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[handler.HistorySearchResult](t, w).Meta.TotalCount)
}

func TestExportHistoryHandler(t *testing.T) {
	env := setup(t)
	seedHistory(t, env)

	t.Run("csv", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/history/export?format=csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

		records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, []string{"id", "product_id", "action", "title", "created_at"}, records[0])
		assert.Equal(t, "Lamp", records[1][3])
	})

	t.Run("json", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/history/export?format=json&action=updated", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "history.json")

		var entries []models.HistoryEntry
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, models.ActionUpdated, entries[0].Action)
	})

	t.Run("bad format", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/history/export?format=xml", nil).Code)
	})
}
