package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	api "github.com/rogerio-castellano/catalog-manager/internal/http"
	"github.com/rogerio-castellano/catalog-manager/internal/catalog"
	handler "github.com/rogerio-castellano/catalog-manager/internal/http/handlers"
	"github.com/rogerio-castellano/catalog-manager/internal/i18n"
	"github.com/rogerio-castellano/catalog-manager/internal/kv"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
	"github.com/rogerio-castellano/catalog-manager/internal/repo"
	"github.com/rogerio-castellano/catalog-manager/internal/service"
)

type stubSource struct {
	mu       sync.Mutex
	products []models.Product
	err      error
}

func (s *stubSource) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Product(nil), s.products...), nil
}

func (s *stubSource) GetProduct(_ context.Context, id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, catalog.ErrNotFound
}

func (s *stubSource) CreateProduct(context.Context, models.Product) error    { return nil }
func (s *stubSource) UpdateProduct(context.Context, int, models.Product) error { return nil }
func (s *stubSource) DeleteProduct(context.Context, int) error               { return nil }

type testEnv struct {
	router    http.Handler
	source    *stubSource
	favorites *repo.KVFavoritesRepository
}

func remoteProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Backpack", Price: 20, Description: "Fits a laptop", Category: "electronics", Image: "https://example.com/1.png", Rating: &models.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Jacket", Price: 10, Description: "Warm jacket", Category: "men's clothing", Image: "https://example.com/2.png"},
	}
}

// setup wires fresh in-memory state into the handlers and returns the router.
func setup(t *testing.T) testEnv {
	t.Helper()
	store := kv.NewMemoryStore()
	source := &stubSource{products: remoteProducts()}
	history := repo.NewKVHistoryRepository(store, nil)
	favorites := repo.NewKVFavoritesRepository(store, nil)
	svc := service.NewCatalogService(source, repo.NewKVOverrideRepository(store, nil),
		service.WithTranslator(i18n.Noop{}),
		service.WithHistory(history),
	)

	handler.SetCatalogService(svc)
	handler.SetFavoritesRepo(favorites)
	handler.SetHistoryRepo(history)
	handler.SetMetricsRepo(repo.NewCatalogMetricsRepository(svc, favorites))

	return testEnv{router: api.NewRouter(api.RouterOptions{}), source: source, favorites: favorites}
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e testEnv) createProduct(t *testing.T, p handler.ProductRequest) handler.ProductResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/products", p)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp handler.ProductResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func lampRequest() handler.ProductRequest {
	stock := 3
	return handler.ProductRequest{
		Title:       " Lamp ",
		Price:       9.999,
		Description: "A desk lamp with a long arm",
		Category:    "HOME",
		Image:       "https://example.com/lamp.png",
		Stock:       &stock,
	}
}
