package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/rogerio-castellano/catalog-manager/internal/http/handlers"
)

type categoryJSON struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type dashboardJSON struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	LowStockCount int `json:"low_stock_count"`
	FavoriteCount int `json:"favorite_count"`
	CategoryCount int `json:"category_count"`
}

func TestCreateProductHandler_Valid(t *testing.T) {
	env := setup(t)

	resp := env.createProduct(t, lampRequest())

	assert.Equal(t, "Lamp", resp.Title)
	assert.Equal(t, "home", resp.Category)
	assert.Equal(t, 10.00, resp.Price)
	assert.Equal(t, 3, resp.Stock)
	assert.True(t, resp.Local)
	assert.Equal(t, "Home", resp.CategoryLabel)
	assert.NotEmpty(t, resp.FormattedPrice)
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	env := setup(t)
	negative := -1

	tests := []struct {
		name           string
		mutate         func(*handler.ProductRequest)
		expectedFields []string
	}{
		{"short title", func(p *handler.ProductRequest) { p.Title = "ab" }, []string{"title"}},
		{"padded short title", func(p *handler.ProductRequest) { p.Title = "   a   " }, []string{"title"}},
		{"padded short category", func(p *handler.ProductRequest) { p.Category = "  ab  " }, []string{"category"}},
		{"zero price", func(p *handler.ProductRequest) { p.Price = 0 }, []string{"price"}},
		{"short description and bad image", func(p *handler.ProductRequest) {
			p.Description = "short"
			p.Image = "not a url"
		}, []string{"description", "image"}},
		{"negative stock", func(p *handler.ProductRequest) { p.Stock = &negative }, []string{"stock"}},
		{"missing category", func(p *handler.ProductRequest) { p.Category = "" }, []string{"category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := lampRequest()
			tt.mutate(&req)
			w := env.do(t, http.MethodPost, "/products", req)
			require.Equal(t, http.StatusBadRequest, w.Code)

			errs := decode[[]handler.ProductValidationError](t, w)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Description)
			}
			assert.ElementsMatch(t, tt.expectedFields, fields)
		})
	}
}

func TestCreateProductHandler_MalformedBody(t *testing.T) {
	env := setup(t)
	w := env.do(t, http.MethodPost, "/products", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductsHandler(t *testing.T) {
	env := setup(t)
	created := env.createProduct(t, lampRequest())

	w := env.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[handler.ProductsSearchResult](t, w)

	require.Equal(t, 3, resp.Meta.TotalCount)
	assert.Equal(t, created.ID, resp.Data[0].ID)
	assert.Equal(t, 1, resp.Data[1].ID)
	assert.Equal(t, 110.00, resp.Data[1].Price)
	assert.Equal(t, 98, resp.Data[1].Stock)
	assert.False(t, resp.Data[1].Local)
}

func TestGetProductsHandler_Filters(t *testing.T) {
	env := setup(t)
	env.createProduct(t, lampRequest())
	_, err := env.favorites.Toggle(t.Context(), 2)
	require.NoError(t, err)

	tests := []struct {
		query string
		ids   []int
		total int
	}{
		{"?search=BACK", []int{1}, 1},
		{"?category=Electronics", []int{1}, 1},
		{"?minPrice=50&maxPrice=60", []int{2}, 1},
		{"?maxStock=10", nil, 1},
		{"?favorites=true", []int{2}, 1},
		{"?offset=1&limit=1", []int{1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/products"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[handler.ProductsSearchResult](t, w)
			assert.Equal(t, tt.total, resp.Meta.TotalCount)
			if tt.ids != nil {
				var got []int
				for _, p := range resp.Data {
					got = append(got, p.ID)
				}
				assert.Equal(t, tt.ids, got)
			}
		})
	}
}

func TestGetProductsHandler_InvalidQuery(t *testing.T) {
	env := setup(t)
	for _, q := range []string{"?limit=0", "?offset=-1", "?minPrice=abc", "?maxStock=1.5"} {
		w := env.do(t, http.MethodGet, "/products"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetProductsHandler_RemoteDownServesLocal(t *testing.T) {
	env := setup(t)
	created := env.createProduct(t, lampRequest())
	env.source.err = errors.New("connection refused")

	w := env.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[handler.ProductsSearchResult](t, w)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, created.ID, resp.Data[0].ID)
}

func TestGetProductByIDHandler(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 110.00, decode[handler.ProductResponse](t, w).Price)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/products/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/products/abc", nil).Code)

	env.source.err = errors.New("connection refused")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodGet, "/products/1", nil).Code)
}

func TestUpdateProductHandler(t *testing.T) {
	env := setup(t)
	title := "Travel backpack"
	stock := 4

	w := env.do(t, http.MethodPut, "/products/1", handler.ProductUpdateRequest{Title: &title, Stock: &stock})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[handler.ProductResponse](t, w)

	assert.Equal(t, "Travel backpack", resp.Title)
	assert.Equal(t, 4, resp.Stock)
	assert.True(t, resp.LowStock)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 120, resp.Rating.Count)

	list := decode[handler.ProductsSearchResult](t, env.do(t, http.MethodGet, "/products", nil))
	assert.Equal(t, 2, list.Meta.TotalCount)
	assert.Equal(t, "Travel backpack", list.Data[0].Title)
}

func TestUpdateProductHandler_Errors(t *testing.T) {
	env := setup(t)
	short := "ab"
	padded := "   a   "
	stock := 1

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, "/products/1", handler.ProductUpdateRequest{Title: &short}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, "/products/1", handler.ProductUpdateRequest{Title: &padded}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/products/99", handler.ProductUpdateRequest{Stock: &stock}).Code)
}

func TestDeleteAndRestoreHandlers(t *testing.T) {
	env := setup(t)

	before := decode[handler.ProductResponse](t, env.do(t, http.MethodGet, "/products/1", nil))

	w := env.do(t, http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[handler.DeleteResponse](t, w).ID)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/products/1", nil).Code)

	list := decode[handler.ProductsSearchResult](t, env.do(t, http.MethodGet, "/products", nil))
	assert.Equal(t, 1, list.Meta.TotalCount)

	restore := handler.RestoreRequest{
		ID: before.ID, Title: before.Title, Price: before.Price, Description: before.Description,
		Category: before.Category, Image: before.Image, Stock: before.Stock, Rating: before.Rating,
	}
	w = env.do(t, http.MethodPost, "/products/restore", restore)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, before.Title, decode[handler.ProductResponse](t, w).Title)

	list = decode[handler.ProductsSearchResult](t, env.do(t, http.MethodGet, "/products", nil))
	assert.Equal(t, 2, list.Meta.TotalCount)
}

func TestRestoreHandler_LocalProduct(t *testing.T) {
	env := setup(t)
	created := env.createProduct(t, lampRequest())

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil).Code)

	restore := handler.RestoreRequest{
		ID: created.ID, Title: created.Title, Price: created.Price, Description: created.Description,
		Category: created.Category, Image: created.Image, Stock: created.Stock,
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/products/restore", restore).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil).Code)
}

func TestRestoreHandler_RequiresID(t *testing.T) {
	env := setup(t)
	w := env.do(t, http.MethodPost, "/products/restore", handler.RestoreRequest{Title: "Lamp"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoriesHandler(t *testing.T) {
	env := setup(t)
	env.createProduct(t, lampRequest())

	w := env.do(t, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cats := decode[[]categoryJSON](t, w)
	require.Len(t, cats, 3)
	assert.Equal(t, "electronics", cats[0].Name)
	assert.Equal(t, "home", cats[1].Name)
}

func TestGetDashboardMetricsHandler(t *testing.T) {
	env := setup(t)
	env.createProduct(t, lampRequest())
	_, err := env.favorites.Toggle(t.Context(), 1)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/metrics/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	m := decode[dashboardJSON](t, w)
	assert.Equal(t, 3, m.TotalProducts)
	assert.Equal(t, 3+98+95, m.TotalStock)
	assert.Equal(t, 1, m.LowStockCount)
	assert.Equal(t, 1, m.FavoriteCount)
	assert.Equal(t, 3, m.CategoryCount)
}

func TestHealthAndPrometheus(t *testing.T) {
	env := setup(t)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/healthz", nil).Code)
	// Metrics are disabled in RouterOptions{}.
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/metrics", nil).Code)
}
