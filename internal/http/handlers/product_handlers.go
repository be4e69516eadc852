package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/catalog-manager/internal/format"
	models "github.com/rogerio-castellano/catalog-manager/internal/models"
	repo "github.com/rogerio-castellano/catalog-manager/internal/repo"
	"github.com/rogerio-castellano/catalog-manager/internal/service"
)

func toProductResponse(p models.Product, favorites map[int]struct{}) ProductResponse {
	_, fav := favorites[p.ID]
	return ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Price:          p.Price,
		FormattedPrice: money.Format(p.Price),
		Description:    p.Description,
		Category:       p.Category,
		CategoryLabel:  format.CategoryLabel(p.Category),
		Image:          p.Image,
		Stock:          p.Stock,
		Rating:         p.Rating,
		Local:          p.IsLocal(),
		Favorite:       fav,
		LowStock:       p.Stock < repo.LowStockThreshold,
	}
}

func favoriteSet(r *http.Request) (map[int]struct{}, error) {
	ids, err := favoritesRepo.List(r.Context())
	if err != nil {
		return nil, err
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, service.ErrRemoteUnavailable):
		logger.Warn(msg, slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "remote catalog unavailable", http.StatusBadGateway)
	default:
		logger.Error(msg, slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

// GetProductsHandler godoc
// @Summary List, search and paginate the effective catalog
// @Tags products
// @Produce json
// @Param search query string false "Case-insensitive title search"
// @Param category query string false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minStock query int false "Minimum stock"
// @Param maxStock query int false "Maximum stock"
// @Param favorites query bool false "Only favorite products"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := catalogService.GetProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "could not fetch products")
		return
	}
	favorites, err := favoriteSet(r)
	if err != nil {
		writeServiceError(w, r, err, "could not fetch favorites")
		return
	}

	page, total := repo.FilterProducts(products, filter, favorites)
	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(page)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range page {
		resp.Data[i] = toProductResponse(p, favorites)
	}
	respond(w, r, http.StatusOK, resp)
}

func productFilter(r *http.Request) (repo.ProductFilter, error) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Search:        q.Get("search"),
		Category:      q.Get("category"),
		FavoritesOnly: queryBool(r, "favorites"),
	}
	var err error
	if filter.MinPrice, err = queryFloatPtr(r, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryFloatPtr(r, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinStock, err = queryIntPtr(r, "minStock"); err != nil {
		return filter, err
	}
	if filter.MaxStock, err = queryIntPtr(r, "maxStock"); err != nil {
		return filter, err
	}
	filter.Offset, filter.Limit, err = pagination(r)
	return filter, err
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 502 {string} string "Remote catalog unavailable"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := catalogService.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "could not fetch product")
		return
	}
	favorites, err := favoriteSet(r)
	if err != nil {
		writeServiceError(w, r, err, "could not fetch favorites")
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(product, favorites))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Stores a local product and forwards it to the remote catalog in the background
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req = req.trimmed()
	if errs := validateRequest(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	created, err := catalogService.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, r, err, "could not create product")
		return
	}
	respond(w, r, http.StatusCreated, toProductResponse(created, nil))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update. Editing a remote product turns it into a local override.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductUpdateRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 502 {string} string "Remote catalog unavailable"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req = req.trimmed()
	if errs := validateRequest(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	updated, err := catalogService.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		writeServiceError(w, r, err, "could not update product")
		return
	}
	favorites, err := favoriteSet(r)
	if err != nil {
		writeServiceError(w, r, err, "could not fetch favorites")
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(updated, favorites))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Hides the product from the catalog. Deleting twice succeeds.
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := catalogService.DeleteProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "could not delete product")
		return
	}
	respond(w, r, http.StatusOK, DeleteResponse{ID: res.ID})
}

// RestoreProductHandler godoc
// @Summary Restore a deleted product
// @Description Undoes a delete with the product value held before deleting it
// @Tags products
// @Accept json
// @Produce json
// @Param product body RestoreRequest true "Product as it was before the delete"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/restore [post]
func RestoreProductHandler(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateRequest(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	restored, err := catalogService.RestoreProduct(r.Context(), req.toProduct())
	if err != nil {
		writeServiceError(w, r, err, "could not restore product")
		return
	}
	favorites, err := favoriteSet(r)
	if err != nil {
		writeServiceError(w, r, err, "could not fetch favorites")
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(restored, favorites))
}

// GetCategoriesHandler godoc
// @Summary Categories of the effective catalog
// @Tags products
// @Produce json
// @Success 200 {array} service.CategorySummary
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := catalogService.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "could not fetch categories")
		return
	}
	respond(w, r, http.StatusOK, categories)
}
