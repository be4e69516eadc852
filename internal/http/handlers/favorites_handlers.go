package handlers

import (
	"log/slog"
	"net/http"
)

func writeFavorites(w http.ResponseWriter, r *http.Request, status int) {
	ids, err := favoritesRepo.List(r.Context())
	if err != nil {
		logger.Error("list favorites", slog.Any("error", err))
		http.Error(w, "could not fetch favorites", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	respond(w, r, status, FavoritesResult{IDs: ids})
}

// GetFavoritesHandler godoc
// @Summary Favorite product ids
// @Tags favorites
// @Produce json
// @Success 200 {object} FavoritesResult
// @Failure 500 {string} string "Internal error"
// @Router /favorites [get]
func GetFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	writeFavorites(w, r, http.StatusOK)
}

// GetFavoriteProductsHandler godoc
// @Summary Favorite products present in the effective catalog
// @Tags favorites
// @Produce json
// @Success 200 {object} ProductsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /favorites/products [get]
func GetFavoriteProductsHandler(w http.ResponseWriter, r *http.Request) {
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

	resp := ProductsSearchResult{Data: []ProductResponse{}}
	for _, p := range products {
		if _, ok := favorites[p.ID]; ok {
			resp.Data = append(resp.Data, toProductResponse(p, favorites))
		}
	}
	resp.Meta.TotalCount = len(resp.Data)
	respond(w, r, http.StatusOK, resp)
}

// ToggleFavoriteHandler godoc
// @Summary Toggle a product in the favorites
// @Tags favorites
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ToggleFavoriteResult
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /favorites/{id}/toggle [post]
func ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	on, err := favoritesRepo.Toggle(r.Context(), id)
	if err != nil {
		logger.Error("toggle favorite", slog.Int("product_id", id), slog.Any("error", err))
		http.Error(w, "could not toggle favorite", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, ToggleFavoriteResult{ID: id, Favorite: on})
}

// AddFavoritesHandler godoc
// @Summary Add products to the favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Param ids body FavoriteIDsRequest true "Product ids"
// @Success 200 {object} FavoritesResult
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /favorites [post]
func AddFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	var req FavoriteIDsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateRequest(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}
	if err := favoritesRepo.Add(r.Context(), req.IDs); err != nil {
		logger.Error("add favorites", slog.Any("error", err))
		http.Error(w, "could not add favorites", http.StatusInternalServerError)
		return
	}
	writeFavorites(w, r, http.StatusOK)
}

// RemoveFavoritesHandler godoc
// @Summary Remove products from the favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Param ids body FavoriteIDsRequest true "Product ids"
// @Success 200 {object} FavoritesResult
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /favorites [delete]
func RemoveFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	var req FavoriteIDsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateRequest(req); len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}
	if err := favoritesRepo.Remove(r.Context(), req.IDs); err != nil {
		logger.Error("remove favorites", slog.Any("error", err))
		http.Error(w, "could not remove favorites", http.StatusInternalServerError)
		return
	}
	writeFavorites(w, r, http.StatusOK)
}
