package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
	repo "github.com/rogerio-castellano/catalog-manager/internal/repo"
)

var validActions = map[models.HistoryAction]struct{}{
	models.ActionCreated:  {},
	models.ActionUpdated:  {},
	models.ActionDeleted:  {},
	models.ActionRestored: {},
	models.ActionImported: {},
}

func historyFilter(r *http.Request, paginate bool) (repo.HistoryFilter, error) {
	var hf repo.HistoryFilter
	var err error

	if action := models.HistoryAction(r.URL.Query().Get("action")); action != "" {
		if _, ok := validActions[action]; !ok {
			return hf, fmt.Errorf("unknown action %q", action)
		}
		hf.Action = action
	}
	if hf.ProductID, err = queryIntPtr(r, "productId"); err != nil {
		return hf, err
	}
	if hf.Since, err = queryTimePtr(r, "since"); err != nil {
		return hf, err
	}
	if hf.Until, err = queryTimePtr(r, "until"); err != nil {
		return hf, err
	}
	if paginate {
		hf.Offset, hf.Limit, err = pagination(r)
	}
	return hf, err
}

func toHistorySearchResult(entries []models.HistoryEntry, total int) HistorySearchResult {
	resp := HistorySearchResult{
		Data: make([]HistoryResponse, len(entries)),
		Meta: Meta{TotalCount: total},
	}
	for i, e := range entries {
		resp.Data[i] = HistoryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Action:    string(e.Action),
			Title:     e.Title,
			CreatedAt: e.CreatedAt,
		}
	}
	return resp
}

// GetHistoryHandler godoc
// @Summary Catalog change history
// @Tags history
// @Produce json
// @Param productId query int false "Only entries of this product"
// @Param action query string false "created, updated, deleted, restored or imported"
// @Param since query string false "Entries from this timestamp (RFC3339)"
// @Param until query string false "Entries until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} HistorySearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /history [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	hf, err := historyFilter(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, total, err := historyRepo.Find(r.Context(), hf)
	if err != nil {
		logger.Error("find history", slog.Any("error", err))
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, toHistorySearchResult(entries, total))
}

// GetProductHistoryHandler godoc
// @Summary Change history of one product
// @Tags history
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Entries from this timestamp (RFC3339)"
// @Param until query string false "Entries until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} HistorySearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/history [get]
func GetProductHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hf, err := historyFilter(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hf.ProductID = &id

	entries, total, err := historyRepo.Find(r.Context(), hf)
	if err != nil {
		logger.Error("find product history", slog.Int("product_id", id), slog.Any("error", err))
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, toHistorySearchResult(entries, total))
}

// ExportHistoryHandler godoc
// @Summary Export the change history
// @Tags history
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param productId query int false "Only entries of this product"
// @Param action query string false "Only entries with this action"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /history/export [get]
func ExportHistoryHandler(w http.ResponseWriter, r *http.Request) {
	exportFormat := r.URL.Query().Get("format")
	if exportFormat != "csv" && exportFormat != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}
	hf, err := historyFilter(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, _, err := historyRepo.Find(r.Context(), hf)
	if err != nil {
		logger.Error("export history", slog.Any("error", err))
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}

	switch exportFormat {
	case "json":
		header := http.Header{}
		header.Set("Content-Disposition", `attachment; filename="history.json"`)
		if err := writeJSON(w, http.StatusOK, entries, header); err != nil {
			logger.Error("write history export", slog.Any("error", err))
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "action", "title", "created_at"})
		for _, e := range entries {
			_ = csvWriter.Write([]string{
				strconv.Itoa(e.ID),
				strconv.Itoa(e.ProductID),
				string(e.Action),
				e.Title,
				e.CreatedAt,
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			logger.Error("write history csv", slog.Any("error", err))
		}
	}
}
