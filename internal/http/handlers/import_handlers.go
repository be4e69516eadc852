package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

var requiredColumns = []string{"title", "price", "description", "category", "image"}

type csvRow struct {
	line int
	req  ProductRequest
	err  error
}

func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ { // header is line 1
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{line: line}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		row.req = ProductRequest{
			Title:       field("title"),
			Description: field("description"),
			Category:    field("category"),
			Image:       field("image"),
		}
		if row.req.Price, err = strconv.ParseFloat(strings.TrimSpace(field("price")), 64); err != nil {
			row.err = fmt.Errorf("invalid price %q", field("price"))
		}
		if s := strings.TrimSpace(field("stock")); s != "" && row.err == nil {
			stock, err := strconv.Atoi(s)
			if err != nil {
				row.err = fmt.Errorf("invalid stock %q", s)
			}
			row.req.Stock = &stock
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: title, price, description, category, image and optionally stock. Titles already in the catalog are skipped unless mode=update.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := catalogService.GetProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "could not fetch products")
		return
	}
	byTitle := make(map[string]int, len(products))
	for _, p := range products {
		byTitle[titleKey(p.Title)] = p.ID
	}

	imported := 0
	errorsList := []ProductValidationError{}
	rowError := func(line int, format string, args ...any) {
		errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: ", line) + fmt.Sprintf(format, args...)})
	}

	for _, row := range rows {
		if row.err != nil {
			rowError(row.line, "%v", row.err)
			continue
		}
		row.req = row.req.trimmed()
		if errs := validateRequest(row.req); len(errs) > 0 {
			for _, e := range errs {
				errorsList = append(errorsList, ProductValidationError{Field: e.Field, Description: fmt.Sprintf("row %d: %s", row.line, e.Description)})
			}
			continue
		}

		key := titleKey(row.req.Title)
		if id, exists := byTitle[key]; exists {
			if mode == "skip" {
				rowError(row.line, "product '%s' already exists", strings.TrimSpace(row.req.Title))
				continue
			}
			if _, err := catalogService.UpdateProduct(r.Context(), id, row.req.toInput()); err != nil {
				logger.Warn("import update", slog.Int("product_id", id), slog.Any("error", err))
				rowError(row.line, "failed to update '%s'", strings.TrimSpace(row.req.Title))
				continue
			}
			imported++
			continue
		}

		created, err := catalogService.ImportProduct(r.Context(), row.req.toInput())
		if err != nil {
			logger.Warn("import create", slog.Int("line", row.line), slog.Any("error", err))
			rowError(row.line, "%v", err)
			continue
		}
		byTitle[key] = created.ID
		imported++
	}

	respond(w, r, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
