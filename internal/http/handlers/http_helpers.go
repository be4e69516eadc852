package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}
	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// respond writes data and logs a failed write.
func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		logger.Error("write response", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product ID")
	}
	return id, nil
}

func queryIntPtr(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", key)
	}
	return &v, nil
}

func queryFloatPtr(r *http.Request, key string) (*float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", key)
	}
	return &v, nil
}

// queryTimePtr parses an RFC3339 query value. A '+' in the offset arrives as a
// space after query decoding and is put back before parsing.
func queryTimePtr(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format", key)
	}
	return &ts, nil
}

// pagination reads offset and limit, rejecting negative offsets and non-positive limits.
func pagination(r *http.Request) (offset, limit *int, err error) {
	if offset, err = queryIntPtr(r, "offset"); err != nil {
		return nil, nil, err
	}
	if limit, err = queryIntPtr(r, "limit"); err != nil {
		return nil, nil, err
	}
	if limit != nil && *limit <= 0 {
		return nil, nil, errors.New("limit must be greater than zero")
	}
	if offset != nil && *offset < 0 {
		return nil, nil, errors.New("offset must be zero or positive")
	}
	return offset, limit, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(key)))
	return v
}
