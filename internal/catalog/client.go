// Package catalog is the client for the remote, read-only sample product API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

var (
	// ErrNotFound is returned when the remote catalog has no product for the id.
	ErrNotFound = errors.New("remote product not found")
	// ErrUnexpectedStatus is returned for any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected remote status")
)

// Source is the remote catalog contract the reconciliation service depends on.
type Source interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error
	UpdateProduct(ctx context.Context, id int, p models.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

// productPayload is the body sent on create and update; the remote assigns ids.
type productPayload struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// Client talks to a fakestoreapi-compatible HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product. The sample API answers unknown ids with an
// empty 200 body, which is reported as ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id int) (models.Product, error) {
	var p *models.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return models.Product{}, err
	}
	if p == nil {
		return models.Product{}, fmt.Errorf("catalog: get product %d: %w", id, ErrNotFound)
	}
	return *p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) error {
	return c.do(ctx, http.MethodPost, "/products", toPayload(p), nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id int, p models.Product) error {
	return c.do(ctx, http.MethodPut, productPath(id), toPayload(p), nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

func toPayload(p models.Product) productPayload {
	return productPayload{
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("catalog: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("catalog: %s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog: %s %s: %w: %d", method, path, ErrUnexpectedStatus, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("catalog: read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("catalog: decode %s %s: %w", method, path, err)
	}
	return nil
}
