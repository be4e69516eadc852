// Package service holds the catalog reconciliation logic: it merges the remote
// catalog with the local override store and keeps both sides in step.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rogerio-castellano/catalog-manager/internal/catalog"
	"github.com/rogerio-castellano/catalog-manager/internal/events"
	"github.com/rogerio-castellano/catalog-manager/internal/i18n"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
	"github.com/rogerio-castellano/catalog-manager/internal/normalize"
	"github.com/rogerio-castellano/catalog-manager/internal/repo"
)

// DefaultExchangeRate converts remote USD prices to BRL.
const DefaultExchangeRate = 5.5

// DefaultRemoteTimeout bounds the shared remote list fetch.
const DefaultRemoteTimeout = 10 * time.Second

const producerName = "catalog-manager"

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrRemoteUnavailable wraps remote catalog failures other than not-found.
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
)

// DeleteResult is returned by DeleteProduct.
type DeleteResult struct {
	ID int `json:"id"`
}

// CategorySummary is one entry of the Categories listing.
type CategorySummary struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Observer receives remote call outcomes. observability.Metrics implements it.
type Observer interface {
	ObserveRemote(op string, d time.Duration, err error)
	ObserveSyncDropped(op string)
}

type nopObserver struct{}

func (nopObserver) ObserveRemote(string, time.Duration, error) {}
func (nopObserver) ObserveSyncDropped(string)                  {}

type CatalogService struct {
	source     catalog.Source
	overrides  repo.OverrideRepository
	history    repo.HistoryRepository
	publisher  events.Publisher
	translator i18n.Translator
	sync       *RemoteSync
	observer   Observer
	logger     *slog.Logger

	rate          float64
	capitalize    bool
	remoteTimeout time.Duration

	group singleflight.Group

	idMu   sync.Mutex
	lastID int
	now    func() time.Time
}

type Option func(*CatalogService)

func WithExchangeRate(rate float64) Option {
	return func(s *CatalogService) {
		if rate > 0 {
			s.rate = rate
		}
	}
}

// WithRemoteTimeout bounds remote list fetches shared between concurrent callers.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *CatalogService) {
		if d > 0 {
			s.remoteTimeout = d
		}
	}
}

func WithTranslator(t i18n.Translator) Option {
	return func(s *CatalogService) { s.translator = t }
}

// WithCapitalizedTitles upper-cases the first letter of titles on create and update.
func WithCapitalizedTitles(on bool) Option {
	return func(s *CatalogService) { s.capitalize = on }
}

func WithClock(now func() time.Time) Option {
	return func(s *CatalogService) { s.now = now }
}

func WithRemoteSync(rs *RemoteSync) Option {
	return func(s *CatalogService) { s.sync = rs }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *CatalogService) { s.publisher = p }
}

func WithHistory(h repo.HistoryRepository) Option {
	return func(s *CatalogService) { s.history = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *CatalogService) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *CatalogService) { s.observer = o }
}

func NewCatalogService(source catalog.Source, overrides repo.OverrideRepository, opts ...Option) *CatalogService {
	s := &CatalogService{
		source:        source,
		overrides:     overrides,
		publisher:     events.Noop{},
		translator:    i18n.PortugueseBR(),
		observer:      nopObserver{},
		logger:        slog.Default(),
		rate:          DefaultExchangeRate,
		remoteTimeout: DefaultRemoteTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProducts returns the effective catalog: local overrides first, in store
// order, then the surviving remote products in source order. A failing remote
// degrades the result to the local overrides.
func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	local, err := s.overrides.ListLocalProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local products: %w", err)
	}
	deleted, err := s.overrides.GetDeletedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deleted ids: %w", err)
	}

	result := make([]models.Product, 0, len(local))
	seen := make(map[int]struct{}, len(local))
	for _, p := range local {
		if _, gone := deleted[p.ID]; gone {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}

	remote, err := s.listRemote(ctx)
	if err != nil {
		s.logger.Warn("remote catalog unavailable, serving local overrides only", slog.Any("error", err))
		return result, nil
	}

	for _, rp := range remote {
		if _, gone := deleted[rp.ID]; gone {
			continue
		}
		if _, overridden := seen[rp.ID]; overridden {
			continue
		}
		p, err := s.fromRemote(ctx, rp)
		if err != nil {
			return nil, err
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result, nil
}

func (s *CatalogService) listRemote(ctx context.Context) ([]models.Product, error) {
	// The fetch is shared, so it must outlive the caller that started it.
	v, err, _ := s.group.Do("products", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.remoteTimeout)
		defer cancel()
		start := time.Now()
		products, err := s.source.ListProducts(fetchCtx)
		s.observer.ObserveRemote("list", time.Since(start), err)
		return products, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

// fromRemote translates, prices and stocks a remote product.
func (s *CatalogService) fromRemote(ctx context.Context, rp models.Product) (models.Product, error) {
	p := rp
	p.Title, p.Description = s.translator.TranslateProduct(rp.ID, rp.Title, rp.Description)
	p.Price = normalize.Convert(rp.Price, s.rate)
	if rp.Rating != nil {
		r := *rp.Rating
		p.Rating = &r
	}
	stock, err := s.overrides.GetPersistentStock(ctx, rp.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("persistent stock for %d: %w", rp.ID, err)
	}
	p.Stock = stock
	return p, nil
}

// GetProduct returns the local override for id verbatim, or the transformed remote product.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (models.Product, error) {
	if p, ok, err := s.overrides.GetLocalProduct(ctx, id); err != nil {
		return models.Product{}, fmt.Errorf("get local product %d: %w", id, err)
	} else if ok {
		return p, nil
	}

	start := time.Now()
	rp, err := s.source.GetProduct(ctx, id)
	s.observer.ObserveRemote("get", time.Since(start), err)
	if errors.Is(err, catalog.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("fetch remote product %d: %w: %w", id, ErrRemoteUnavailable, err)
	}
	return s.fromRemote(ctx, rp)
}

// CreateProduct stores a new local product and returns the stored record.
func (s *CatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	p := s.normalized(in.Apply(models.Product{}))
	payload := p
	s.enqueue("create", func(ctx context.Context) error { return s.source.CreateProduct(ctx, payload) })

	p.ID = s.nextID()
	if err := s.overrides.SaveLocalProduct(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("save product: %w", err)
	}
	s.record(ctx, p, models.ActionCreated, events.EventProductCreated)
	return p, nil
}

// ImportProduct stores a product read from a bulk import. It behaves like
// CreateProduct but is recorded as an import.
func (s *CatalogService) ImportProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	p := s.normalized(in.Apply(models.Product{}))
	payload := p
	s.enqueue("create", func(ctx context.Context) error { return s.source.CreateProduct(ctx, payload) })

	p.ID = s.nextID()
	if err := s.overrides.SaveLocalProduct(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("save imported product: %w", err)
	}
	s.record(ctx, p, models.ActionImported, events.EventProductCreated)
	return p, nil
}

// UpdateProduct merges in over the current effective product and stores the
// result as a local override.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, in models.ProductInput) (models.Product, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	merged := s.normalized(in.Apply(current))
	merged.ID = id

	if err := s.overrides.SaveLocalProduct(ctx, merged); err != nil {
		return models.Product{}, fmt.Errorf("save product %d: %w", id, err)
	}
	if err := s.overrides.SetPersistentStock(ctx, id, merged.Stock); err != nil {
		return models.Product{}, fmt.Errorf("save stock for %d: %w", id, err)
	}
	s.enqueue("update", func(ctx context.Context) error { return s.source.UpdateProduct(ctx, id, merged) })
	s.record(ctx, merged, models.ActionUpdated, events.EventProductUpdated)
	return merged, nil
}

// DeleteProduct hides id from the effective catalog. Deleting twice is harmless.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) (DeleteResult, error) {
	prev, hadOverride, err := s.overrides.GetLocalProduct(ctx, id)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("get local product %d: %w", id, err)
	}
	if hadOverride {
		if _, err := s.overrides.DeleteLocalProduct(ctx, id); err != nil {
			return DeleteResult{}, fmt.Errorf("delete local product %d: %w", id, err)
		}
	}
	if err := s.overrides.AddDeletedID(ctx, id); err != nil {
		return DeleteResult{}, fmt.Errorf("mark %d deleted: %w", id, err)
	}
	s.enqueue("delete", func(ctx context.Context) error { return s.source.DeleteProduct(ctx, id) })

	p := models.Product{ID: id}
	if hadOverride {
		p = prev
	}
	s.record(ctx, p, models.ActionDeleted, events.EventProductDeleted)
	return DeleteResult{ID: id}, nil
}

// RestoreProduct undoes a delete using the product value the caller held
// before deleting it, and returns that value unchanged.
func (s *CatalogService) RestoreProduct(ctx context.Context, p models.Product) (models.Product, error) {
	wasDeleted, err := s.overrides.RemoveDeletedID(ctx, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("unmark %d deleted: %w", p.ID, err)
	}
	// An unedited remote product reappears from the feed once unmarked.
	if !wasDeleted || models.IsLocalID(p.ID) || !s.matchesRemote(ctx, p) {
		if _, err := s.overrides.SaveLocalProductIfAbsent(ctx, p); err != nil {
			return models.Product{}, fmt.Errorf("restore product %d: %w", p.ID, err)
		}
	}
	s.record(ctx, p, models.ActionRestored, events.EventProductRestored)
	return p, nil
}

// matchesRemote reports whether p equals the current transformed remote copy
// of its id. An unreachable remote counts as a mismatch.
func (s *CatalogService) matchesRemote(ctx context.Context, p models.Product) bool {
	start := time.Now()
	rp, err := s.source.GetProduct(ctx, p.ID)
	s.observer.ObserveRemote("get", time.Since(start), err)
	if err != nil {
		return false
	}
	current, err := s.fromRemote(ctx, rp)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(current, p)
}

// Categories lists the distinct categories of the effective catalog, sorted by name.
func (s *CatalogService) Categories(ctx context.Context) ([]CategorySummary, error) {
	products, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range products {
		counts[normalize.Category(p.Category)]++
	}
	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		if name == "" {
			continue
		}
		out = append(out, CategorySummary{Name: name, Label: s.translator.TranslateCategory(name), Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *CatalogService) normalized(p models.Product) models.Product {
	if s.capitalize {
		p.Title = normalize.CapitalizeFirst(p.Title)
	} else {
		p.Title = normalize.Name(p.Title)
	}
	p.Category = normalize.Category(p.Category)
	p.Price = normalize.Price(p.Price)
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p
}

// nextID hands out millisecond-derived ids that strictly increase within the process.
func (s *CatalogService) nextID() int {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	id := int(s.now().UnixMilli())
	if id < models.LocalIDFloor {
		id = models.LocalIDFloor
	}
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *CatalogService) enqueue(op string, fn func(ctx context.Context) error) {
	if s.sync == nil {
		return
	}
	s.sync.Enqueue(op, fn)
}

// record writes the history entry and publishes the change event. Neither can fail the mutation.
func (s *CatalogService) record(ctx context.Context, p models.Product, action models.HistoryAction, eventType string) {
	if s.history != nil {
		if err := s.history.Log(ctx, p.ID, action, p.Title); err != nil {
			s.logger.Warn("record product history", slog.Int("product_id", p.ID), slog.String("action", string(action)), slog.Any("error", err))
		}
	}
	s.publisher.Publish(ctx, events.New(eventType, producerName, p.ID, p))
}
