package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/catalog-manager/internal/catalog"
	"github.com/rogerio-castellano/catalog-manager/internal/config"
	"github.com/rogerio-castellano/catalog-manager/internal/db"
	"github.com/rogerio-castellano/catalog-manager/internal/events"
	api "github.com/rogerio-castellano/catalog-manager/internal/http"
	"github.com/rogerio-castellano/catalog-manager/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-manager/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-manager/internal/i18n"
	"github.com/rogerio-castellano/catalog-manager/internal/kv"
	"github.com/rogerio-castellano/catalog-manager/internal/observability"
	"github.com/rogerio-castellano/catalog-manager/internal/redissvc"
	"github.com/rogerio-castellano/catalog-manager/internal/repo"
	"github.com/rogerio-castellano/catalog-manager/internal/service"
)

// @title Catalog Manager API
// @version 1.0
// @description Product catalog backed by a remote sample store with local overrides, favorites and change history.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("backend", cfg.Store.Backend), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	metrics := observability.NewMetrics()

	remoteSync := service.NewRemoteSync(cfg.Sync.Buffer, cfg.Sync.Timeout, logger, metrics)
	remoteSync.Start()

	var publisher events.Publisher = events.Noop{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kp := events.NewKafkaPublisher(brokers, cfg.Kafka.Topic, cfg.Kafka.Buffer, logger)
		kp.Start()
		defer kp.Close()
		publisher = kp
		logger.Info("publishing catalog events", slog.Any("brokers", brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	var translator i18n.Translator = i18n.Noop{}
	if cfg.Catalog.Translate {
		translator = i18n.PortugueseBR()
	}

	overrides := repo.NewKVOverrideRepository(store, logger)
	favorites := repo.NewKVFavoritesRepository(store, logger)
	history := repo.NewKVHistoryRepository(store, logger)

	svc := service.NewCatalogService(
		catalog.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout),
		overrides,
		service.WithExchangeRate(cfg.Catalog.ExchangeRate),
		service.WithRemoteTimeout(cfg.Remote.Timeout),
		service.WithTranslator(translator),
		service.WithCapitalizedTitles(cfg.Catalog.CapitalizeTitles),
		service.WithRemoteSync(remoteSync),
		service.WithPublisher(publisher),
		service.WithHistory(history),
		service.WithLogger(logger),
		service.WithObserver(metrics),
	)

	handlers.SetLogger(logger)
	handlers.SetCatalogService(svc)
	handlers.SetFavoritesRepo(favorites)
	handlers.SetHistoryRepo(history)
	handlers.SetMetricsRepo(repo.NewCatalogMetricsRepository(svc, favorites))

	limiter := rl.New(cfg.Limit.RPS, cfg.Limit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	srv := &http.Server{
		Addr: cfg.App.Addr,
		Handler: api.NewRouter(api.RouterOptions{
			Logger:         logger,
			Metrics:        metrics,
			Limiter:        limiter,
			RequestTimeout: cfg.App.RequestTimeout,
		}),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	go func() {
		logger.Info("server running", slog.String("addr", cfg.App.Addr), slog.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", slog.Any("error", err))
	}
	remoteSync.Close()
	cancel()
}

// openStore connects the configured persistence backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(rdb, cfg.Store.KeyPrefix), func() { _ = rdb.Close() }, nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewPostgresStore(database)
		if err := store.Migrate(ctx); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		return store, func() { _ = database.Close() }, nil

	default:
		logger.Warn("using the in-memory store; catalog state is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	}
}
