package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sessionml/vmisknn/internal/config"
	"github.com/sessionml/vmisknn/internal/httpapi"
	"github.com/sessionml/vmisknn/internal/logging"
	"github.com/sessionml/vmisknn/internal/metrics"
	"github.com/sessionml/vmisknn/internal/sessionstore"
	"github.com/sessionml/vmisknn/internal/vmisknn"
	vmisknnstorage "github.com/sessionml/vmisknn/internal/vmisknn/storage"

	"github.com/dgraph-io/badger/v4"
)

const snapshotName = "vmisknn"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("starting vmisknn recommender")

	index, err := loadOrBuildIndex(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build or load index")
	}

	engine, err := vmisknn.NewEngine(index, cfg.Model.ToVMISKNNConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create engine")
	}
	logging.Info().Int("sessions", index.SessionCount()).Msg("engine ready")

	sessions, closeSessions, err := buildSessionStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize session store")
	}
	defer closeSessions()

	handler := httpapi.NewHandler(engine, sessions, cfg.SessionStore.TTL, cfg.Model.MaxItemsInSession)
	router, stopRateLimiter := httpapi.NewRouter(handler, httpapi.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	})
	defer stopRateLimiter()

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Training.RebuildInterval > 0 {
		go runRebuildLoop(ctx, cfg, engine)
	}

	if cfg.SessionStore.CleanupInterval > 0 {
		go runSessionCleanupLoop(ctx, sessions, cfg.SessionStore.CleanupInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		logging.Error().Err(err).Msg("http server error")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("error during http server shutdown")
	}

	logging.Info().Msg("server stopped gracefully")
}

// loadOrBuildIndex loads the latest persisted snapshot if storage is
// enabled and one exists, otherwise builds a fresh index from the
// training corpus and, if storage is enabled, persists it.
func loadOrBuildIndex(cfg *config.Config) (*vmisknn.Index, error) {
	if cfg.Storage.Enabled {
		store, err := vmisknnstorage.NewStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		if _, ok := store.GetLatestVersion(cfg.Storage.Name); ok {
			idx, meta, err := store.Load(cfg.Storage.Name, 0)
			if err == nil {
				logging.Info().Int("version", meta.Version).Time("built_at", meta.BuiltAt).Msg("loaded index snapshot")
				return idx, nil
			}
			logging.Warn().Err(err).Msg("failed to load index snapshot, rebuilding")
		}
	}

	idx, err := buildIndex(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Enabled {
		if err := persistIndex(cfg, idx); err != nil {
			logging.Warn().Err(err).Msg("failed to persist index snapshot")
		}
	}

	return idx, nil
}

func buildIndex(cfg *config.Config) (*vmisknn.Index, error) {
	f, err := os.Open(cfg.Training.EventsPath)
	if err != nil {
		metrics.RecordIndexBuildError("index_io")
		return nil, err
	}
	defer f.Close()

	start := time.Now()
	events, err := vmisknn.ReadTrainingFile(f)
	if err != nil {
		metrics.RecordIndexBuildError("malformed_input")
		return nil, err
	}
	if len(events) == 0 {
		metrics.RecordIndexBuildError("empty_corpus")
		return nil, errors.New("training file contains no events")
	}

	opts := vmisknn.BuildOptions{
		MMostRecentSessions: cfg.Model.MMostRecentSessions,
		MaxSessionLength:    cfg.Model.MaxSessionLength,
	}
	if cfg.Training.AttributesPath != "" {
		attrs, err := loadAttributes(cfg.Training.AttributesPath)
		if err != nil {
			metrics.RecordIndexBuildError("malformed_input")
			return nil, err
		}
		opts.Attributes = attrs
	}

	idx, err := vmisknn.Build(events, opts)
	if err != nil {
		return nil, err
	}
	metrics.RecordIndexBuild(time.Since(start), idx.SessionCount())
	return idx, nil
}

func loadAttributes(path string) (map[vmisknn.ItemID]vmisknn.ItemAttributes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vmisknn.ReadAttributesFile(f)
}

func persistIndex(cfg *config.Config, idx *vmisknn.Index) error {
	store, err := vmisknnstorage.NewStore(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	version, _ := store.GetLatestVersion(cfg.Storage.Name)
	if err := store.Save(cfg.Storage.Name, version+1, idx, time.Now()); err != nil {
		return err
	}
	return store.Prune(cfg.Storage.Name, cfg.Storage.KeepVersions)
}

func runRebuildLoop(ctx context.Context, cfg *config.Config, engine *vmisknn.Engine) {
	ticker := time.NewTicker(cfg.Training.RebuildInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idx, err := buildIndex(cfg)
			if err != nil {
				logging.Error().Err(err).Msg("scheduled index rebuild failed")
				continue
			}
			engine.Rebuild(idx)
			if cfg.Storage.Enabled {
				if err := persistIndex(cfg, idx); err != nil {
					logging.Warn().Err(err).Msg("failed to persist rebuilt index snapshot")
				}
			}
			logging.Info().Int("sessions", idx.SessionCount()).Msg("index rebuilt")
		}
	}
}

func runSessionCleanupLoop(ctx context.Context, sessions sessionstore.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("session cleanup failed")
				continue
			}
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("expired sessions cleaned up")
			}
		}
	}
}

func buildSessionStore(cfg *config.Config) (sessionstore.Store, func(), error) {
	switch cfg.SessionStore.Backend {
	case "badger":
		opts := badger.DefaultOptions(cfg.SessionStore.BadgerDir)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, func() {}, err
		}
		return sessionstore.NewBadgerStore(db), func() { _ = db.Close() }, nil
	default:
		return sessionstore.NewMemoryStore(), func() {}, nil
	}
}
