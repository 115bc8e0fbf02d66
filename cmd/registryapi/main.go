// Command registryapi is a minimal REST submission gateway demonstrating the
// §6 batch-status polling contract: POST a transaction, get back a batch id,
// poll its status until it leaves PENDING/UNKNOWN. It stands in for the
// submission collaborator the core transaction processor treats as external.
package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/synnergy-registry/registry/core"
	"github.com/synnergy-registry/registry/pkg/config"
	"github.com/synnergy-registry/registry/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("registryapi: .env not loaded")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logrus.WithError(err).Warn("registryapi: using built-in defaults, config load failed")
		cfg = &config.Config{}
		cfg.Storage.WALPath = "data/registry.wal"
		cfg.Storage.SnapshotPath = "data/registry.snapshot.json"
		cfg.Storage.SnapshotInterval = utils.EnvOrDefaultInt("REGISTRY_SNAPSHOT_INTERVAL", 500)
		cfg.API.ListenAddr = ":8080"
		cfg.API.RetryAttempts = utils.EnvOrDefaultInt("REGISTRY_RETRY_ATTEMPTS", defaultMaxPollAttempts)
	}

	store, err := core.NewStore(core.StoreConfig{
		WALPath:          cfg.Storage.WALPath,
		SnapshotPath:     cfg.Storage.SnapshotPath,
		SnapshotInterval: cfg.Storage.SnapshotInterval,
	})
	if err != nil {
		logrus.WithError(err).Fatal("registryapi: open store")
	}
	defer store.Close()

	gw := newGateway(core.NewStateFacade(store), cfg.API.RetryAttempts)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/batches", gw.submitBatch)
	r.Get("/batches/{batchID}", gw.batchStatus)
	r.Get("/accounts", gw.listAccounts)
	r.Get("/tokens", gw.listTokens)
	r.Get("/tokens/{identifier}/holders", gw.tokenHolders)
	r.Get("/accounts/{pkey}/tokens", gw.accountTokens)

	addr := cfg.API.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	logrus.WithField("addr", addr).Info("registryapi: listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.WithError(err).Fatal("registryapi: server stopped")
	}
}
