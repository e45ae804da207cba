package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/giaphaapp/giapha-server/internal/config"
	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/logger"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvidePolicyEngine provides the access policy engine. Config validation
// guarantees the tier is in range, so construction cannot panic here.
func ProvidePolicyEngine(i do.Injector) (*policy.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	engine := policy.New(policy.Config{
		Version:     cfg.Policy.Version,
		DefaultTier: domain.Tier(cfg.Policy.DefaultTier),
	})

	log.Info("Policy engine ready",
		"policy_version", engine.Version(),
		"default_tier", engine.DefaultTier(),
	)

	return engine, nil
}
