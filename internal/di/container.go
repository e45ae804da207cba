// Package di provides dependency injection configuration for the GiaPha server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/giaphaapp/giapha-server/internal/auth"
	"github.com/giaphaapp/giapha-server/internal/config"
	"github.com/giaphaapp/giapha-server/internal/di/providers"
	"github.com/giaphaapp/giapha-server/internal/logger"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Policy layer
	do.Provide(injector, providers.ProvidePolicyEngine)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePersonService)
	do.Provide(injector, providers.ProvideFamilyService)
	do.Provide(injector, providers.ProvideGenealogyService)
	do.Provide(injector, providers.ProvideAuditService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)
	do.Provide(injector, providers.ProvideTierSweepJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*policy.Engine](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PersonService](injector)
	_ = do.MustInvoke[*service.FamilyService](injector)
	_ = do.MustInvoke[*service.GenealogyService](injector)
	_ = do.MustInvoke[*service.AuditService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)
	_ = do.MustInvoke[*providers.TierSweepJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
