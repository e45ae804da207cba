package providers

import (
	"github.com/samber/do/v2"

	"github.com/giaphaapp/giapha-server/internal/auth"
	"github.com/giaphaapp/giapha-server/internal/logger"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvidePersonService provides the person write service.
func ProvidePersonService(i do.Injector) (*service.PersonService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*policy.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPersonService(storeHandle.Store, engine, log.Logger), nil
}

// ProvideFamilyService provides the family structure write service.
func ProvideFamilyService(i do.Injector) (*service.FamilyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFamilyService(storeHandle.Store, log.Logger), nil
}

// ProvideGenealogyService provides the policy-filtered read service.
func ProvideGenealogyService(i do.Injector) (*service.GenealogyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*policy.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGenealogyService(storeHandle.Store, engine, log.Logger), nil
}

// ProvideAuditService provides the sweep and audit service.
func ProvideAuditService(i do.Injector) (*service.AuditService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*policy.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuditService(storeHandle.Store, engine, log.Logger), nil
}
