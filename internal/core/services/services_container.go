package services

import (
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/library_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policy := domain.FinePolicy{
		LoanPeriod: cfg.LoanPeriod,
		PerDayRate: cfg.OverdueFinePerDay,
		DamageFine: cfg.DamageFine,
	}

	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(repos,
			WithFinePolicy(policy),
			WithReadRetryBackoff(cfg.ReadRetryBackoff),
		),
	}
}
