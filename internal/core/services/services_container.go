package services

import (
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The factory owns the per-standard strategy cache; everything else
	// reaches strategies through it.
	container.Factory = NewFiscalServiceFactory(repos)
	container.Fiscal = NewFiscalService(container.Factory, repos)

	return container
}
