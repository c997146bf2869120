package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
)

// countryStandards maps each supported country to its standard family. This
// membership table is distinct from the per-strategy country registries,
// which hold the numeric rates; it only answers "which standard governs this
// country".
var countryStandards = map[string]domain.Standard{
	// OHADA member states on the revised SYSCOHADA chart.
	"CI": domain.StandardSYSCOHADA,
	"SN": domain.StandardSYSCOHADA,
	"CM": domain.StandardSYSCOHADA,
	"BF": domain.StandardSYSCOHADA,
	"ML": domain.StandardSYSCOHADA,
	"TG": domain.StandardSYSCOHADA,
	"BJ": domain.StandardSYSCOHADA,
	"GA": domain.StandardSYSCOHADA,
	// IFRS-reporting jurisdictions.
	"NG": domain.StandardIFRS,
	"GH": domain.StandardIFRS,
	"KE": domain.StandardIFRS,
	"ZA": domain.StandardIFRS,
	"RW": domain.StandardIFRS,
	// SCF / PCM jurisdictions.
	"DZ": domain.StandardSCF,
	"MA": domain.StandardSCF,
	"TN": domain.StandardSCF,
}

// fiscalServiceFactory caches one strategy instance per standard. The cache
// is the only shared mutable state of the engine; the mutex makes the
// first-use construction an atomic check-and-set so concurrent callers
// cannot grow duplicate instances.
type fiscalServiceFactory struct {
	repos portsrepo.RepositoryProvider

	mu    sync.Mutex
	cache map[domain.Standard]portssvc.StandardStrategy
}

// NewFiscalServiceFactory creates the factory owned by the composition root.
func NewFiscalServiceFactory(repos portsrepo.RepositoryProvider) portssvc.FiscalFactorySvc {
	return &fiscalServiceFactory{
		repos: repos,
		cache: make(map[domain.Standard]portssvc.StandardStrategy),
	}
}

var _ portssvc.FiscalFactorySvc = (*fiscalServiceFactory)(nil)

// GetService returns the cached strategy for the standard, constructing it
// on first use.
func (f *fiscalServiceFactory) GetService(standard domain.Standard) (portssvc.StandardStrategy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strategy, ok := f.cache[standard]; ok {
		return strategy, nil
	}

	aggregator := NewBalanceAggregator(f.repos.LedgerRepo)

	var strategy portssvc.StandardStrategy
	switch standard {
	case domain.StandardSYSCOHADA:
		strategy = NewSYSCOHADAService(aggregator, f.repos.DeclarationRepo)
	case domain.StandardIFRS:
		strategy = NewIFRSService(aggregator, f.repos.DeclarationRepo)
	case domain.StandardSCF:
		strategy = NewSCFService(aggregator, f.repos.DeclarationRepo)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedStandard, standard)
	}

	f.cache[standard] = strategy
	return strategy, nil
}

// GetServiceForCountry resolves the country's standard through the
// membership table and delegates to GetService.
func (f *fiscalServiceFactory) GetServiceForCountry(country string) (portssvc.StandardStrategy, error) {
	standard, ok := countryStandards[country]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCountry, country)
	}
	return f.GetService(standard)
}

func (f *fiscalServiceFactory) IsCountrySupported(country string) bool {
	_, ok := countryStandards[country]
	return ok
}

func (f *fiscalServiceFactory) GetStandardForCountry(country string) (domain.Standard, bool) {
	standard, ok := countryStandards[country]
	return standard, ok
}

func (f *fiscalServiceFactory) GetSupportedCountries() []string {
	countries := make([]string, 0, len(countryStandards))
	for country := range countryStandards {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

func (f *fiscalServiceFactory) GetCountriesByStandard(standard domain.Standard) []string {
	var countries []string
	for country, std := range countryStandards {
		if std == standard {
			countries = append(countries, country)
		}
	}
	sort.Strings(countries)
	return countries
}

// ClearCache drops all cached strategies, forcing reconstruction on next
// use. Intended for isolated re-construction in tests.
func (f *fiscalServiceFactory) ClearCache() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = make(map[domain.Standard]portssvc.StandardStrategy)
}
