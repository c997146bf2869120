package repositories

import (
	"context"
	"time"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// LedgerRepository defines read access to the ledger data source. The engine
// never writes to it.
type LedgerRepository interface {
	// FetchEntries returns every ledger entry (with its lines) recorded for
	// the company whose entry date falls within [start, end].
	FetchEntries(ctx context.Context, companyID string, start, end time.Time) ([]domain.LedgerEntry, error)
}
