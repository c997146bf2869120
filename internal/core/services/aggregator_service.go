package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
)

// balanceAggregator reduces a company's ledger lines into per-account
// debit/credit/balance totals.
type balanceAggregator struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
}

// NewBalanceAggregator creates a new aggregator over the given ledger source.
func NewBalanceAggregator(ledgerRepo portsrepo.LedgerRepository) portssvc.BalanceAggregator {
	return &balanceAggregator{ledgerRepo: ledgerRepo}
}

var _ portssvc.BalanceAggregator = (*balanceAggregator)(nil)

// Aggregate loads every ledger entry for the company within [start, end] and
// folds the lines of the requested accounts into a balance map. An empty
// accountNumbers slice means all accounts. On a read failure no partial map
// is returned.
func (s *balanceAggregator) Aggregate(ctx context.Context, companyID string, accountNumbers []string, start, end time.Time) (map[string]domain.AccountBalance, error) {
	entries, err := s.ledgerRepo.FetchEntries(ctx, companyID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger entries",
			slog.String("company_id", companyID),
			slog.Time("start", start),
			slog.Time("end", end))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAggregation, err)
	}

	var requested map[string]struct{}
	if len(accountNumbers) > 0 {
		requested = make(map[string]struct{}, len(accountNumbers))
		for _, number := range accountNumbers {
			requested[number] = struct{}{}
		}
	}

	balances := make(map[string]domain.AccountBalance)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if requested != nil {
				if _, ok := requested[line.AccountNumber]; !ok {
					continue
				}
			}
			balances[line.AccountNumber] = balances[line.AccountNumber].Accumulate(line.Debit, line.Credit)
		}
	}

	s.LogDebug(ctx, "Ledger balances aggregated",
		slog.String("company_id", companyID),
		slog.Int("entry_count", len(entries)),
		slog.Int("account_count", len(balances)))
	return balances, nil
}
