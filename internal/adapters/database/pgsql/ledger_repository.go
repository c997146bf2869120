package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	"github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	*BaseRepository
}

func NewPgxLedgerRepository(pool *pgxpool.Pool) repositories.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: NewBaseRepository(pool)}
}

// ledgerEntryRow mirrors the ledger_entries table. reference is nullable in
// the schema, so it is scanned through a pointer.
type ledgerEntryRow struct {
	EntryID       string
	CompanyID     string
	EntryDate     time.Time
	Reference     *string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (row *ledgerEntryRow) toDomain() domain.LedgerEntry {
	entry := domain.LedgerEntry{
		EntryID:   row.EntryID,
		CompanyID: row.CompanyID,
		EntryDate: row.EntryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			LastUpdatedAt: row.LastUpdatedAt,
		},
	}
	if row.Reference != nil {
		entry.Reference = *row.Reference
	}
	return entry
}

// ledgerLineRow mirrors the ledger_lines table. label is nullable.
type ledgerLineRow struct {
	LineID        string
	EntryID       string
	AccountNumber string
	Label         *string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

func (row *ledgerLineRow) toDomain() domain.LedgerLine {
	line := domain.LedgerLine{
		LineID:        row.LineID,
		EntryID:       row.EntryID,
		AccountNumber: row.AccountNumber,
		Debit:         row.Debit,
		Credit:        row.Credit,
	}
	if row.Label != nil {
		line.Label = *row.Label
	}
	return line
}

// FetchEntries returns all posted ledger entries for the company whose entry
// date falls within [start, end], with their lines attached in insertion order.
func (r *PgxLedgerRepository) FetchEntries(ctx context.Context, companyID string, start, end time.Time) ([]domain.LedgerEntry, error) {
	const entryQuery = `
		SELECT entry_id, company_id, entry_date, reference, created_at, last_updated_at
		FROM ledger_entries
		WHERE company_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, entry_id;`

	rows, err := r.Pool.Query(ctx, entryQuery, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	index := make(map[string]int)
	for rows.Next() {
		var row ledgerEntryRow
		if err := rows.Scan(&row.EntryID, &row.CompanyID, &row.EntryDate, &row.Reference, &row.CreatedAt, &row.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		index[row.EntryID] = len(entries)
		entries = append(entries, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	const lineQuery = `
		SELECT l.line_id, l.entry_id, l.account_number, l.label, l.debit, l.credit
		FROM ledger_lines l
		JOIN ledger_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY l.entry_id, l.line_id;`

	lineRows, err := r.Pool.Query(ctx, lineQuery, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var row ledgerLineRow
		if err := lineRows.Scan(&row.LineID, &row.EntryID, &row.AccountNumber, &row.Label, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		if i, ok := index[row.EntryID]; ok {
			entries[i].Lines = append(entries[i].Lines, row.toDomain())
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}

	return entries, nil
}
