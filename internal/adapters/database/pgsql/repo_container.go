package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories behind their port
// interfaces.
func NewRepositoryProvider(pool *pgxpool.Pool) repositories.RepositoryProvider {
	return repositories.RepositoryProvider{
		LedgerRepo:      NewPgxLedgerRepository(pool),
		DeclarationRepo: NewPgxDeclarationRepository(pool),
	}
}
