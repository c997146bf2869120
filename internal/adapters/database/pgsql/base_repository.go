package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool used by the concrete
// repositories in this package.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

func NewBaseRepository(pool *pgxpool.Pool) *BaseRepository {
	return &BaseRepository{Pool: pool}
}
