package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthloan/prequal/internal/domain/port"
	pkgpostgres "github.com/hearthloan/prequal/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pkgpostgres.Querier
	pkgpostgres.TxBeginner
}

type scannable interface {
	Scan(dest ...any) error
}

// notFound maps pgx.ErrNoRows to port.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, port.ErrNotFound)
	}
	return fmt.Errorf("scan %s: %w", what, err)
}
