package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stayhub/wallet-service/internal/application/errs"
)

// mapError translates driver-level failures into the application error
// taxonomy. Serialization and connection-class failures are marked
// transient so callers may retry the whole logical operation.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", errs.ErrDataConflict, pgErr.ConstraintName)
		case pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected,
			pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code):
			return fmt.Errorf("%w: %s", errs.ErrTransientStore, pgErr.Code)
		}
	}

	return err
}
