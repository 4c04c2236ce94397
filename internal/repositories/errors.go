// internal/repositories/errors.go
// Classifies raw database/sql and driver errors into the apperrors
// taxonomy so callers above this layer never inspect driver internals.

package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"

	"padeltour/internal/apperrors"
)

// classifyDBError maps a raw database error into apperrors.Error. nil
// passes through unchanged. Connection-refused/lock-wait/deadlock style
// failures are TransientStore so repositories.WithRetry can retry them;
// duplicate-key violations are Conflict; anything else (other constraint
// violations, syntax, unknown) is FatalStore.
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.DeadlineExceeded, "database operation timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.Cancelled, "database operation cancelled", err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return apperrors.Wrap(apperrors.TransientStore, "connection lost, retry", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.Wrap(apperrors.TransientStore, "connection failure, retry", err)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1213, 1205: // ER_LOCK_DEADLOCK, ER_LOCK_WAIT_TIMEOUT
			return apperrors.Wrap(apperrors.TransientStore, "lock contention, retry", err)
		case 1062: // ER_DUP_ENTRY
			return apperrors.Wrap(apperrors.Conflict, "duplicate entry", err)
		}
	}

	return apperrors.Wrap(apperrors.FatalStore, "database operation failed", err)
}
