package repositories

import (
	"errors"

	"github.com/duwuzhou/article-cms/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error classes the caller can meaningfully act on.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeForeignKeyViolation  = "23503"
)

// classify translates driver errors into the models taxonomy after the
// surrounding unit of work has rolled back. Deadlocks and serialization
// failures are worth a caller-side retry; anything else unexpected surfaces
// as an internal error.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return models.ErrorTransient{Message: pgErr.Message}
		case codeForeignKeyViolation:
			return models.ErrorIntegrity{Message: pgErr.Message}
		}
	}

	return models.ErrorInternalServer{Message: err.Error()}
}
