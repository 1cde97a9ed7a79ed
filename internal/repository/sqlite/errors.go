package sqlite

import (
	"errors"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/game-store/internal/apperror"
)

// translateError maps SQLite constraint failures to apperror kinds so the
// HTTP layer can tell a bad reference (409) from a broken database (500).
// Errors that are not constraint failures are returned unchanged.
//
// conflictMsg is the message used for foreign key and uniqueness failures;
// it should describe the violated relationship in domain terms.
func translateError(err error, conflictMsg string) error {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return apperror.ValidationFailed("", "a required field is missing")
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return apperror.Conflict(conflictMsg)
	}

	// Without extended result codes only the primary code is set.
	if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return apperror.Conflict(conflictMsg)
	}
	return err
}
