package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Open connects to the store named by databaseURL. Two schemes are
// supported: sqlite:// (default deployment, single file) and
// postgres:// / postgresql://. Returns the handle and the driver name for
// dialect-sensitive statements.
func Open(databaseURL string) (*sqlx.DB, string, error) {
	driver, dsn, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}
	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// Single writer; avoids SQLITE_BUSY under concurrent batches.
		conn.SetMaxOpenConns(1)
	}
	return conn, driver, nil
}

// ParseDatabaseURL maps a DATABASE_URL to (driver, dsn).
//
//	sqlite:///./soc.db      -> sqlite3, file:./soc.db?...
//	sqlite:////var/soc.db   -> sqlite3, file:/var/soc.db?...
//	sqlite://:memory:       -> sqlite3, in-memory
//	postgres://u:p@h/db     -> pgx, unchanged
func ParseDatabaseURL(databaseURL string) (driver, dsn string, err error) {
	u := strings.TrimSpace(databaseURL)
	switch {
	case strings.HasPrefix(u, "sqlite://"):
		path := strings.TrimPrefix(u, "sqlite://")
		path = strings.TrimPrefix(path, "/") // sqlite:///relative/path
		if path == "" || path == ":memory:" {
			return "sqlite3", "file::memory:?cache=shared&_foreign_keys=ON", nil
		}
		return "sqlite3", "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=ON", nil
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return "pgx", u, nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", databaseURL)
	}
}

// IsUniqueViolation reports whether err is a unique-constraint failure on
// either backend. The aggregator's get-or-create retries once on this.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
