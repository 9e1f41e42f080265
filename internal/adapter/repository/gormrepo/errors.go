package gormrepo

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"
)

// isUniqueViolation recognises a unique-index rejection from any of the
// supported dialects, whether or not gorm's TranslateError is enabled.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var my *mysqldrv.MySQLError
	if errors.As(err, &my) && my.Number == mysqlDuplicateEntry {
		return true
	}
	var pg *pgconn.PgError
	if errors.As(err, &pg) && pg.Code == pgUniqueViolation {
		return true
	}
	// sqlite3 reports "UNIQUE constraint failed: loans.active_book_id"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
