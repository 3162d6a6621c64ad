package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite "modernc.org/sqlite"
)

// Коды нарушения уникальности у обоих поддерживаемых драйверов.
const (
	pgUniqueViolation          = "23505"
	sqliteConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE
	sqliteConstraintPrimaryKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
)

// IsUniqueViolation распознаёт нарушение уникального индекса. Гонка двух
// одинаковых INSERT разрешается именно здесь: проигравший получает ошибку
// драйвера, которую вызывающий слой переводит в доменный конфликт.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqliteConstraintUnique || sqErr.Code() == sqliteConstraintPrimaryKey
	}
	return false
}
