package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErDupEntry is MySQL's duplicate-key error number.
const ErDupEntry = 1062

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DuplicateKey reports whether err is a uniqueness violation and, when it is,
// the field named by the diagnostic ("" when it cannot be recovered).
func DuplicateKey(err error) (string, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != ErDupEntry {
		return "", false
	}
	return DuplicateField(me.Message), true
}

// DuplicateField extracts the offending field from a duplicate-key diagnostic.
// It first looks for the text between the last "index: " and the last " dup",
// then for MySQL's "for key '<table>.<index>'" form.
func DuplicateField(diagnostic string) string {
	if start := strings.LastIndex(diagnostic, "index: "); start >= 0 {
		start += len("index: ")
		if end := strings.LastIndex(diagnostic, " dup"); end > start {
			return indexToField(diagnostic[start:end])
		}
	}

	const marker = "for key '"
	if start := strings.LastIndex(diagnostic, marker); start >= 0 {
		rest := diagnostic[start+len(marker):]
		if end := strings.Index(rest, "'"); end > 0 {
			key := rest[:end]
			if dot := strings.LastIndex(key, "."); dot >= 0 {
				key = key[dot+1:]
			}
			return indexToField(key)
		}
	}
	return ""
}

// indexToField maps index names like "email_1" or "uniq_email" to their column.
func indexToField(index string) string {
	index = strings.TrimSpace(index)
	index = strings.TrimPrefix(index, "uniq_")
	if i := strings.LastIndex(index, "_"); i > 0 && isDigits(index[i+1:]) {
		index = index[:i]
	}
	return index
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func HasTable(ctx context.Context, q QueryRower, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}
