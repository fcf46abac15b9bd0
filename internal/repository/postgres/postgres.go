package postgres

import (
	"database/sql"
	"errors"
	"strings"
)

// Package postgres implements the repository interfaces over database/sql
// with parameterized queries. No business logic here.

// IsNoRowsError reports whether err is the driver's no-rows sentinel.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// textArrayLiteral renders ss as a PostgreSQL text[] literal so it can be
// bound as a single parameter and cast with ::text[].
func textArrayLiteral(ss []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range ss {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
