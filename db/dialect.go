package db

import "strconv"

// Dialect captures the syntax differences between the supported query languages.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
	CQL
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	case CQL:
		return "cql"
	}
	return "unknown"
}

// Placeholder returns the positional marker for the n-th bound value, starting at 1.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SupportsOffset reports whether LIMIT ... OFFSET ... is understood.
func (d Dialect) SupportsOffset() bool {
	return d != CQL
}
