package query

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

var (
	ErrNoResult        = errors.New("query returned no result")
	ErrNonUniqueResult = errors.New("query returned more than one scalar")
)

// Result compiles and executes the query, returning every row.
func (b *Builder) Result(dbClient *db.Db) ([]types.Row, error) {
	text, values, err := b.Compile(dbClient.Dialect())
	if err != nil {
		return nil, err
	}

	rs, err := dbClient.Execute(text, values...)
	if err != nil {
		return nil, err
	}
	return rs.Values(), nil
}

// SingleScalarResult executes the query and returns its single column of its single row as an int.
func (b *Builder) SingleScalarResult(dbClient *db.Db) (int, error) {
	rows, err := b.Result(dbClient)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, ErrNoResult
	}
	if len(rows) > 1 || len(rows[0]) != 1 {
		return 0, ErrNonUniqueResult
	}

	for _, value := range rows[0] {
		count, err := cast.ToIntE(value)
		if err != nil {
			return 0, fmt.Errorf("scalar result is not a number: %w", err)
		}
		return count, nil
	}
	return 0, ErrNoResult
}

// CountSnapshot returns a copy selecting COUNT(*) with the same conditions and
// parameters, without ordering or result window.
func (b *Builder) CountSnapshot() *Builder {
	c := b.Snapshot()
	c.Select("COUNT(*)")
	c.orderBy = nil
	c.firstResult = 0
	c.maxResults = 0
	return c
}
