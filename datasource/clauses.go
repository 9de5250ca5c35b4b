package datasource

import (
	"fmt"
	"strings"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

// namedClause is a parameterized condition for the composed backend.
type namedClause struct {
	format  string
	pattern bool
}

func (c namedClause) render(column, parameter string) string {
	return fmt.Sprintf(c.format, column, parameter)
}

func (c namedClause) bind(value string) interface{} {
	if c.pattern {
		return "%" + value + "%"
	}
	return value
}

var namedClauses = map[types.Operator]namedClause{
	types.OpEq:          {format: "%s = :%s"},
	types.OpNotEq:       {format: "%s != :%s"},
	types.OpGt:          {format: "%s > :%s"},
	types.OpGte:         {format: "%s >= :%s"},
	types.OpLt:          {format: "%s < :%s"},
	types.OpLte:         {format: "%s <= :%s"},
	types.OpNotContains: {format: "%s not like :%s", pattern: true},
	types.OpContains:    {format: "%s like :%s", pattern: true},
}

// Postgres LIKE is case sensitive.
var postgresClauses = map[types.Operator]namedClause{
	types.OpNotContains: {format: "%s not ilike :%s", pattern: true},
	types.OpContains:    {format: "%s ilike :%s", pattern: true},
}

// lookupNamedClause falls back to the contains clause for operators outside the closed set.
func lookupNamedClause(op types.Operator, dialect db.Dialect) (namedClause, bool) {
	_, known := namedClauses[op]
	if !known {
		op = types.OpContains
	}
	if dialect == db.Postgres {
		if clause, ok := postgresClauses[op]; ok {
			return clause, known
		}
	}
	return namedClauses[op], known
}

// literalClause is a condition with the value inlined, used by the statement backend.
// Only substring matches are supported there.
type literalClause struct {
	keyword   string
	supported bool
}

var literalClauses = map[types.Operator]literalClause{
	types.OpContains:    {keyword: "LIKE", supported: true},
	types.OpNotContains: {keyword: "NOT LIKE", supported: true},
	types.OpEq:          {},
	types.OpNotEq:       {},
	types.OpGt:          {},
	types.OpGte:         {},
	types.OpLt:          {},
	types.OpLte:         {},
}

func (c literalClause) render(column types.Column, value string) string {
	return fmt.Sprintf("LOWER(%s) %s '%%%s%%'", column.Qualified(), c.keyword, quoteLiteral(strings.ToLower(value)))
}

func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func joinFragments(fragments []string, connective types.Connective) string {
	if connective == types.Or && len(fragments) > 1 {
		return "(" + strings.Join(fragments, " or ") + ")"
	}
	return strings.Join(fragments, " and ")
}
