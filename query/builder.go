// Package query provides a structured SELECT builder with named parameters.
//
// A Builder held by a long-lived owner is treated as a recipe: callers take a
// Snapshot, mutate the snapshot for one request and discard it. The recipe
// itself is never modified after it has been shared.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/datastax/table-data-apis/types"
)

type JoinKind string

const (
	InnerJoin JoinKind = "JOIN"
	LeftJoin  JoinKind = "LEFT JOIN"
)

type fromClause struct {
	table string
	alias string
}

type joinClause struct {
	kind      JoinKind
	table     string
	alias     string
	condition string
}

type orderClause struct {
	field     string
	direction types.Direction
}

type Builder struct {
	selects     []string
	from        []fromClause
	joins       []joinClause
	where       string
	orderBy     []orderClause
	params      map[string]interface{}
	firstResult int
	maxResults  int
}

func New() *Builder {
	return &Builder{params: make(map[string]interface{})}
}

// Snapshot returns an independent copy. Mutating the copy never affects b.
func (b *Builder) Snapshot() *Builder {
	c := &Builder{
		selects:     append([]string(nil), b.selects...),
		from:        append([]fromClause(nil), b.from...),
		joins:       append([]joinClause(nil), b.joins...),
		where:       b.where,
		orderBy:     append([]orderClause(nil), b.orderBy...),
		params:      make(map[string]interface{}, len(b.params)),
		firstResult: b.firstResult,
		maxResults:  b.maxResults,
	}
	for k, v := range b.params {
		c.params[k] = v
	}
	return c
}

// Select replaces the select list.
func (b *Builder) Select(exprs ...string) *Builder {
	b.selects = append([]string(nil), exprs...)
	return b
}

func (b *Builder) AddSelect(exprs ...string) *Builder {
	b.selects = append(b.selects, exprs...)
	return b
}

// From adds a root table. The alias becomes a root alias.
func (b *Builder) From(table, alias string) *Builder {
	b.from = append(b.from, fromClause{table: table, alias: alias})
	return b
}

func (b *Builder) Join(kind JoinKind, table, alias, condition string) *Builder {
	b.joins = append(b.joins, joinClause{kind: kind, table: table, alias: alias, condition: condition})
	return b
}

// Where replaces any existing condition.
func (b *Builder) Where(expr string) *Builder {
	b.where = expr
	return b
}

func (b *Builder) AndWhere(expr string) *Builder {
	return b.combine("AND", expr)
}

func (b *Builder) OrWhere(expr string) *Builder {
	return b.combine("OR", expr)
}

func (b *Builder) combine(op, expr string) *Builder {
	if b.where == "" {
		b.where = expr
		return b
	}
	b.where = fmt.Sprintf("(%s) %s (%s)", b.where, op, expr)
	return b
}

// HasWhere reports whether a condition is already present.
func (b *Builder) HasWhere() bool {
	return strings.TrimSpace(b.where) != ""
}

// OrderBy replaces the ordering.
func (b *Builder) OrderBy(field string, direction types.Direction) *Builder {
	b.orderBy = []orderClause{{field: field, direction: direction}}
	return b
}

func (b *Builder) AddOrderBy(field string, direction types.Direction) *Builder {
	b.orderBy = append(b.orderBy, orderClause{field: field, direction: direction})
	return b
}

func (b *Builder) SetParameter(name string, value interface{}) *Builder {
	if b.params == nil {
		b.params = make(map[string]interface{})
	}
	b.params[name] = value
	return b
}

func (b *Builder) Parameter(name string) (interface{}, bool) {
	v, ok := b.params[name]
	return v, ok
}

// ParameterNames returns the bound parameter names in lexical order.
func (b *Builder) ParameterNames() []string {
	names := make([]string, 0, len(b.params))
	for name := range b.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Builder) SetFirstResult(n int) *Builder {
	b.firstResult = n
	return b
}

func (b *Builder) FirstResult() int {
	return b.firstResult
}

// SetMaxResults limits the number of rows, 0 means unlimited.
func (b *Builder) SetMaxResults(n int) *Builder {
	b.maxResults = n
	return b
}

func (b *Builder) MaxResults() int {
	return b.maxResults
}

func (b *Builder) RootAliases() []string {
	aliases := make([]string, 0, len(b.from))
	for _, f := range b.from {
		if f.alias != "" {
			aliases = append(aliases, f.alias)
		}
	}
	return aliases
}

// DQL renders the query with named parameters and without the result window.
func (b *Builder) DQL() string {
	var sb strings.Builder
	b.writeBody(&sb)
	return sb.String()
}

func (b *Builder) String() string {
	return b.DQL()
}

func (b *Builder) writeBody(sb *strings.Builder) {
	sb.WriteString("SELECT ")
	switch {
	case len(b.selects) > 0:
		sb.WriteString(strings.Join(b.selects, ", "))
	case len(b.RootAliases()) > 0:
		sb.WriteString(strings.Join(qualifyAll(b.RootAliases()), ", "))
	default:
		sb.WriteString("*")
	}

	for i, f := range b.from {
		if i == 0 {
			sb.WriteString(" FROM ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(f.table)
		if f.alias != "" {
			sb.WriteString(" ")
			sb.WriteString(f.alias)
		}
	}

	for _, j := range b.joins {
		fmt.Fprintf(sb, " %s %s %s ON %s", j.kind, j.table, j.alias, j.condition)
	}

	if b.HasWhere() {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.where)
	}

	for i, o := range b.orderBy {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.field)
		sb.WriteString(" ")
		sb.WriteString(string(o.direction))
	}
}

func qualifyAll(aliases []string) []string {
	out := make([]string, len(aliases))
	for i, a := range aliases {
		out[i] = a + ".*"
	}
	return out
}
