package query

import (
	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

// Paginator is a lazily executed page of a query. Nothing is fetched until Rows
// or Count is called, and every call fetches again.
type Paginator struct {
	query *Builder
	db    *db.Db
}

// NewPaginator takes ownership of query, which must already carry its result window.
func NewPaginator(query *Builder, dbClient *db.Db) *Paginator {
	return &Paginator{query: query, db: dbClient}
}

// Rows fetches the rows of the page.
func (p *Paginator) Rows() ([]types.Row, error) {
	return p.query.Result(p.db)
}

// Count returns the number of rows matching the query across all pages.
func (p *Paginator) Count() (int, error) {
	return p.query.CountSnapshot().SingleScalarResult(p.db)
}

// FirstResult is the offset of the page.
func (p *Paginator) FirstResult() int {
	return p.query.FirstResult()
}

// MaxResults is the size of the page.
func (p *Paginator) MaxResults() int {
	return p.query.MaxResults()
}
