// Package document holds document-store queries: a collection, equality
// criteria, sort fields and a skip/limit window.
package document

import (
	"sort"

	"github.com/datastax/table-data-apis/types"
)

type SortField struct {
	Field     string
	Direction types.Direction
}

// FindSpec is what a Store receives to execute a query.
type FindSpec struct {
	Collection string
	Criteria   map[string]interface{}
	Sort       []SortField
	Skip       int
	Limit      int
}

// CriteriaFields returns the criteria keys in lexical order.
func (s FindSpec) CriteriaFields() []string {
	fields := make([]string, 0, len(s.Criteria))
	for field := range s.Criteria {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Store executes document queries.
type Store interface {
	Find(spec FindSpec) ([]types.Row, error)
	// Count returns the number of documents matching the collection and criteria,
	// ignoring sort, skip and limit.
	Count(spec FindSpec) (int, error)
}

// Query is a document query. Owners sharing a Query take a Snapshot before changing it.
type Query struct {
	collection string
	criteria   map[string]interface{}
	sort       []SortField
	skip       int
	limit      int
}

func NewQuery(collection string) *Query {
	return &Query{
		collection: collection,
		criteria:   make(map[string]interface{}),
	}
}

func (q *Query) Collection() string {
	return q.collection
}

// Where adds an equality criterion on a field.
func (q *Query) Where(field string, value interface{}) *Query {
	q.criteria[field] = value
	return q
}

// Sort appends a sort field.
func (q *Query) Sort(field string, direction types.Direction) *Query {
	q.sort = append(q.sort, SortField{Field: field, Direction: direction})
	return q
}

func (q *Query) Skip(n int) *Query {
	q.skip = n
	return q
}

// Limit caps the number of documents, 0 means no limit.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) SortFields() []SortField {
	return append([]SortField(nil), q.sort...)
}

func (q *Query) Snapshot() *Query {
	c := &Query{
		collection: q.collection,
		criteria:   make(map[string]interface{}, len(q.criteria)),
		sort:       append([]SortField(nil), q.sort...),
		skip:       q.skip,
		limit:      q.limit,
	}
	for k, v := range q.criteria {
		c.criteria[k] = v
	}
	return c
}

func (q *Query) Spec() FindSpec {
	s := q.Snapshot()
	return FindSpec{
		Collection: s.collection,
		Criteria:   s.criteria,
		Sort:       s.sort,
		Skip:       s.skip,
		Limit:      s.limit,
	}
}

// Execute returns a cursor over the query. Documents are fetched when the cursor is read.
func (q *Query) Execute(store Store) *Cursor {
	return &Cursor{store: store, spec: q.Spec()}
}
