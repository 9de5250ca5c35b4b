package document

import (
	"github.com/datastax/table-data-apis/types"
)

type Cursor struct {
	store Store
	spec  FindSpec
}

// Rows fetches the documents of the cursor.
func (c *Cursor) Rows() ([]types.Row, error) {
	return c.store.Find(c.spec)
}

// Count returns the number of documents matching the query, ignoring skip and limit.
func (c *Cursor) Count() (int, error) {
	return c.store.Count(c.spec)
}

func (c *Cursor) Spec() FindSpec {
	return c.spec
}
