package endpoint

import (
	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/types"
)

// Table is a data source exposed by the endpoint, along with the columns and filters requests can use
type Table struct {
	Name       string
	Source     datasource.DataSource
	Columns    []types.Column
	Filters    []types.Filter
	PageSize   int
	Operations config.Operations
}

func (t *Table) findColumn(name string) (types.Column, bool) {
	return types.FindColumn(t.Columns, name)
}
