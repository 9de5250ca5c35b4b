package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/table-data-apis/types"
)

const sampleConfig = `
database:
  driver: sqlite
  dsn: "file::memory:?cache=shared"
defaultPageSize: 25
tables:
  - name: items
    backend: statement
    template:
      body: "SELECT {fields} FROM items i"
      fields: "i.*"
    columns:
      - name: id
        alias: i
      - name: title
        alias: i
      - name: created_at
        alias: i
    filters:
      - name: title
        operator: contains
        columns: [title]
    pageSize: 10
  - name: open_items
    backend: composed
    builder:
      table: items
      alias: e
      where: "e.status = 'open'"
    columns:
      - name: title
        alias: e
    filters:
      - name: q
        operator: NOT_CONTAINS
        columns: [title]
        connective: or
    operations: [Filter, Paginate]
  - name: tasks
    backend: document
    document:
      store: documents
      collection: tasks
      criteria:
        status: open
`

func loadSample(t *testing.T, content string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(content)))
	return Load(v)
}

func TestLoad(t *testing.T) {
	cfg, err := loadSample(t, sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, DriverSqlite, cfg.Database.Driver)
	require.Len(t, cfg.Tables, 3)

	items, ok := cfg.Table("items")
	require.True(t, ok)
	assert.Equal(t, BackendStatement, items.Backend)
	assert.Equal(t, "SELECT {fields} FROM items i", items.Template.Body)
	assert.Equal(t, 10, cfg.EffectivePageSize(items))
	assert.Equal(t, []types.Column{{Name: "id", Alias: "i"}, {Name: "title", Alias: "i"}, {Name: "created_at", Alias: "i"}},
		items.ToColumns())

	filters, err := items.ToFilters()
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, types.OpContains, filters[0].Operator)
	assert.False(t, filters[0].Active)
	assert.Equal(t, []types.Column{{Name: "title", Alias: "i"}}, filters[0].Columns)

	open, ok := cfg.Table("open_items")
	require.True(t, ok)
	assert.Equal(t, 25, cfg.EffectivePageSize(open))
	assert.Equal(t, "e.status = 'open'", open.Builder.Where)
	filters, err = open.ToFilters()
	require.NoError(t, err)
	assert.Equal(t, types.OpNotContains, filters[0].Operator)
	assert.Equal(t, types.Or, filters[0].Connective)
	ops, err := Ops(open.Operations...)
	require.NoError(t, err)
	assert.False(t, ops.IsSupported(Sort))

	tasks, ok := cfg.Table("tasks")
	require.True(t, ok)
	assert.Equal(t, "tasks", tasks.Document.Collection)
	assert.Equal(t, "open", tasks.Document.Criteria["status"])

	_, ok = cfg.Table("missing")
	assert.False(t, ok)
}

func TestLoadInvalid(t *testing.T) {
	items := []struct {
		name    string
		content string
	}{
		{"unknown driver", `
database:
  driver: mysql
  dsn: x
`},
		{"missing dsn", `
database:
  driver: sqlite
`},
		{"cassandra without hosts", `
database:
  driver: cassandra
`},
		{"unknown backend", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: graph
`},
		{"statement without template", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: statement
`},
		{"unknown operator", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: composed
    builder: {table: a, alias: a}
    columns: [{name: b}]
    filters: [{name: b, operator: between, columns: [b]}]
`},
		{"unknown filter column", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: composed
    builder: {table: a, alias: a}
    filters: [{name: b, operator: eq, columns: [b]}]
`},
		{"duplicate filter", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: composed
    builder: {table: a, alias: a}
    columns: [{name: b}, {name: c}]
    filters: [{name: q, operator: eq, columns: [b]}, {name: q, operator: contains, columns: [c]}]
`},
		{"duplicate table", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: composed
    builder: {table: a, alias: a}
  - name: a
    backend: composed
    builder: {table: a, alias: a}
`},
		{"invalid operation", `
database:
  driver: sqlite
  dsn: x
tables:
  - name: a
    backend: composed
    builder: {table: a, alias: a}
    operations: [Delete]
`},
	}

	for _, item := range items {
		_, err := loadSample(t, item.content)
		assert.Error(t, err, item.name)
	}
}

func TestEffectivePageSizeDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultPageSize, cfg.EffectivePageSize(TableConfig{}))
}

func TestToFiltersRejectsDuplicateNames(t *testing.T) {
	table := TableConfig{
		Name:    "a",
		Columns: []ColumnConfig{{Name: "b"}, {Name: "c"}},
		Filters: []FilterConfig{
			{Name: "q", Operator: "eq", Columns: []string{"b"}},
			{Name: "q", Operator: "contains", Columns: []string{"c"}},
		},
	}
	_, err := table.ToFilters()
	require.Error(t, err)
	assert.Equal(t, "filter 'q' is defined more than once", err.Error())
}
