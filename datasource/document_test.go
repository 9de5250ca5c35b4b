package datasource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/table-data-apis/document"
	"github.com/datastax/table-data-apis/internal/testutil"
	"github.com/datastax/table-data-apis/types"
)

func taskStore(t *testing.T) *document.SQLiteStore {
	store, err := document.NewSQLiteStore(testutil.NewMemoryDb(), "documents")
	require.NoError(t, err)
	for i, createdAt := range []string{"2024-01-01", "2024-01-03", "2024-01-02", "2024-01-05", "2024-01-04"} {
		_, err := store.Insert("tasks", "", map[string]interface{}{"n": i, "createdAt": createdAt})
		require.NoError(t, err)
	}
	return store
}

func createdAt(t *testing.T, result Result) []string {
	rows, err := result.Rows()
	require.NoError(t, err)
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row["createdAt"].(string))
	}
	return values
}

func TestDocumentSortLeavesRecipeUnsorted(t *testing.T) {
	recipe := document.NewQuery("tasks")
	ds, err := NewDocumentDataSource(recipe, taskStore(t))
	require.NoError(t, err)

	result, err := ds.GetData(nil, nil, nil, &types.Sort{Column: "createdAt", Direction: types.Desc})
	require.NoError(t, err)

	cursor, ok := result.(*document.Cursor)
	require.True(t, ok)
	assert.Equal(t, []document.SortField{{Field: "createdAt", Direction: types.Desc}}, cursor.Spec().Sort)
	assert.Empty(t, ds.Query().SortFields())
	assert.Empty(t, recipe.SortFields())

	assert.Equal(t, []string{"2024-01-05", "2024-01-04", "2024-01-03", "2024-01-02", "2024-01-01"},
		createdAt(t, result))
}

func TestDocumentPagination(t *testing.T) {
	ds, err := NewDocumentDataSource(document.NewQuery("tasks"), taskStore(t))
	require.NoError(t, err)

	byDate := &types.Sort{Column: "createdAt", Direction: types.Asc}
	result, err := ds.GetData(nil, nil, &types.Pagination{PageIndex: 1, PageSize: 2}, byDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03", "2024-01-04"}, createdAt(t, result))

	countable, ok := result.(CountableResult)
	require.True(t, ok)
	count, err := countable.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	pages, err := ds.CountPages(nil, nil, types.Pagination{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	_, err = ds.GetData(nil, nil, &types.Pagination{PageIndex: 4, PageSize: 2}, byDate)
	var outOfRange *OutOfRangeError
	require.True(t, errors.As(err, &outOfRange))
	assert.Equal(t, 3, outOfRange.PageCount)
}

func TestDocumentRejectsActiveFilters(t *testing.T) {
	ds, err := NewDocumentDataSource(document.NewQuery("tasks"), taskStore(t))
	require.NoError(t, err)

	active := types.Filter{Name: "n", Operator: types.OpEq, Value: "1", Active: true,
		Columns: []types.Column{{Name: "n"}}}
	_, err = ds.GetData(nil, []types.Filter{active}, nil, nil)
	assert.Equal(t, ErrFiltersNotSupported, err)
	_, err = ds.CountItems(nil, []types.Filter{active})
	assert.Equal(t, ErrFiltersNotSupported, err)

	active.Active = false
	result, err := ds.GetData(nil, []types.Filter{active}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, createdAt(t, result), 5)
}

func TestDocumentConfigurationErrors(t *testing.T) {
	var configErr *ConfigurationError

	_, err := NewDocumentDataSource(nil, taskStore(t))
	assert.True(t, errors.As(err, &configErr))

	_, err = NewDocumentDataSource(document.NewQuery("tasks"), nil)
	assert.True(t, errors.As(err, &configErr))
}
