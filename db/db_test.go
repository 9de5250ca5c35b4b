package db

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDialectPlaceholder(t *testing.T) {
	assert.Equal(t, "?", SQLite.Placeholder(1))
	assert.Equal(t, "?", CQL.Placeholder(3))
	assert.Equal(t, "$1", Postgres.Placeholder(1))
	assert.Equal(t, "$12", Postgres.Placeholder(12))
	assert.True(t, SQLite.SupportsOffset())
	assert.False(t, CQL.SupportsOffset())
}

func TestDbExecuteUsesOptions(t *testing.T) {
	dbClient, session := NewDbMock(CQL)
	options := NewQueryOptions().WithUserOrRole("reader").WithConsistency(gocql.Quorum)
	resultMock := &ResultMock{}
	resultMock.On("Values").Return([]map[string]interface{}{{"total": int64(3)}})

	session.
		On("ExecuteIter", "SELECT COUNT(*) AS total FROM t", options, []interface{}{1}).
		Return(resultMock, nil)

	rs, err := dbClient.WithOptions(options).Execute("SELECT COUNT(*) AS total FROM t", 1)
	require.NoError(t, err)
	row, err := FetchOne(rs)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row["total"])
	session.AssertExpectations(t)
}

func TestDbWithOptionsDoesNotModifyOriginal(t *testing.T) {
	dbClient, session := NewDbMock(SQLite)
	session.On("ExecuteIter", mock.Anything, mock.Anything, mock.Anything).Return(NewResultSet(nil), nil)

	_ = dbClient.WithOptions(NewQueryOptions().WithUserOrRole("other"))
	_, err := dbClient.Execute("SELECT 1")
	require.NoError(t, err)

	options := session.Calls[0].Arguments.Get(1).(*QueryOptions)
	assert.Equal(t, "", options.UserOrRole)
}

func TestFetchOneEmpty(t *testing.T) {
	_, err := FetchOne(NewResultSet(nil))
	assert.Equal(t, ErrNoRows, err)

	_, err = FetchOne(nil)
	assert.Equal(t, ErrNoRows, err)
}

func TestSqliteSessionRoundTrip(t *testing.T) {
	dbClient, err := NewSqliteDb("file:db_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer dbClient.Close()

	require.NoError(t, dbClient.ExecuteNoResult("CREATE TABLE books (title TEXT, pages INTEGER)"))
	require.NoError(t, dbClient.ExecuteNoResult("INSERT INTO books (title, pages) VALUES (?, ?), (?, ?)",
		"Dune", 412, "Emma", 474))

	rs, err := dbClient.Execute("SELECT title, pages FROM books WHERE pages > ? ORDER BY title", 400)
	require.NoError(t, err)
	values := rs.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "Dune", values[0]["title"])
	assert.Equal(t, int64(474), values[1]["pages"])
}
