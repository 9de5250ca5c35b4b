package query

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

func TestCompileGolden(t *testing.T) {
	items := []struct {
		name    string
		dialect db.Dialect
		builder *Builder
	}{
		{"sqlite_filtered_page", db.SQLite, issues().
			Where("e.status = :status and e.title like :title").
			SetParameter("status", "open").
			SetParameter("title", "%foo%").
			OrderBy("e.title", types.Asc).
			SetFirstResult(20).
			SetMaxResults(10)},
		{"postgres_filtered_page", db.Postgres, issues().
			Where("e.status = :status and e.title like :title").
			SetParameter("status", "open").
			SetParameter("title", "%foo%").
			OrderBy("e.title", types.Asc).
			SetFirstResult(20).
			SetMaxResults(10)},
		{"sqlite_offset_only", db.SQLite, issues().SetFirstResult(5)},
		{"postgres_cast_and_literal", db.Postgres, issues().
			Where("e.created::date = :day and e.note != ':skipped'").
			SetParameter("day", "2020-01-01")},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, item := range items {
		text, values, err := item.builder.Compile(item.dialect)
		require.NoError(t, err)
		g.Assert(t, item.name, []byte(fmt.Sprintf("%s\n%v\n", text, values)))
	}
}

func TestCompileRepeatedParameter(t *testing.T) {
	text, values, err := issues().
		Where("e.a = :v or e.b = :v").
		SetParameter("v", 7).
		Compile(db.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id, e.title FROM issues e WHERE e.a = $1 or e.b = $2", text)
	assert.Equal(t, []interface{}{7, 7}, values)
}

func TestCompileUnboundParameter(t *testing.T) {
	_, _, err := issues().Where("e.status = :status").Compile(db.SQLite)
	assert.ErrorIs(t, err, ErrUnboundParameter)
}

func TestCompileOffsetNotSupported(t *testing.T) {
	_, _, err := issues().SetFirstResult(10).SetMaxResults(10).Compile(db.CQL)
	assert.Equal(t, ErrOffsetNotSupported, err)

	text, _, err := issues().SetMaxResults(10).Compile(db.CQL)
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id, e.title FROM issues e LIMIT 10", text)
}
