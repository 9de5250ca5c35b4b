package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

func TestInstrumentCountsCalls(t *testing.T) {
	dbClient, session := db.NewDbMock(db.SQLite)
	session.On("ExecuteIter", "SELECT i.* FROM items i", mock.Anything, mock.Anything).
		Return(db.NewResultSet([]map[string]interface{}{{"id": 1}}), nil)

	ds, err := datasource.NewStatementDataSource(
		datasource.StatementTemplate{Body: "SELECT {fields} FROM items i", Fields: "i.*"}, dbClient)
	require.NoError(t, err)

	instrumented := Instrument(ds, "metrics_items")
	assert.Equal(t, datasource.TypeStatement, instrumented.Type())
	assert.Equal(t, ds.Capabilities(), instrumented.Capabilities())

	_, err = instrumented.GetData(nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = instrumented.GetData(nil, nil, nil, &types.Sort{Column: "missing", Direction: types.Asc})
	require.Error(t, err)

	ok := OperationsTotal.WithLabelValues("metrics_items", datasource.TypeStatement, OpGetData, "ok")
	failed := OperationsTotal.WithLabelValues("metrics_items", datasource.TypeStatement, OpGetData, "error")
	assert.Equal(t, float64(1), testutil.ToFloat64(ok))
	assert.Equal(t, float64(1), testutil.ToFloat64(failed))
}
