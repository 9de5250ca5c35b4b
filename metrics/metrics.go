package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/types"
)

var (
	// OperationsTotal counts data source calls by table, operation and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "table_api_datasource_operations_total",
			Help: "Total number of data source operations",
		},
		[]string{"table", "datasource", "operation", "status"},
	)
	// OperationDuration is the latency of data source calls.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "table_api_datasource_operation_duration_seconds",
			Help:    "Data source operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "datasource", "operation"},
	)
)

const (
	OpGetData    = "get_data"
	OpCountItems = "count_items"
	OpCountPages = "count_pages"
)

// Instrument wraps a data source so every call is counted and timed under the table name.
func Instrument(ds datasource.DataSource, table string) datasource.DataSource {
	return &instrumented{inner: ds, table: table}
}

type instrumented struct {
	inner datasource.DataSource
	table string
}

func (i *instrumented) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	OperationsTotal.WithLabelValues(i.table, i.inner.Type(), operation, status).Inc()
	OperationDuration.WithLabelValues(i.table, i.inner.Type(), operation).Observe(time.Since(start).Seconds())
}

func (i *instrumented) GetData(
	columns []types.Column,
	filters []types.Filter,
	pagination *types.Pagination,
	sort *types.Sort,
) (result datasource.Result, err error) {
	defer func(start time.Time) { i.observe(OpGetData, start, err) }(time.Now())
	result, err = i.inner.GetData(columns, filters, pagination, sort)
	return result, err
}

func (i *instrumented) CountItems(columns []types.Column, filters []types.Filter) (count int, err error) {
	defer func(start time.Time) { i.observe(OpCountItems, start, err) }(time.Now())
	count, err = i.inner.CountItems(columns, filters)
	return count, err
}

func (i *instrumented) CountPages(columns []types.Column, filters []types.Filter, pagination types.Pagination) (count int, err error) {
	defer func(start time.Time) { i.observe(OpCountPages, start, err) }(time.Now())
	count, err = i.inner.CountPages(columns, filters, pagination)
	return count, err
}

func (i *instrumented) Type() string {
	return i.inner.Type()
}

func (i *instrumented) Capabilities() datasource.Capabilities {
	return i.inner.Capabilities()
}
