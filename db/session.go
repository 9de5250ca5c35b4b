package db

import (
	"errors"

	"github.com/gocql/gocql"
)

type QueryOptions struct {
	UserOrRole        string
	Consistency       gocql.Consistency
	SerialConsistency gocql.SerialConsistency
}

func NewQueryOptions() *QueryOptions {
	return &QueryOptions{
		// Only the CQL session reads consistency levels, SQL sessions ignore them
		Consistency:       gocql.LocalOne,
		SerialConsistency: gocql.LocalSerial,
	}
}

func (q *QueryOptions) WithUserOrRole(userOrRole string) *QueryOptions {
	q.UserOrRole = userOrRole
	return q
}

func (q *QueryOptions) WithConsistency(consistency gocql.Consistency) *QueryOptions {
	q.Consistency = consistency
	return q
}

func (q *QueryOptions) WithSerialConsistency(serialConsistency gocql.SerialConsistency) *QueryOptions {
	q.SerialConsistency = serialConsistency
	return q
}

// Session is the statement-execution capability. Statements are either fully
// interpolated text or text with positional placeholders and bound values.
type Session interface {
	// Execute executes a statement without returning row results
	Execute(query string, options *QueryOptions, values ...interface{}) error

	// ExecuteIter executes a statement and returns the fetched result set
	ExecuteIter(query string, options *QueryOptions, values ...interface{}) (ResultSet, error)

	Close() error
}

type ResultSet interface {
	Values() []map[string]interface{}
}

type rowsResult struct {
	values []map[string]interface{}
}

func (r *rowsResult) Values() []map[string]interface{} {
	return r.values
}

// NewResultSet wraps already fetched rows.
func NewResultSet(values []map[string]interface{}) ResultSet {
	if values == nil {
		values = make([]map[string]interface{}, 0)
	}
	return &rowsResult{values: values}
}

var ErrNoRows = errors.New("statement returned no rows")

// FetchOne returns the first row of the result set.
func FetchOne(rs ResultSet) (map[string]interface{}, error) {
	if rs == nil {
		return nil, ErrNoRows
	}
	values := rs.Values()
	if len(values) == 0 {
		return nil, ErrNoRows
	}
	return values[0], nil
}
