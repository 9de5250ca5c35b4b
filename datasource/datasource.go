// Package datasource builds and executes table queries against heterogeneous
// backends behind a single contract.
//
// Every backend keeps exactly one long-lived template, builder or query recipe.
// Calls never mutate it: builders are snapshotted per call and templates are
// only read, so a DataSource is safe for concurrent use without locks.
package datasource

import (
	"fmt"
	"regexp"

	"github.com/datastax/table-data-apis/types"
)

const (
	TypeStatement = "statement"
	TypeDocument  = "document"
	TypeComposed  = "composed"
)

type DataSource interface {
	// GetData returns at most pagination.PageSize rows when pagination is given,
	// ordered by sort when given. A nil pagination or sort disables it.
	GetData(columns []types.Column, filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (Result, error)

	// CountItems returns the number of rows matching the filters, ignoring pagination and sort.
	CountItems(columns []types.Column, filters []types.Filter) (int, error)

	// CountPages returns max(1, ceil(CountItems / pagination.PageSize)).
	CountPages(columns []types.Column, filters []types.Filter, pagination types.Pagination) (int, error)

	Type() string

	Capabilities() Capabilities
}

// Result is a sequence of rows, either materialized or fetched on demand.
type Result interface {
	Rows() ([]types.Row, error)
}

// CountableResult is a result that can also report the number of matching rows
// regardless of the page it holds.
type CountableResult interface {
	Result
	Count() (int, error)
}

// RowList is a materialized result.
type RowList []types.Row

func (l RowList) Rows() ([]types.Row, error) {
	return l, nil
}

// PageCount is ceil(items / pageSize), floored to 1.
func PageCount(items, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (items + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// CheckPage fails with an *OutOfRangeError unless the page index lies in [0, pageCount].
func CheckPage(pagination types.Pagination, pageCount int) error {
	if pagination.PageIndex < 0 || pagination.PageIndex > pageCount {
		return NewOutOfRangeError(pagination.PageIndex, pageCount)
	}
	return nil
}

func countPages(ds DataSource, columns []types.Column, filters []types.Filter, pagination types.Pagination) (int, error) {
	if err := types.ValidatePageSize(pagination.PageSize); err != nil {
		return 0, err
	}
	items, err := ds.CountItems(columns, filters)
	if err != nil {
		return 0, err
	}
	return PageCount(items, pagination.PageSize), nil
}

func validatePage(ds DataSource, columns []types.Column, filters []types.Filter, pagination types.Pagination) error {
	pageCount, err := ds.CountPages(columns, filters, pagination)
	if err != nil {
		return err
	}
	return CheckPage(pagination, pageCount)
}

var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func validateSort(sort types.Sort) error {
	if err := types.Validate(sort); err != nil {
		return err
	}
	if !identifierRe.MatchString(sort.Column) {
		return &types.ValidationError{Message: fmt.Sprintf("sort column '%s' is not a valid identifier", sort.Column)}
	}
	return nil
}
