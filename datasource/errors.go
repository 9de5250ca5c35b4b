package datasource

import (
	"errors"
	"fmt"
)

// ErrFiltersNotSupported is returned by backends that cannot apply filters
// when at least one active filter is given.
var ErrFiltersNotSupported = errors.New("filters are not supported by this data source")

// ConfigurationError means the data source is missing its template, builder or session.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{fmt.Sprintf(format, args...)}
}

// OutOfRangeError means the requested page does not exist.
type OutOfRangeError struct {
	PageIndex int
	PageCount int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range [0, %d]", e.PageIndex, e.PageCount)
}

// IsNotFound reports that the error should surface as a missing resource.
func (e *OutOfRangeError) IsNotFound() bool {
	return true
}

func NewOutOfRangeError(pageIndex, pageCount int) error {
	return &OutOfRangeError{PageIndex: pageIndex, PageCount: pageCount}
}

type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in requested columns", e.Column)
}

func NewColumnNotFoundError(column string) error {
	return &ColumnNotFoundError{Column: column}
}
