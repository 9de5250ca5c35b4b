// types package contains the public API types
// that are shared between the data sources and the REST endpoint
package types

import (
	"net/http"
	"strings"
)

// Row is a single result row keyed by column name.
type Row = map[string]interface{}

type Column struct {
	Name  string `json:"name" validate:"required"`
	Alias string `json:"alias"`
}

// Qualified returns the column name prefixed with its alias, if any.
func (c Column) Qualified() string {
	if c.Alias == "" {
		return c.Name
	}
	return c.Alias + "." + c.Name
}

// FindColumn returns the first column with the given name.
func FindColumn(columns []Column, name string) (Column, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

type Filter struct {
	Name       string     `json:"name" validate:"required"`
	Operator   Operator   `json:"operator" validate:"operator"`
	Columns    []Column   `json:"columns" validate:"required,min=1,dive"`
	Value      string     `json:"value"`
	Active     bool       `json:"active"`
	Connective Connective `json:"connective,omitempty" validate:"omitempty,oneof=AND OR"`
}

// Join returns the connective used between the fragments of a multi-column filter.
func (f Filter) Join() Connective {
	if f.Connective == Or {
		return Or
	}
	return And
}

// ActiveFilters returns the filters that take part in query construction, preserving order.
func ActiveFilters(filters []Filter) []Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f.Active {
			active = append(active, f)
		}
	}
	return active
}

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection accepts "asc"/"desc" in any case. An empty string means ascending.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Asc, true
	case "DESC":
		return Desc, true
	}
	return "", false
}

type Sort struct {
	Column    string    `json:"column" validate:"required"`
	Direction Direction `json:"direction" validate:"required,oneof=ASC DESC"`
}

type Pagination struct {
	PageIndex int `json:"pageIndex" validate:"gte=0"`
	PageSize  int `json:"pageSize" validate:"gt=0"`
}

// Offset is the number of rows skipped before the requested page.
func (p Pagination) Offset() int {
	return p.PageIndex * p.PageSize
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
