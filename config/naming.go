package config

import "github.com/iancoleman/strcase"

// NamingConvention maps filter and column names to request parameter names and back.
type NamingConvention interface {
	// ToQueryParam returns the request parameter name of a filter or column.
	ToQueryParam(name string) string

	// ToFilterName returns the filter name a request parameter refers to.
	ToFilterName(param string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToQueryParam(name string) string {
	return strcase.ToLowerCamel(name)
}

func (n *defaultNaming) ToFilterName(param string) string {
	// TODO: Fix numbers: "title2" --> "title_2"
	return strcase.ToSnake(param)
}
