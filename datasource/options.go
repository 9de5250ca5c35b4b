package datasource

import (
	"strings"

	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/types"
)

// ValueProvider supplies the bound value of a filter. A false result, or a blank
// value, leaves the filter out of the query.
type ValueProvider interface {
	FilterValue(filter types.Filter) (string, bool)
}

type ValueProviderFunc func(filter types.Filter) (string, bool)

func (f ValueProviderFunc) FilterValue(filter types.Filter) (string, bool) {
	return f(filter)
}

// FilterValues reads the value carried by the filter itself.
var FilterValues ValueProvider = ValueProviderFunc(func(filter types.Filter) (string, bool) {
	return filter.Value, true
})

// MapValues looks values up by filter name, e.g. from request attributes.
func MapValues(values map[string]string) ValueProvider {
	return ValueProviderFunc(func(filter types.Filter) (string, bool) {
		v, ok := values[filter.Name]
		return v, ok
	})
}

func lookupValue(provider ValueProvider, filter types.Filter) (string, bool) {
	value, ok := provider.FilterValue(filter)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

type options struct {
	logger log.Logger
	values ValueProvider
}

type Option func(*options)

func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithValueProvider replaces where the composed backend reads filter values from.
func WithValueProvider(values ValueProvider) Option {
	return func(o *options) {
		o.values = values
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: log.NewNopLogger(),
		values: FilterValues,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
