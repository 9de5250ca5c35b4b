package errors

import (
	"errors"
	"net/http"

	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/types"
)

type notFound interface {
	IsNotFound() bool
}

// StatusCode maps an error returned while serving a table to an http status code
func StatusCode(err error) int {
	var nf notFound
	if errors.As(err, &nf) && nf.IsNotFound() {
		return http.StatusNotFound
	}

	var badRequest *BadRequestError
	var validation *types.ValidationError
	var columnNotFound *datasource.ColumnNotFoundError
	switch {
	case errors.As(err, &badRequest),
		errors.As(err, &validation),
		errors.As(err, &columnNotFound),
		errors.Is(err, datasource.ErrFiltersNotSupported),
		errors.Is(err, types.ErrUnknownOperator):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether the error was caused by the request
func IsClientError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500
}
