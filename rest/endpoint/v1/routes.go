package endpoint

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/types"
)

const (
	TablesPathFormat = "/v1/tables"
	TablePathFormat  = "/v1/tables/%s"
)

// TableRegistry resolves the tables served by the routes
type TableRegistry interface {
	Table(name string) (*Table, bool)
	Tables() []*Table
}

// Route describes how to route an endpoint
type routeList struct {
	tables TableRegistry
	naming config.NamingConvention
	logger log.Logger
	params func(*http.Request, string) string
}

// Routes returns a slice of all the endpoint routes
func Routes(prefix string, tables TableRegistry, naming config.NamingConvention, logger log.Logger) []types.Route {
	rl := routeList{
		tables: tables,
		naming: naming,
		logger: logger,
		params: func(r *http.Request, key string) string {
			return httprouter.ParamsFromContext(r.Context()).ByName(key)
		},
	}

	routes := []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: prefix + TablesPathFormat,
			Handler: http.HandlerFunc(rl.GetTables),
		},
		{
			Method:  http.MethodGet,
			Pattern: prefix + fmt.Sprintf(TablePathFormat, ":tableName"),
			Handler: http.HandlerFunc(rl.GetTableData),
		},
	}
	return routes
}
