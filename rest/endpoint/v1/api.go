package endpoint

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/rest/contextutils"
	e "github.com/datastax/table-data-apis/rest/errors"
	m "github.com/datastax/table-data-apis/rest/models"
	"github.com/datastax/table-data-apis/types"
)

const (
	pageParam      = "page"
	pageSizeParam  = "pageSize"
	sortParam      = "sort"
	directionParam = "direction"
)

var reservedParams = map[string]bool{
	pageParam:      true,
	pageSizeParam:  true,
	sortParam:      true,
	directionParam: true,
}

// tableQuery is what a request asks of a table
type tableQuery struct {
	filters    []types.Filter
	pagination *types.Pagination
	sort       *types.Sort
}

func (s *routeList) GetTables(w http.ResponseWriter, r *http.Request) {
	tables := s.tables.Tables()
	result := make([]m.Table, 0, len(tables))
	for _, table := range tables {
		result = append(result, s.toModelTable(table))
	}
	RespondJSONObjectWithCode(w, http.StatusOK, result)
}

func (s *routeList) GetTableData(w http.ResponseWriter, r *http.Request) {
	tableName := s.params(r, "tableName")
	logger := s.logger.With("table", tableName, "requestId", contextutils.GetRequestId(r.Context()))

	table, ok := s.tables.Table(tableName)
	if !ok {
		s.respondWithError(w, r, e.NewNotFoundError(fmt.Sprintf("table '%s' not found", tableName)))
		return
	}

	q, err := s.parseQuery(table, r.URL.Query())
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	result, err := table.Source.GetData(table.Columns, q.filters, q.pagination, q.sort)
	if err != nil {
		logger.Debug("unable to get table data", "error", err)
		s.respondWithError(w, r, err)
		return
	}

	rows, err := result.Rows()
	if err != nil {
		logger.Error("unable to fetch rows", "error", err)
		s.respondWithError(w, r, err)
		return
	}

	data := m.TableData{Rows: ToJsonValues(rows)}
	if q.pagination != nil {
		data.Page = q.pagination.PageIndex
		data.PageSize = q.pagination.PageSize
	} else {
		data.PageSize = len(rows)
	}

	if table.Operations.IsSupported(config.Count) {
		countItems, err := table.Source.CountItems(table.Columns, q.filters)
		if err != nil {
			logger.Error("unable to count items", "error", err)
			s.respondWithError(w, r, err)
			return
		}
		countPages := 1
		if q.pagination != nil {
			countPages = datasource.PageCount(countItems, q.pagination.PageSize)
		}
		data.CountItems = &countItems
		data.CountPages = &countPages
	}

	RespondJSONObjectWithCode(w, http.StatusOK, data)
}

func (s *routeList) parseQuery(table *Table, values url.Values) (*tableQuery, error) {
	q := &tableQuery{}

	if table.Operations.IsSupported(config.Paginate) {
		pageIndex, err := intParam(values, pageParam, 0)
		if err != nil {
			return nil, err
		}
		pageSize, err := intParam(values, pageSizeParam, table.PageSize)
		if err != nil {
			return nil, err
		}
		pagination := types.Pagination{PageIndex: pageIndex, PageSize: pageSize}
		if err := types.ValidatePageSize(pagination.PageSize); err != nil {
			return nil, err
		}
		q.pagination = &pagination
	}

	if sortColumn := values.Get(sortParam); sortColumn != "" && table.Operations.IsSupported(config.Sort) {
		column, ok := table.findColumn(sortColumn)
		if !ok {
			column, ok = table.findColumn(s.naming.ToFilterName(sortColumn))
		}
		if !ok {
			return nil, datasource.NewColumnNotFoundError(sortColumn)
		}
		direction, ok := types.ParseDirection(values.Get(directionParam))
		if !ok {
			return nil, e.NewBadRequestError(fmt.Sprintf("invalid sort direction '%s'", values.Get(directionParam)))
		}
		q.sort = &types.Sort{Column: column.Name, Direction: direction}
	}

	q.filters = make([]types.Filter, len(table.Filters))
	copy(q.filters, table.Filters)
	if table.Operations.IsSupported(config.Filter) {
		for i := range q.filters {
			param := s.naming.ToQueryParam(q.filters[i].Name)
			if reservedParams[param] {
				continue
			}
			if value := strings.TrimSpace(values.Get(param)); value != "" {
				q.filters[i].Value = value
				q.filters[i].Active = true
			}
		}
	}

	return q, nil
}

func intParam(values url.Values, name string, defaultValue int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.NewBadRequestError(fmt.Sprintf("%s must be an integer", name))
	}
	return value, nil
}

func (s *routeList) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := e.StatusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("unable to serve table request",
			"requestId", contextutils.GetRequestId(r.Context()),
			"error", err)
		RespondWithError(w, r, e.NewInternalError("unable to query table"), code)
		return
	}
	RespondWithError(w, r, err, code)
}

func (s *routeList) toModelTable(table *Table) m.Table {
	result := m.Table{
		Name:         table.Name,
		Backend:      table.Source.Type(),
		Capabilities: capabilityNames(table.Source.Capabilities()),
		PageSize:     table.PageSize,
	}
	for _, column := range table.Columns {
		result.Columns = append(result.Columns, m.Column{Name: column.Name, Alias: column.Alias})
	}
	for _, filter := range table.Filters {
		columns := make([]string, 0, len(filter.Columns))
		for _, column := range filter.Columns {
			columns = append(columns, column.Name)
		}
		result.Filters = append(result.Filters, m.Filter{
			Name:     filter.Name,
			Param:    s.naming.ToQueryParam(filter.Name),
			Operator: filter.Operator.String(),
			Columns:  columns,
		})
	}
	return result
}

func capabilityNames(caps datasource.Capabilities) []string {
	if caps == 0 {
		return []string{}
	}
	return strings.Split(caps.String(), "|")
}
