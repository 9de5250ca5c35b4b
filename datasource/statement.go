package datasource

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/types"
)

// FieldsPlaceholder marks where the selected fields go in a statement template.
const FieldsPlaceholder = "{fields}"

const countAlias = "total"

// StatementTemplate is a raw statement such as "SELECT {fields} FROM items i".
// HasWhere declares that Body already ends in a WHERE clause, so filters are
// appended with AND instead of opening a new WHERE.
type StatementTemplate struct {
	Body     string
	Fields   string
	HasWhere bool
}

func (t StatementTemplate) Validate() error {
	if n := strings.Count(t.Body, FieldsPlaceholder); n != 1 {
		return NewConfigurationError("statement template must contain %s exactly once, found %d", FieldsPlaceholder, n)
	}
	if strings.TrimSpace(t.Fields) == "" {
		return NewConfigurationError("statement template has no fields expression")
	}
	return nil
}

// Query substitutes the fields expression into the body.
func (t StatementTemplate) Query() string {
	return t.withFields(t.Fields)
}

func (t StatementTemplate) withFields(fields string) string {
	return strings.Replace(t.Body, FieldsPlaceholder, fields, 1)
}

// StatementDataSource assembles interpolated statements from a template.
type StatementDataSource struct {
	template StatementTemplate
	db       *db.Db
	logger   log.Logger
}

func NewStatementDataSource(template StatementTemplate, dbClient *db.Db, opts ...Option) (*StatementDataSource, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if dbClient == nil {
		return nil, NewConfigurationError("statement data source has no session")
	}
	o := newOptions(opts)
	return &StatementDataSource{
		template: template,
		db:       dbClient,
		logger:   o.logger.With("datasource", TypeStatement),
	}, nil
}

func (ds *StatementDataSource) Type() string {
	return TypeStatement
}

func (ds *StatementDataSource) Capabilities() Capabilities {
	return Filtering | Sorting | Pagination
}

func (ds *StatementDataSource) Template() StatementTemplate {
	return ds.template
}

func (ds *StatementDataSource) ready() error {
	if ds == nil || ds.template.Body == "" {
		return NewConfigurationError("statement data source has no template")
	}
	if ds.db == nil {
		return NewConfigurationError("statement data source has no session")
	}
	return nil
}

func (ds *StatementDataSource) GetData(columns []types.Column, filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (Result, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}

	if pagination != nil {
		if err := validatePage(ds, columns, filters, *pagination); err != nil {
			return nil, err
		}
	}

	query, err := ds.BuildQuery(columns, filters, pagination, sort)
	if err != nil {
		return nil, err
	}

	ds.logger.Debug("executing statement", "query", query)
	rs, err := ds.db.Execute(query)
	if err != nil {
		return nil, err
	}
	return RowList(rs.Values()), nil
}

// BuildQuery assembles the statement executed by GetData, without checking the page range.
func (ds *StatementDataSource) BuildQuery(columns []types.Column, filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (string, error) {
	if err := ds.ready(); err != nil {
		return "", err
	}

	query := ds.applyFilters(ds.template.Query(), filters)

	if sort != nil {
		if err := validateSort(*sort); err != nil {
			return "", err
		}
		column, ok := types.FindColumn(columns, sort.Column)
		if !ok {
			return "", NewColumnNotFoundError(sort.Column)
		}
		query += fmt.Sprintf(" ORDER BY %s %s", column.Qualified(), sort.Direction)
	}

	if pagination != nil {
		if err := types.Validate(*pagination); err != nil {
			return "", err
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pagination.PageSize, pagination.Offset())
	}

	return query, nil
}

func (ds *StatementDataSource) CountItems(columns []types.Column, filters []types.Filter) (int, error) {
	if err := ds.ready(); err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, NewConfigurationError("counting requires at least one column")
	}

	// Counting the first column is an approximation, it does not handle distinct rows
	count := fmt.Sprintf("COUNT(%s) AS %s", columns[0].Qualified(), countAlias)
	query := ds.applyFilters(ds.template.withFields(count), filters)

	ds.logger.Debug("executing count statement", "query", query)
	rs, err := ds.db.Execute(query)
	if err != nil {
		return 0, err
	}

	row, err := db.FetchOne(rs)
	if err == db.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(row[countAlias])
}

func (ds *StatementDataSource) CountPages(columns []types.Column, filters []types.Filter, pagination types.Pagination) (int, error) {
	return countPages(ds, columns, filters, pagination)
}

func (ds *StatementDataSource) applyFilters(query string, filters []types.Filter) string {
	var sb strings.Builder
	sb.WriteString(query)

	hasWhere := ds.template.HasWhere
	for _, filter := range filters {
		if !filter.Active {
			continue
		}

		clause, ok := literalClauses[filter.Operator]
		if !ok || !clause.supported {
			ds.logger.Warn("operator not supported by statement data source, filter skipped",
				"filter", filter.Name,
				"operator", filter.Operator.String())
			continue
		}

		fragments := make([]string, 0, len(filter.Columns))
		for _, column := range filter.Columns {
			fragments = append(fragments, clause.render(column, filter.Value))
		}
		if len(fragments) == 0 {
			continue
		}

		connective := "WHERE"
		if hasWhere {
			connective = "AND"
		}
		hasWhere = true

		sb.WriteString(" ")
		sb.WriteString(connective)
		sb.WriteString(" ")
		sb.WriteString(joinLiteral(fragments, filter.Join()))
	}

	return sb.String()
}

func joinLiteral(fragments []string, connective types.Connective) string {
	if connective == types.Or && len(fragments) > 1 {
		return "(" + strings.Join(fragments, " OR ") + ")"
	}
	return strings.Join(fragments, " AND ")
}
