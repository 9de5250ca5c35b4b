package datasource

import (
	"fmt"
	"strings"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/query"
	"github.com/datastax/table-data-apis/types"
)

// ComposedDataSource runs a structured query builder with named parameters.
type ComposedDataSource struct {
	recipe *query.Builder
	db     *db.Db
	values ValueProvider
	logger log.Logger
}

// NewComposedDataSource keeps a snapshot of builder, later changes to builder are not seen.
func NewComposedDataSource(builder *query.Builder, dbClient *db.Db, opts ...Option) (*ComposedDataSource, error) {
	if builder == nil {
		return nil, NewConfigurationError("composed data source has no query builder")
	}
	if dbClient == nil {
		return nil, NewConfigurationError("composed data source has no session")
	}
	o := newOptions(opts)
	return &ComposedDataSource{
		recipe: builder.Snapshot(),
		db:     dbClient,
		values: o.values,
		logger: o.logger.With("datasource", TypeComposed),
	}, nil
}

func (ds *ComposedDataSource) Type() string {
	return TypeComposed
}

func (ds *ComposedDataSource) Capabilities() Capabilities {
	return Filtering | Sorting | Pagination | LazyPages
}

func (ds *ComposedDataSource) ready() error {
	if ds == nil || ds.recipe == nil {
		return NewConfigurationError("composed data source has no query builder")
	}
	if ds.db == nil {
		return NewConfigurationError("composed data source has no session")
	}
	return nil
}

// Builder returns a snapshot of the stored recipe.
func (ds *ComposedDataSource) Builder() *query.Builder {
	return ds.recipe.Snapshot()
}

// Prepare returns the builder GetData would execute, before the page range check.
func (ds *ComposedDataSource) Prepare(filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (*query.Builder, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}

	qb := ds.recipe.Snapshot()
	if err := ds.applyFilters(qb, filters); err != nil {
		return nil, err
	}

	if sort != nil {
		if err := validateSort(*sort); err != nil {
			return nil, err
		}
		aliases := qb.RootAliases()
		if len(aliases) == 0 {
			return nil, NewConfigurationError("composed data source query has no root alias to sort on")
		}
		qb.OrderBy(fmt.Sprintf("%s.%s", aliases[0], sort.Column), sort.Direction)
	}

	if pagination != nil {
		qb.SetFirstResult(pagination.Offset())
		qb.SetMaxResults(pagination.PageSize)
	}

	return qb, nil
}

func (ds *ComposedDataSource) GetData(columns []types.Column, filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (Result, error) {
	qb, err := ds.Prepare(filters, pagination, sort)
	if err != nil {
		return nil, err
	}

	if pagination != nil {
		if err := validatePage(ds, columns, filters, *pagination); err != nil {
			return nil, err
		}
		return query.NewPaginator(qb, ds.db), nil
	}

	ds.logger.Debug("executing query", "dql", qb.DQL())
	rows, err := qb.Result(ds.db)
	if err != nil {
		return nil, err
	}
	return RowList(rows), nil
}

func (ds *ComposedDataSource) CountItems(columns []types.Column, filters []types.Filter) (int, error) {
	if err := ds.ready(); err != nil {
		return 0, err
	}

	qb := ds.recipe.CountSnapshot()
	if err := ds.applyFilters(qb, filters); err != nil {
		return 0, err
	}

	ds.logger.Debug("executing count query", "dql", qb.DQL())
	return qb.SingleScalarResult(ds.db)
}

func (ds *ComposedDataSource) CountPages(columns []types.Column, filters []types.Filter, pagination types.Pagination) (int, error) {
	return countPages(ds, columns, filters, pagination)
}

func (ds *ComposedDataSource) applyFilters(qb *query.Builder, filters []types.Filter) error {
	parts := make([]string, 0, len(filters))

	for _, filter := range filters {
		if !filter.Active {
			continue
		}

		value, ok := lookupValue(ds.values, filter)
		if !ok {
			continue
		}

		if !identifierRe.MatchString(filter.Name) {
			return fmt.Errorf("filter name '%s' is not a valid parameter name", filter.Name)
		}

		clause, known := lookupNamedClause(filter.Operator, ds.db.Dialect())
		if !known {
			ds.logger.Warn("unknown filter operator, using contains",
				"filter", filter.Name,
				"operator", filter.Operator.String())
		}

		fragments := make([]string, 0, len(filter.Columns))
		for _, column := range filter.Columns {
			fragments = append(fragments, clause.render(column.Qualified(), filter.Name))
		}
		if len(fragments) == 0 {
			continue
		}

		parts = append(parts, joinFragments(fragments, filter.Join()))
		qb.SetParameter(filter.Name, clause.bind(value))
	}

	if len(parts) == 0 {
		return nil
	}

	where := strings.Join(parts, " and ")
	if qb.HasWhere() {
		qb.AndWhere(where)
	} else {
		qb.Where(where)
	}
	return nil
}
