package datasource

import (
	"github.com/datastax/table-data-apis/document"
	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/types"
)

// DocumentDataSource runs a document query. It sorts and paginates but does not filter.
type DocumentDataSource struct {
	recipe *document.Query
	store  document.Store
	logger log.Logger
}

// NewDocumentDataSource keeps a snapshot of q, later changes to q are not seen.
func NewDocumentDataSource(q *document.Query, store document.Store, opts ...Option) (*DocumentDataSource, error) {
	if q == nil {
		return nil, NewConfigurationError("document data source has no query")
	}
	if store == nil {
		return nil, NewConfigurationError("document data source has no store")
	}
	o := newOptions(opts)
	return &DocumentDataSource{
		recipe: q.Snapshot(),
		store:  store,
		logger: o.logger.With("datasource", TypeDocument),
	}, nil
}

func (ds *DocumentDataSource) Type() string {
	return TypeDocument
}

func (ds *DocumentDataSource) Capabilities() Capabilities {
	return Sorting | Pagination | LazyPages
}

// Query returns a snapshot of the stored query.
func (ds *DocumentDataSource) Query() *document.Query {
	return ds.recipe.Snapshot()
}

func (ds *DocumentDataSource) ready() error {
	if ds == nil || ds.recipe == nil {
		return NewConfigurationError("document data source has no query")
	}
	if ds.store == nil {
		return NewConfigurationError("document data source has no store")
	}
	return nil
}

func (ds *DocumentDataSource) GetData(columns []types.Column, filters []types.Filter, pagination *types.Pagination, sort *types.Sort) (Result, error) {
	if err := ds.ready(); err != nil {
		return nil, err
	}
	if len(types.ActiveFilters(filters)) > 0 {
		return nil, ErrFiltersNotSupported
	}

	q := ds.recipe.Snapshot()
	if sort != nil {
		if err := types.Validate(*sort); err != nil {
			return nil, err
		}
		q.Sort(sort.Column, sort.Direction)
	}

	if pagination != nil {
		if err := validatePage(ds, columns, filters, *pagination); err != nil {
			return nil, err
		}
		q.Skip(pagination.Offset()).Limit(pagination.PageSize)
	}

	ds.logger.Debug("executing document query",
		"collection", q.Collection(),
		"sort", len(q.SortFields()))
	return q.Execute(ds.store), nil
}

func (ds *DocumentDataSource) CountItems(columns []types.Column, filters []types.Filter) (int, error) {
	if err := ds.ready(); err != nil {
		return 0, err
	}
	if len(types.ActiveFilters(filters)) > 0 {
		return 0, ErrFiltersNotSupported
	}
	return ds.recipe.Snapshot().Execute(ds.store).Count()
}

func (ds *DocumentDataSource) CountPages(columns []types.Column, filters []types.Filter, pagination types.Pagination) (int, error) {
	return countPages(ds, columns, filters, pagination)
}
