package endpoint

import (
	"fmt"
	"sort"

	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/datasource"
	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/document"
	"github.com/datastax/table-data-apis/log"
	"github.com/datastax/table-data-apis/metrics"
	"github.com/datastax/table-data-apis/query"
	restEndpointV1 "github.com/datastax/table-data-apis/rest/endpoint/v1"
	"github.com/datastax/table-data-apis/types"
)

type DataEndpointConfig struct {
	cfg        *config.Config
	naming     config.NamingConvention
	useMetrics bool
	logger     log.Logger
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

// WithMetrics instruments every table data source with prometheus metrics
func (cfg *DataEndpointConfig) WithMetrics(useMetrics bool) *DataEndpointConfig {
	cfg.useMetrics = useMetrics
	return cfg
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	dbClient, err := OpenDb(cfg.cfg.Database)
	if err != nil {
		return nil, err
	}
	endpoint, err := cfg.NewEndpointWithDb(dbClient)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}
	return endpoint, nil
}

// NewEndpointWithDb builds the data source of every configured table on top of dbClient
func (cfg DataEndpointConfig) NewEndpointWithDb(dbClient *db.Db) (*DataEndpoint, error) {
	e := &DataEndpoint{
		db:     dbClient,
		tables: make(map[string]*restEndpointV1.Table, len(cfg.cfg.Tables)),
		stores: make(map[string]*document.SQLiteStore),
		naming: cfg.naming,
		logger: cfg.logger,
	}

	for _, tableCfg := range cfg.cfg.Tables {
		ds, err := e.newDataSource(tableCfg)
		if err != nil {
			return nil, fmt.Errorf("unable to create data source for table '%s': %w", tableCfg.Name, err)
		}
		if cfg.useMetrics {
			ds = metrics.Instrument(ds, tableCfg.Name)
		}

		filters, err := tableCfg.ToFilters()
		if err != nil {
			return nil, err
		}
		ops, err := config.Ops(tableCfg.Operations...)
		if err != nil {
			return nil, err
		}

		e.tables[tableCfg.Name] = &restEndpointV1.Table{
			Name:       tableCfg.Name,
			Source:     ds,
			Columns:    tableCfg.ToColumns(),
			Filters:    filters,
			PageSize:   cfg.cfg.EffectivePageSize(tableCfg),
			Operations: ops,
		}
		e.logger.Info("table registered",
			"table", tableCfg.Name,
			"backend", ds.Type(),
			"capabilities", ds.Capabilities().String())
	}

	return e, nil
}

type DataEndpoint struct {
	db     *db.Db
	tables map[string]*restEndpointV1.Table
	stores map[string]*document.SQLiteStore
	naming config.NamingConvention
	logger log.Logger
}

func NewEndpointConfig(cfg *config.Config) (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(cfg, log.NewZapLogger(logger)), nil
}

func NewEndpointConfigWithLogger(cfg *config.Config, logger log.Logger) *DataEndpointConfig {
	return &DataEndpointConfig{
		cfg:    cfg,
		naming: config.NewDefaultNaming(),
		logger: logger,
	}
}

// OpenDb connects to the configured database
func OpenDb(cfg config.DatabaseConfig) (*db.Db, error) {
	switch cfg.Driver {
	case config.DriverSqlite:
		return db.NewSqliteDb(cfg.DSN)
	case config.DriverPostgres:
		return db.NewPgxDb(cfg.DSN)
	case config.DriverCassandra:
		cqlCfg := db.CqlConfig{
			Hosts:    cfg.Hosts,
			Username: cfg.Username,
			Password: cfg.Password,
			Keyspace: cfg.Keyspace,
		}
		if cfg.Consistency != "" {
			consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
			if err != nil {
				return nil, err
			}
			cqlCfg.Consistency = consistency
		}
		return db.NewCqlDb(cqlCfg)
	}
	return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
}

func (e *DataEndpoint) newDataSource(tableCfg config.TableConfig) (datasource.DataSource, error) {
	logger := datasource.WithLogger(e.logger.With("table", tableCfg.Name))

	switch tableCfg.Backend {
	case config.BackendStatement:
		if tableCfg.Template == nil {
			return nil, datasource.NewConfigurationError("statement backend requires a template")
		}
		template := datasource.StatementTemplate{
			Body:     tableCfg.Template.Body,
			Fields:   tableCfg.Template.Fields,
			HasWhere: tableCfg.Template.HasWhere,
		}
		return datasource.NewStatementDataSource(template, e.db, logger)

	case config.BackendComposed:
		if tableCfg.Builder == nil {
			return nil, datasource.NewConfigurationError("composed backend requires a builder")
		}
		qb := query.New().From(tableCfg.Builder.Table, tableCfg.Builder.Alias)
		if len(tableCfg.Builder.Select) > 0 {
			qb.Select(tableCfg.Builder.Select...)
		}
		if tableCfg.Builder.Where != "" {
			qb.Where(tableCfg.Builder.Where)
		}
		return datasource.NewComposedDataSource(qb, e.db, logger)

	case config.BackendDocument:
		if tableCfg.Document == nil {
			return nil, datasource.NewConfigurationError("document backend requires a document query")
		}
		store, err := e.documentStore(tableCfg.Document.Store)
		if err != nil {
			return nil, err
		}
		q := document.NewQuery(tableCfg.Document.Collection)
		fields := make([]string, 0, len(tableCfg.Document.Criteria))
		for field := range tableCfg.Document.Criteria {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			q.Where(field, tableCfg.Document.Criteria[field])
		}
		return datasource.NewDocumentDataSource(q, store, logger)
	}

	return nil, datasource.NewConfigurationError("unknown backend '%s'", tableCfg.Backend)
}

func (e *DataEndpoint) documentStore(name string) (*document.SQLiteStore, error) {
	if store, ok := e.stores[name]; ok {
		return store, nil
	}
	store, err := document.NewSQLiteStore(e.db, name)
	if err != nil {
		return nil, datasource.NewConfigurationError("unable to open document store '%s': %v", name, err)
	}
	e.stores[name] = store
	return store, nil
}

// DocumentStore returns a document store opened for a document table
func (e *DataEndpoint) DocumentStore(name string) (*document.SQLiteStore, bool) {
	store, ok := e.stores[name]
	return store, ok
}

func (e *DataEndpoint) Table(name string) (*restEndpointV1.Table, bool) {
	table, ok := e.tables[name]
	return table, ok
}

// Tables returns the registered tables sorted by name
func (e *DataEndpoint) Tables() []*restEndpointV1.Table {
	names := make([]string, 0, len(e.tables))
	for name := range e.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]*restEndpointV1.Table, 0, len(names))
	for _, name := range names {
		tables = append(tables, e.tables[name])
	}
	return tables
}

func (e *DataEndpoint) RoutesRest(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, e, e.naming, e.logger)
}

func (e *DataEndpoint) Close() error {
	return e.db.Close()
}
