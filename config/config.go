// Package config describes the tables served by the API and how they are loaded.
package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/datastax/table-data-apis/types"
)

const (
	DriverSqlite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverCassandra = "cassandra"
)

const (
	BackendStatement = "statement"
	BackendComposed  = "composed"
	BackendDocument  = "document"
)

const DefaultPageSize = 20

type Config struct {
	Database        DatabaseConfig `mapstructure:"database"`
	Tables          []TableConfig  `mapstructure:"tables" validate:"dive"`
	DefaultPageSize int            `mapstructure:"defaultPageSize" validate:"gte=0"`
}

type DatabaseConfig struct {
	Driver      string   `mapstructure:"driver" validate:"required,oneof=sqlite postgres cassandra"`
	DSN         string   `mapstructure:"dsn"`
	Hosts       []string `mapstructure:"hosts"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	Keyspace    string   `mapstructure:"keyspace"`
	Consistency string   `mapstructure:"consistency"`
}

type TableConfig struct {
	Name       string          `mapstructure:"name" validate:"required"`
	Backend    string          `mapstructure:"backend" validate:"required,oneof=statement composed document"`
	Template   *TemplateConfig `mapstructure:"template" validate:"omitempty"`
	Builder    *BuilderConfig  `mapstructure:"builder" validate:"omitempty"`
	Document   *DocumentConfig `mapstructure:"document" validate:"omitempty"`
	Columns    []ColumnConfig  `mapstructure:"columns" validate:"dive"`
	Filters    []FilterConfig  `mapstructure:"filters" validate:"dive"`
	PageSize   int             `mapstructure:"pageSize" validate:"gte=0"`
	Operations []string        `mapstructure:"operations"`
}

type TemplateConfig struct {
	Body     string `mapstructure:"body" validate:"required"`
	Fields   string `mapstructure:"fields" validate:"required"`
	HasWhere bool   `mapstructure:"hasWhere"`
}

type BuilderConfig struct {
	Table  string   `mapstructure:"table" validate:"required"`
	Alias  string   `mapstructure:"alias" validate:"required"`
	Select []string `mapstructure:"select"`
	Where  string   `mapstructure:"where"`
}

type DocumentConfig struct {
	Store      string                 `mapstructure:"store" validate:"required"`
	Collection string                 `mapstructure:"collection" validate:"required"`
	Criteria   map[string]interface{} `mapstructure:"criteria"`
}

type ColumnConfig struct {
	Name  string `mapstructure:"name" validate:"required"`
	Alias string `mapstructure:"alias"`
}

type FilterConfig struct {
	Name       string   `mapstructure:"name" validate:"required"`
	Operator   string   `mapstructure:"operator" validate:"required"`
	Columns    []string `mapstructure:"columns" validate:"required,min=1"`
	Connective string   `mapstructure:"connective" validate:"omitempty,oneof=AND OR and or"`
}

// Load decodes the configuration held by v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := Decode(v.AllSettings(), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode maps loosely typed settings, as read from a file or env, into out.
func Decode(settings interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := types.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Database.Driver == DriverCassandra {
		if len(c.Database.Hosts) == 0 {
			return errors.New("invalid configuration: cassandra requires at least one host")
		}
	} else if c.Database.DSN == "" {
		return fmt.Errorf("invalid configuration: %s requires a dsn", c.Database.Driver)
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("invalid configuration: table '%s' is defined more than once", table.Name)
		}
		seen[table.Name] = true

		if err := table.checkBackend(); err != nil {
			return fmt.Errorf("invalid configuration for table '%s': %w", table.Name, err)
		}

		if _, err := table.ToFilters(); err != nil {
			return fmt.Errorf("invalid configuration for table '%s': %w", table.Name, err)
		}
		if _, err := Ops(table.Operations...); err != nil {
			return fmt.Errorf("invalid configuration for table '%s': %w", table.Name, err)
		}
	}
	return nil
}

// Table returns the table with the given name.
func (c *Config) Table(name string) (TableConfig, bool) {
	for _, table := range c.Tables {
		if table.Name == name {
			return table, true
		}
	}
	return TableConfig{}, false
}

// EffectivePageSize is the table page size, or the configured default.
func (c *Config) EffectivePageSize(table TableConfig) int {
	switch {
	case table.PageSize > 0:
		return table.PageSize
	case c.DefaultPageSize > 0:
		return c.DefaultPageSize
	default:
		return DefaultPageSize
	}
}

func (t TableConfig) checkBackend() error {
	switch {
	case t.Backend == BackendStatement && t.Template == nil:
		return errors.New("statement backend requires a template")
	case t.Backend == BackendComposed && t.Builder == nil:
		return errors.New("composed backend requires a builder")
	case t.Backend == BackendDocument && t.Document == nil:
		return errors.New("document backend requires a document query")
	case t.Backend == BackendDocument && len(t.Filters) > 0:
		return errors.New("document backend does not support filters")
	}
	return nil
}

func (t TableConfig) ToColumns() []types.Column {
	columns := make([]types.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		columns = append(columns, types.Column{Name: c.Name, Alias: c.Alias})
	}
	return columns
}

// ToFilters builds the table filters, inactive until a request provides a value.
// Filter names must be unique within a table, they also name the bound parameter.
func (t TableConfig) ToFilters() ([]types.Filter, error) {
	columns := t.ToColumns()
	filters := make([]types.Filter, 0, len(t.Filters))
	seen := make(map[string]bool, len(t.Filters))
	for _, f := range t.Filters {
		if seen[f.Name] {
			return nil, fmt.Errorf("filter '%s' is defined more than once", f.Name)
		}
		seen[f.Name] = true

		op, err := types.ParseOperator(f.Operator)
		if err != nil {
			return nil, fmt.Errorf("filter '%s': %w", f.Name, err)
		}

		filter := types.Filter{Name: f.Name, Operator: op, Connective: types.And}
		if f.Connective == "OR" || f.Connective == "or" {
			filter.Connective = types.Or
		}
		for _, name := range f.Columns {
			column, ok := types.FindColumn(columns, name)
			if !ok {
				return nil, fmt.Errorf("filter '%s' references unknown column '%s'", f.Name, name)
			}
			filter.Columns = append(filter.Columns, column)
		}
		filters = append(filters, filter)
	}
	return filters, nil
}
