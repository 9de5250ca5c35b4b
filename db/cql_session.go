package db

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/gocql/gocql"
	"gopkg.in/inf.v0"
)

type CqlConfig struct {
	Hosts       []string
	Username    string
	Password    string
	Keyspace    string
	Consistency gocql.Consistency
	Timeout     time.Duration
}

// NewCqlDb creates a session against a Cassandra cluster
func NewCqlDb(cfg CqlConfig) (*Db, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.PoolConfig.HostSelectionPolicy = NewDefaultHostSelectionPolicy()
	cluster.Keyspace = cfg.Keyspace

	if cfg.Username != "" && cfg.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.New("failed to create session")
	}

	db := NewDbWithSession(&GoCqlSession{ref: session}, CQL)
	if cfg.Consistency != 0 {
		db.options.WithConsistency(cfg.Consistency)
	}
	return db, nil
}

type GoCqlSession struct {
	ref *gocql.Session
}

func (session *GoCqlSession) Execute(query string, options *QueryOptions, values ...interface{}) error {
	_, err := session.ExecuteIter(query, options, values...)
	return err
}

func (session *GoCqlSession) ExecuteIter(query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	q := session.ref.Query(query, values...)

	// Avoid reusing metadata from the prepared statement
	// Otherwise templates using SELECT * do not see new columns
	q.NoSkipMetadata()

	if options != nil {
		q.Consistency(options.Consistency)

		if options.SerialConsistency != gocql.Serial && options.SerialConsistency != gocql.LocalSerial {
			return nil, errors.New("invalid serial consistency")
		}

		q.SerialConsistency(options.SerialConsistency)

		if options.UserOrRole != "" {
			q.CustomPayload(map[string][]byte{
				"ProxyExecute": []byte(options.UserOrRole),
			})
		}
	}

	iter := q.Iter()
	columns := iter.Columns()
	scanner := iter.Scanner()

	items := make([]map[string]interface{}, 0)
	for scanner.Next() {
		row, err := mapScan(scanner, columns)
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		items = append(items, row)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return NewResultSet(items), nil
}

func (session *GoCqlSession) Close() error {
	session.ref.Close()
	return nil
}

func mapScan(scanner gocql.Scanner, columns []gocql.ColumnInfo) (map[string]interface{}, error) {
	values := make([]interface{}, len(columns))

	for i := range values {
		typeInfo := columns[i].TypeInfo
		switch typeInfo.Type() {
		case gocql.TypeVarchar, gocql.TypeAscii, gocql.TypeInet, gocql.TypeText:
			values[i] = new(*string)
		case gocql.TypeBigInt, gocql.TypeCounter:
			values[i] = new(*int64)
		case gocql.TypeBoolean:
			values[i] = new(*bool)
		case gocql.TypeFloat:
			values[i] = new(*float32)
		case gocql.TypeDouble:
			values[i] = new(*float64)
		case gocql.TypeInt:
			values[i] = new(*int)
		case gocql.TypeSmallInt:
			values[i] = new(*int16)
		case gocql.TypeTinyInt:
			values[i] = new(*int8)
		case gocql.TypeDecimal:
			values[i] = new(*inf.Dec)
		case gocql.TypeVarint:
			values[i] = new(*big.Int)
		case gocql.TypeTimestamp:
			values[i] = new(*time.Time)
		case gocql.TypeBlob:
			values[i] = new(*[]byte)
		case gocql.TypeTimeUUID, gocql.TypeUUID:
			values[i] = new(*gocql.UUID)
		default:
			return nil, fmt.Errorf("support for CQL type not found: %s", typeInfo.Type().String())
		}
	}

	if err := scanner.Scan(values...); err != nil {
		return nil, err
	}

	mapped := make(map[string]interface{}, len(values))
	for i, column := range columns {
		// Dereference the outer pointer, a nil inner pointer is a null column
		inner := reflect.Indirect(reflect.ValueOf(values[i]))
		if inner.IsNil() {
			mapped[column.Name] = nil
			continue
		}
		switch column.TypeInfo.Type() {
		case gocql.TypeDecimal, gocql.TypeVarint:
			// Arbitrary precision values keep their pointer receivers
			mapped[column.Name] = inner.Interface()
		default:
			mapped[column.Name] = inner.Elem().Interface()
		}
	}

	return mapped, nil
}
