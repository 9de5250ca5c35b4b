package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pgxConnectTimeout = 5 * time.Second

// NewPgxDb creates a PostgreSQL connection pool from a connection string
func NewPgxDb(dsn string) (*Db, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgxConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewDbWithSession(&PgxSession{pool: pool}, Postgres), nil
}

// PgxSession executes statements on a pgx connection pool
type PgxSession struct {
	pool *pgxpool.Pool
}

func (session *PgxSession) Execute(query string, _ *QueryOptions, values ...interface{}) error {
	_, err := session.pool.Exec(context.Background(), query, values...)
	return err
}

func (session *PgxSession) ExecuteIter(query string, _ *QueryOptions, values ...interface{}) (ResultSet, error) {
	rows, err := session.pool.Query(context.Background(), query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return NewResultSet(items), nil
}

func (session *PgxSession) Close() error {
	session.pool.Close()
	return nil
}
