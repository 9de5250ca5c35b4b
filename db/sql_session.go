package db

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// NewSqliteDb opens a SQLite database, e.g. "file::memory:?cache=shared"
func NewSqliteDb(dsn string) (*Db, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return NewDbWithSession(NewSqlSession(conn), SQLite), nil
}

// SqlSession executes statements through database/sql
type SqlSession struct {
	ref *sql.DB
}

func NewSqlSession(conn *sql.DB) *SqlSession {
	return &SqlSession{ref: conn}
}

func (session *SqlSession) Execute(query string, _ *QueryOptions, values ...interface{}) error {
	_, err := session.ref.Exec(query, values...)
	return err
}

func (session *SqlSession) ExecuteIter(query string, _ *QueryOptions, values ...interface{}) (ResultSet, error) {
	rows, err := session.ref.Query(query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return NewResultSet(items), nil
}

func (session *SqlSession) Close() error {
	if session.ref == nil {
		return errors.New("sql session is not open")
	}
	return session.ref.Close()
}
