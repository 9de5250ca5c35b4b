package db

import (
	"errors"
)

// Db represents a connection to a database, along with the dialect of its query language
type Db struct {
	session Session
	dialect Dialect
	options *QueryOptions
}

// NewDbWithSession couples an existing session with its dialect
func NewDbWithSession(session Session, dialect Dialect) *Db {
	return &Db{
		session: session,
		dialect: dialect,
		options: NewQueryOptions(),
	}
}

// WithOptions returns a copy of the db that executes statements with the given options
func (db *Db) WithOptions(options *QueryOptions) *Db {
	copied := *db
	copied.options = options
	return &copied
}

func (db *Db) Dialect() Dialect {
	return db.dialect
}

// Execute executes the statement and returns all of its rows
func (db *Db) Execute(query string, values ...interface{}) (ResultSet, error) {
	if db == nil || db.session == nil {
		return nil, errors.New("db has no session")
	}
	return db.session.ExecuteIter(query, db.options, values...)
}

// ExecuteNoResult executes the statement discarding any row results
func (db *Db) ExecuteNoResult(query string, values ...interface{}) error {
	if db == nil || db.session == nil {
		return errors.New("db has no session")
	}
	return db.session.Execute(query, db.options, values...)
}

func (db *Db) Close() error {
	if db == nil || db.session == nil {
		return nil
	}
	return db.session.Close()
}
