package document

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/types"
)

// IdField is added to every returned document.
const IdField = "_id"

var (
	validTableNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	validFieldRe     = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)
)

// SQLiteStore keeps JSON documents in a single SQLite table, one row per document.
type SQLiteStore struct {
	db    *db.Db
	table string
}

func NewSQLiteStore(dbClient *db.Db, table string) (*SQLiteStore, error) {
	if !validTableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	if dbClient.Dialect() != db.SQLite {
		return nil, fmt.Errorf("document store requires a sqlite session, got %s", dbClient.Dialect())
	}

	store := &SQLiteStore{db: dbClient, table: table}
	createStmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		body TEXT NOT NULL
	)`, table)
	if err := dbClient.ExecuteNoResult(createStmt); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return store, nil
}

// Insert stores a document and returns its id, generating one when id is empty.
func (s *SQLiteStore) Insert(collection, id string, document map[string]interface{}) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	body, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (id, collection, body) VALUES (?, ?, ?)", s.table)
	if err := s.db.ExecuteNoResult(stmt, id, collection, string(body)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Find(spec FindSpec) ([]types.Row, error) {
	where, args, err := s.where(spec)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id, body FROM %s WHERE %s", s.table, where)

	if len(spec.Sort) > 0 {
		orders := make([]string, 0, len(spec.Sort))
		for _, field := range spec.Sort {
			if field.Direction != types.Asc && field.Direction != types.Desc {
				return nil, fmt.Errorf("invalid sort direction: %s", field.Direction)
			}
			if !validFieldRe.MatchString(field.Field) {
				return nil, fmt.Errorf("invalid sort field: %s", field.Field)
			}
			orders = append(orders, fmt.Sprintf("json_extract(body, ?) %s", field.Direction))
			args = append(args, "$."+field.Field)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orders, ", "))
	} else {
		sb.WriteString(" ORDER BY rowid")
	}

	switch {
	case spec.Limit > 0:
		sb.WriteString(" LIMIT ?")
		args = append(args, spec.Limit)
	case spec.Skip > 0:
		sb.WriteString(" LIMIT -1")
	}
	if spec.Skip > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, spec.Skip)
	}

	rs, err := s.db.Execute(sb.String(), args...)
	if err != nil {
		return nil, err
	}

	values := rs.Values()
	rows := make([]types.Row, 0, len(values))
	for _, value := range values {
		row := make(types.Row)
		if err := json.Unmarshal([]byte(cast.ToString(value["body"])), &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		row[IdField] = cast.ToString(value["id"])
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *SQLiteStore) Count(spec FindSpec) (int, error) {
	where, args, err := s.where(spec)
	if err != nil {
		return 0, err
	}

	rs, err := s.db.Execute(fmt.Sprintf("SELECT COUNT(*) AS total FROM %s WHERE %s", s.table, where), args...)
	if err != nil {
		return 0, err
	}
	row, err := db.FetchOne(rs)
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(row["total"])
}

func (s *SQLiteStore) where(spec FindSpec) (string, []interface{}, error) {
	clauses := []string{"collection = ?"}
	args := []interface{}{spec.Collection}

	for _, field := range spec.CriteriaFields() {
		if !validFieldRe.MatchString(field) {
			return "", nil, fmt.Errorf("invalid criteria field: %s", field)
		}
		clauses = append(clauses, "json_extract(body, ?) = ?")
		args = append(args, "$."+field, spec.Criteria[field])
	}
	return strings.Join(clauses, " AND "), args, nil
}
