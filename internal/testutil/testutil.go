package testutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datastax/table-data-apis/db"
	"github.com/datastax/table-data-apis/log"
)

// Item is a row of the items fixture table.
type Item struct {
	Id        int
	Title     string
	Status    string
	CreatedAt string
}

var Items = []Item{
	{1, "Foo bar", "open", "2024-01-01"},
	{2, "Another FOO", "closed", "2024-01-02"},
	{3, "baz", "open", "2024-01-03"},
	{4, "O'Reilly notes", "open", "2024-01-04"},
	{5, "qux", "closed", "2024-01-05"},
}

var itemsDDL = []string{
	`CREATE TABLE items (id INTEGER PRIMARY KEY, title TEXT NOT NULL, status TEXT NOT NULL, created_at TEXT NOT NULL)`,
}

// NewMemoryDb opens a new, empty in-memory database.
func NewMemoryDb() *db.Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
	dbClient, err := db.NewSqliteDb(dsn)
	PanicIfError(err)
	return dbClient
}

// SetupSqliteFixture opens a private in-memory database seeded with Items.
func SetupSqliteFixture() *db.Db {
	dbClient := NewMemoryDb()

	for _, stmt := range itemsDDL {
		PanicIfError(dbClient.ExecuteNoResult(stmt))
	}
	for _, item := range Items {
		PanicIfError(dbClient.ExecuteNoResult(
			"INSERT INTO items (id, title, status, created_at) VALUES (?, ?, ?, ?)",
			item.Id, item.Title, item.Status, item.CreatedAt))
	}
	return dbClient
}

// ItemsWhere returns the ids of the fixture items matching the predicate.
func ItemsWhere(predicate func(Item) bool) []int {
	ids := make([]int, 0)
	for _, item := range Items {
		if predicate(item) {
			ids = append(ids, item.Id)
		}
	}
	return ids
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewNopLogger()
}
