// Package testsupport provides small helpers for database-backed tests.
package testsupport

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens the process-wide shared in-memory sqlite database.
// Callers must cap the pool at one connection when wrapping with Bun; the
// shared cache does not survive concurrent writers.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewNamedSQLiteMemoryDB opens an isolated shared-memory sqlite database so
// parallel test packages do not observe each other's tables.
func NewNamedSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
