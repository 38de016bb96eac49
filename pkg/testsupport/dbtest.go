package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBSeq atomic.Uint64

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Each call gets
// its own database so parallel tests never share rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:site-test-%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", name)
}

// NewBunMemoryDB wraps NewSQLiteMemoryDB with the sqlite dialect and creates
// a table for every model.
func NewBunMemoryDB(ctx context.Context, models ...any) (*bun.DB, error) {
	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create table %T: %w", model, err)
		}
	}
	return db, nil
}
