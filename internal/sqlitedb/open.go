package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the sqlite database at dir/name.
// WAL mode keeps concurrent request handlers from serializing on
// every read.
func Open(ctx context.Context, dir, name string) (*sql.DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data directory %v, cause %w", dir, err)
	}
	file := filepath.Join(dir, name)
	connstr := fmt.Sprintf("file:%v?_journal=wal&_foreign_keys=on&mode=rwc", file)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping database %v, cause %w", file, err)
	}
	return conn, nil
}
