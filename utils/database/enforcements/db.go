package enforcements

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init initializes the enforcement snapshot database and ensures the table
// exists. The table mirrors the in-memory store so records survive restarts.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS enforcements (
	          id TEXT PRIMARY KEY,
	          warning_id TEXT NOT NULL,
	          user_id TEXT NOT NULL,
	          guild_id TEXT NOT NULL,
	          action TEXT NOT NULL,
	          execute_at INTEGER NOT NULL,
	          reverse_at INTEGER,
	          state TEXT NOT NULL,
	          created_at INTEGER NOT NULL,
	          executed_at INTEGER,
	          reversed_at INTEGER
	      );
	      CREATE INDEX IF NOT EXISTS idx_enforcements_user_guild ON enforcements (user_id, guild_id);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create enforcements table: %w", err)
	}

	return db, nil
}
