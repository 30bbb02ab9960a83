package warnings

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init initializes the warning database and ensures the table exists.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS warnings (
	          warning_id TEXT PRIMARY KEY,
	          user_id TEXT NOT NULL,
	          guild_id TEXT NOT NULL,
	          moderator_id TEXT NOT NULL,
	          reason TEXT NOT NULL,
	          severity INTEGER NOT NULL DEFAULT 1,
	          timestamp INTEGER NOT NULL,
	          pardoned INTEGER NOT NULL DEFAULT 0
	      );
	      CREATE INDEX IF NOT EXISTS idx_warnings_user_guild ON warnings (user_id, guild_id);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create warnings table: %w", err)
	}

	return db, nil
}
