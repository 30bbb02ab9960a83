package warnings

import (
	"fmt"
	"time"
	"warden-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddWarning inserts a new warning record.
func AddWarning(db *sqlx.DB, warning model.Warning) error {
	query := `INSERT INTO warnings (warning_id, user_id, guild_id, moderator_id, reason, severity, timestamp, pardoned)
			  VALUES (:warning_id, :user_id, :guild_id, :moderator_id, :reason, :severity, :timestamp, :pardoned)`

	if _, err := db.NamedExec(query, warning); err != nil {
		return fmt.Errorf("failed to insert warning record: %w", err)
	}
	return nil
}

// GetWarningsByUser retrieves all warnings for a user in a guild, newest first.
func GetWarningsByUser(db *sqlx.DB, userID, guildID string) ([]model.Warning, error) {
	var records []model.Warning
	query := "SELECT * FROM warnings WHERE user_id = ? AND guild_id = ? ORDER BY timestamp DESC"
	if err := db.Select(&records, query, userID, guildID); err != nil {
		return nil, fmt.Errorf("failed to get warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	return records, nil
}

// CountActiveWarnings sums the severity of non-pardoned warnings for a user
// since the given time.
func CountActiveWarnings(db *sqlx.DB, userID, guildID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COALESCE(SUM(severity), 0) FROM warnings
			  WHERE user_id = ? AND guild_id = ? AND pardoned = 0 AND timestamp >= ?`
	if err := db.Get(&count, query, userID, guildID, since.Unix()); err != nil {
		return 0, fmt.Errorf("failed to count active warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	return count, nil
}

// PardonWarnings marks all non-pardoned warnings for a user as pardoned and
// returns how many rows were affected.
func PardonWarnings(db *sqlx.DB, userID, guildID string) (int64, error) {
	query := "UPDATE warnings SET pardoned = 1 WHERE user_id = ? AND guild_id = ? AND pardoned = 0"
	result, err := db.Exec(query, userID, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to pardon warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected for user %s: %w", userID, err)
	}
	return rowsAffected, nil
}

// GetWarningStats retrieves the warning count per moderator within a time range.
func GetWarningStats(db *sqlx.DB, guildID string, since time.Time) (map[string]int, error) {
	query := `SELECT moderator_id, COUNT(*) as count FROM warnings
			  WHERE guild_id = ? AND timestamp >= ? GROUP BY moderator_id ORDER BY count DESC`
	rows, err := db.Query(query, guildID, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get warning stats for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var moderatorID string
		var count int
		if err := rows.Scan(&moderatorID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan warning stats row: %w", err)
		}
		stats[moderatorID] = count
	}
	return stats, nil
}
