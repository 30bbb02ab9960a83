package model

// Warning represents a single moderation warning in the database.
// The database table will be named 'warnings'.
type Warning struct {
	WarningID   string `db:"warning_id"` // Primary Key, UUID
	UserID      string `db:"user_id"`
	GuildID     string `db:"guild_id"`
	ModeratorID string `db:"moderator_id"`
	Reason      string `db:"reason"`
	Severity    int    `db:"severity"` // How many warning points this entry counts for
	Timestamp   int64  `db:"timestamp"`
	Pardoned    bool   `db:"pardoned"`
}
