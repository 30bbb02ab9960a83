package enforcements

import (
	"encoding/json"
	"fmt"
	"time"
	"warden-bot/enforcement"

	"github.com/jmoiron/sqlx"
)

// enforcementRow is the database shape of an enforcement record. The action
// is stored as a JSON blob since its parameters vary by kind.
type enforcementRow struct {
	ID         string `db:"id"`
	WarningID  string `db:"warning_id"`
	UserID     string `db:"user_id"`
	GuildID    string `db:"guild_id"`
	Action     string `db:"action"`
	ExecuteAt  int64  `db:"execute_at"`
	ReverseAt  *int64 `db:"reverse_at"`
	State      string `db:"state"`
	CreatedAt  int64  `db:"created_at"`
	ExecutedAt *int64 `db:"executed_at"`
	ReversedAt *int64 `db:"reversed_at"`
}

func toRow(record *enforcement.Record) (*enforcementRow, error) {
	actionJSON, err := json.Marshal(record.Action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action for record %s: %w", record.ID, err)
	}

	return &enforcementRow{
		ID:         record.ID,
		WarningID:  record.WarningID,
		UserID:     record.UserID,
		GuildID:    record.GuildID,
		Action:     string(actionJSON),
		ExecuteAt:  record.ExecuteAt.Unix(),
		ReverseAt:  unixOrNil(record.ReverseAt),
		State:      string(record.State),
		CreatedAt:  record.CreatedAt.Unix(),
		ExecutedAt: unixOrNil(record.ExecutedAt),
		ReversedAt: unixOrNil(record.ReversedAt),
	}, nil
}

func fromRow(row enforcementRow) (*enforcement.Record, error) {
	var action enforcement.Action
	if err := json.Unmarshal([]byte(row.Action), &action); err != nil {
		return nil, fmt.Errorf("failed to unmarshal action for record %s: %w", row.ID, err)
	}

	return &enforcement.Record{
		ID:         row.ID,
		WarningID:  row.WarningID,
		UserID:     row.UserID,
		GuildID:    row.GuildID,
		Action:     action,
		ExecuteAt:  time.Unix(row.ExecuteAt, 0).UTC(),
		ReverseAt:  timeOrNil(row.ReverseAt),
		State:      enforcement.State(row.State),
		CreatedAt:  time.Unix(row.CreatedAt, 0).UTC(),
		ExecutedAt: timeOrNil(row.ExecutedAt),
		ReversedAt: timeOrNil(row.ReversedAt),
	}, nil
}

func unixOrNil(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

func timeOrNil(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.Unix(*v, 0).UTC()
	return &t
}

// UpsertRecord writes a single record, replacing any previous row.
func UpsertRecord(db *sqlx.DB, record *enforcement.Record) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO enforcements (id, warning_id, user_id, guild_id, action, execute_at, reverse_at, state, created_at, executed_at, reversed_at)
			  VALUES (:id, :warning_id, :user_id, :guild_id, :action, :execute_at, :reverse_at, :state, :created_at, :executed_at, :reversed_at)`
	if _, err := db.NamedExec(query, row); err != nil {
		return fmt.Errorf("failed to upsert enforcement record %s: %w", record.ID, err)
	}
	return nil
}

// SaveSnapshot replaces the persisted table with the given records inside a
// single transaction.
func SaveSnapshot(db *sqlx.DB, records []*enforcement.Record) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM enforcements"); err != nil {
		return fmt.Errorf("failed to clear enforcements table: %w", err)
	}

	query := `INSERT INTO enforcements (id, warning_id, user_id, guild_id, action, execute_at, reverse_at, state, created_at, executed_at, reversed_at)
			  VALUES (:id, :warning_id, :user_id, :guild_id, :action, :execute_at, :reverse_at, :state, :created_at, :executed_at, :reversed_at)`
	for _, record := range records {
		row, err := toRow(record)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExec(query, row); err != nil {
			return fmt.Errorf("failed to insert enforcement record %s: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return nil
}

// LoadAll reads every persisted enforcement record.
func LoadAll(db *sqlx.DB) ([]*enforcement.Record, error) {
	var rows []enforcementRow
	if err := db.Select(&rows, "SELECT * FROM enforcements"); err != nil {
		return nil, fmt.Errorf("failed to load enforcement records: %w", err)
	}

	records := make([]*enforcement.Record, 0, len(rows))
	for _, row := range rows {
		record, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
