package enforcements

import (
	"testing"
	"warden-bot/enforcement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	db, err := Init(":memory:")
	require.NoError(t, err)
	defer db.Close()

	mute := enforcement.NewRecord("w-1", "user-1", "guild-1", enforcement.Mute(3600).WithReason("spam"))
	require.NoError(t, mute.Execute())

	haunt := enforcement.NewRecord("w-2", "user-2", "guild-1", enforcement.Haunt(enforcement.HauntParams{
		TeleportCount:   enforcement.Uint32(5),
		IntervalSeconds: enforcement.Uint32(2),
	}))

	require.NoError(t, SaveSnapshot(db, []*enforcement.Record{mute, haunt}))

	loaded, err := LoadAll(db)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	byID := make(map[string]*enforcement.Record, len(loaded))
	for _, r := range loaded {
		byID[r.ID] = r
	}

	got := byID[mute.ID]
	require.NotNil(t, got)
	assert.Equal(t, enforcement.StateActive, got.State)
	assert.Equal(t, enforcement.ActionMute, got.Action.Kind)
	assert.Equal(t, "spam", got.Action.Reason())
	require.NotNil(t, got.ReverseAt)
	assert.Equal(t, mute.ReverseAt.Unix(), got.ReverseAt.Unix())
	require.NotNil(t, got.ExecutedAt)

	got = byID[haunt.ID]
	require.NotNil(t, got)
	assert.Equal(t, enforcement.StatePending, got.State)
	require.NotNil(t, got.Action.Haunt)
	assert.Equal(t, uint32(5), got.Action.Haunt.TeleportCountOrDefault())
	assert.Nil(t, got.ReverseAt)
}

func TestSnapshotReplacesPreviousContents(t *testing.T) {
	db, err := Init(":memory:")
	require.NoError(t, err)
	defer db.Close()

	first := enforcement.NewRecord("w-1", "user-1", "guild-1", enforcement.Kick(0))
	require.NoError(t, SaveSnapshot(db, []*enforcement.Record{first}))

	second := enforcement.NewRecord("w-2", "user-2", "guild-1", enforcement.Ban(600))
	require.NoError(t, SaveSnapshot(db, []*enforcement.Record{second}))

	loaded, err := LoadAll(db)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, second.ID, loaded[0].ID)
}

func TestUpsertRecord(t *testing.T) {
	db, err := Init(":memory:")
	require.NoError(t, err)
	defer db.Close()

	record := enforcement.NewRecord("w-1", "user-1", "guild-1", enforcement.Mute(60))
	require.NoError(t, UpsertRecord(db, record))

	// Upserting after a state change replaces the row.
	require.NoError(t, record.Execute())
	require.NoError(t, UpsertRecord(db, record))

	loaded, err := LoadAll(db)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, enforcement.StateActive, loaded[0].State)
}
