package enforcement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStateTransitions(t *testing.T) {
	record := NewRecord("warning-123", "111", "222", Mute(300))
	assert.Equal(t, StatePending, record.State)
	assert.Nil(t, record.ExecutedAt)
	assert.Nil(t, record.ReverseAt)

	// Executing a reversible action lands in Active with a reversal time.
	before := time.Now().UTC()
	require.NoError(t, record.Execute())
	assert.Equal(t, StateActive, record.State)
	require.NotNil(t, record.ExecutedAt)
	require.NotNil(t, record.ReverseAt)
	wantReverse := before.Add(300 * time.Second)
	assert.WithinDuration(t, wantReverse, *record.ReverseAt, 2*time.Second)

	// Executing twice fails and leaves the record unchanged.
	assert.ErrorIs(t, record.Execute(), ErrInvalidStateTransition)
	assert.Equal(t, StateActive, record.State)

	require.NoError(t, record.Reverse())
	assert.Equal(t, StateReversed, record.State)
	require.NotNil(t, record.ReversedAt)

	// No transitions out of a terminal state.
	assert.ErrorIs(t, record.Reverse(), ErrInvalidStateTransition)
	assert.ErrorIs(t, record.Cancel(), ErrInvalidStateTransition)
	assert.ErrorIs(t, record.Execute(), ErrInvalidStateTransition)
}

func TestRecordOneShotCompletes(t *testing.T) {
	record := NewRecord("warning-123", "111", "222", Kick(0))

	require.NoError(t, record.Execute())
	assert.Equal(t, StateCompleted, record.State)
	require.NotNil(t, record.ExecutedAt)
	assert.Nil(t, record.ReverseAt)

	assert.ErrorIs(t, record.Reverse(), ErrInvalidStateTransition)
}

func TestRecordCancellation(t *testing.T) {
	// Pending -> Cancelled.
	record := NewRecord("warning-123", "111", "222", Mute(300))
	require.NoError(t, record.Cancel())
	assert.Equal(t, StateCancelled, record.State)
	assert.ErrorIs(t, record.Execute(), ErrInvalidStateTransition)

	// Active -> Cancelled.
	record = NewRecord("warning-123", "111", "222", Mute(300))
	require.NoError(t, record.Execute())
	require.NoError(t, record.Cancel())
	assert.Equal(t, StateCancelled, record.State)
	assert.ErrorIs(t, record.Reverse(), ErrInvalidStateTransition)
}

func TestRecordDueChecks(t *testing.T) {
	past := time.Now().Add(-10 * time.Second)

	record := NewRecord("warning-123", "111", "222", Mute(300))
	record.ExecuteAt = past
	assert.True(t, record.IsDueForExecution())
	assert.False(t, record.IsDueForReversal())

	require.NoError(t, record.Execute())
	assert.False(t, record.IsDueForExecution())
	assert.False(t, record.IsDueForReversal())

	record.ReverseAt = &past
	assert.True(t, record.IsDueForReversal())

	require.NoError(t, record.Reverse())
	assert.False(t, record.IsDueForExecution())
	assert.False(t, record.IsDueForReversal())
}

func TestExecuteTimePolicy(t *testing.T) {
	now := time.Now().UTC()

	// Reversible kinds execute immediately.
	record := NewRecord("w", "111", "222", Mute(300))
	assert.WithinDuration(t, now, record.ExecuteAt, 2*time.Second)

	// Kick and voice disconnect treat the duration as a delay.
	record = NewRecord("w", "111", "222", Kick(60))
	assert.WithinDuration(t, now.Add(60*time.Second), record.ExecuteAt, 2*time.Second)

	record = NewRecord("w", "111", "222", VoiceDisconnect(30))
	assert.WithinDuration(t, now.Add(30*time.Second), record.ExecuteAt, 2*time.Second)

	// Haunt delays its first relocation by the interval.
	record = NewRecord("w", "111", "222", Haunt(HauntParams{IntervalSeconds: Uint32(15)}))
	assert.WithinDuration(t, now.Add(15*time.Second), record.ExecuteAt, 2*time.Second)

	record = NewRecord("w", "111", "222", Haunt(HauntParams{}))
	assert.WithinDuration(t, now, record.ExecuteAt, 2*time.Second)
}

func TestRecordClone(t *testing.T) {
	record := NewRecord("w", "111", "222", Mute(300))
	require.NoError(t, record.Execute())

	clone := record.Clone()
	require.NotNil(t, clone.ReverseAt)

	// Mutating the clone must not touch the original.
	*clone.ReverseAt = clone.ReverseAt.Add(time.Hour)
	clone.State = StateCancelled
	*clone.Action.Params.Duration = 1

	assert.Equal(t, StateActive, record.State)
	assert.Equal(t, uint32(300), *record.Action.Params.Duration)
	assert.NotEqual(t, *clone.ReverseAt, *record.ReverseAt)
}
