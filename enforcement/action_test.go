package enforcement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsReversal(t *testing.T) {
	// Without a duration nothing needs reversal.
	assert.False(t, Mute(0).NeedsReversal())
	assert.False(t, Ban(0).NeedsReversal())
	assert.False(t, VoiceMute(0).NeedsReversal())
	assert.False(t, VoiceDeafen(0).NeedsReversal())

	// With a duration the reversible kinds do.
	assert.True(t, Mute(300).NeedsReversal())
	assert.True(t, Ban(3600).NeedsReversal())
	assert.True(t, VoiceMute(600).NeedsReversal())
	assert.True(t, VoiceDeafen(900).NeedsReversal())

	// One-shot kinds never need reversal, duration or not.
	assert.False(t, Kick(0).NeedsReversal())
	assert.False(t, Kick(10).NeedsReversal())
	assert.False(t, VoiceDisconnect(0).NeedsReversal())
	assert.False(t, VoiceDisconnect(5).NeedsReversal())
	assert.False(t, Haunt(HauntParams{}).NeedsReversal())
	assert.False(t, Haunt(HauntParams{TeleportCount: Uint32(3), IntervalSeconds: Uint32(10)}).NeedsReversal())
	assert.False(t, NoAction().NeedsReversal())
}

func TestIsImmediate(t *testing.T) {
	// Reversible kinds always apply immediately; the duration is the
	// reversal window, not a delay.
	assert.True(t, Mute(300).IsImmediate())
	assert.True(t, Ban(3600).IsImmediate())
	assert.True(t, VoiceMute(600).IsImmediate())
	assert.True(t, VoiceDeafen(900).IsImmediate())
	assert.True(t, NoAction().IsImmediate())

	// Zero delay means immediate.
	assert.True(t, Kick(0).IsImmediate())
	assert.True(t, VoiceDisconnect(0).IsImmediate())
	assert.True(t, Haunt(HauntParams{IntervalSeconds: Uint32(0)}).IsImmediate())
	assert.True(t, Haunt(HauntParams{}).IsImmediate())

	// A delay pushes execution out.
	assert.False(t, Kick(10).IsImmediate())
	assert.False(t, VoiceDisconnect(5).IsImmediate())
	assert.False(t, Haunt(HauntParams{IntervalSeconds: Uint32(10)}).IsImmediate())
}

func TestActionParams(t *testing.T) {
	a := Mute(300)
	require.NotNil(t, a.Params)
	assert.True(t, a.Params.HasDuration())
	assert.Equal(t, uint32(300), a.Params.DurationOrDefault())

	a = Mute(0)
	require.NotNil(t, a.Params)
	assert.False(t, a.Params.HasDuration())
	assert.Equal(t, uint32(0), a.Params.DurationOrDefault())

	a = Mute(300).WithReason("test reason")
	assert.Equal(t, "test reason", a.Reason())
}

func TestHauntParamDefaults(t *testing.T) {
	p := HauntParams{}
	assert.Equal(t, uint32(3), p.TeleportCountOrDefault())
	assert.Equal(t, uint32(10), p.IntervalOrDefault())
	assert.True(t, p.ReturnToOriginOrDefault())

	p = HauntParams{
		TeleportCount:   Uint32(5),
		IntervalSeconds: Uint32(2),
		ReturnToOrigin:  Bool(false),
		OriginChannelID: "vc-9",
	}
	assert.Equal(t, uint32(5), p.TeleportCountOrDefault())
	assert.Equal(t, uint32(2), p.IntervalOrDefault())
	assert.False(t, p.ReturnToOriginOrDefault())
}

func TestParseActionKind(t *testing.T) {
	for _, kind := range AllActionKinds {
		parsed, err := ParseActionKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseActionKind("explode")
	assert.Error(t, err)
}
