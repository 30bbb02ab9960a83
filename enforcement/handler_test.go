package enforcement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversAllKinds(t *testing.T) {
	registry := NewHandlerRegistry()
	for _, kind := range AllActionKinds {
		_, ok := registry.Get(kind)
		assert.True(t, ok, "no handler for kind %s", kind)
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	registry := &HandlerRegistry{handlers: map[ActionKind]ActionHandler{}}
	err := registry.Execute(newFakeEffector(), "222", "111", Mute(300))
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	err = registry.Reverse(newFakeEffector(), "222", "111", Mute(300))
	assert.ErrorAs(t, err, &validation)
}

func TestMuteHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	require.NoError(t, registry.Execute(effector, "222", "111", Mute(300)))
	assert.Equal(t, 1, effector.count("timeout"))

	require.NoError(t, registry.Reverse(effector, "222", "111", Mute(300)))
	assert.Equal(t, 1, effector.count("remove_timeout"))
}

func TestBanHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	require.NoError(t, registry.Execute(effector, "222", "111", Ban(3600)))
	assert.Equal(t, 1, effector.count("ban"))

	require.NoError(t, registry.Reverse(effector, "222", "111", Ban(3600)))
	assert.Equal(t, 1, effector.count("unban"))
}

func TestBanHandlerWrapsEffectorError(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()
	cause := errors.New("missing permissions")
	effector.failOn("ban", cause)

	err := registry.Execute(effector, "222", "111", Ban(3600))
	var effErr *EffectorError
	require.ErrorAs(t, err, &effErr)
	assert.ErrorIs(t, err, cause)
}

func TestOneShotHandlersReverseAsNoop(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	require.NoError(t, registry.Execute(effector, "222", "111", Kick(0)))
	assert.Equal(t, 1, effector.count("kick"))
	require.NoError(t, registry.Reverse(effector, "222", "111", Kick(0)))

	require.NoError(t, registry.Execute(effector, "222", "111", VoiceDisconnect(0)))
	assert.Equal(t, 1, effector.count("disconnect"))
	require.NoError(t, registry.Reverse(effector, "222", "111", VoiceDisconnect(0)))

	// Nothing beyond the execute calls reached the platform.
	assert.Equal(t, 1, effector.count("kick"))
	assert.Equal(t, 1, effector.count("disconnect"))
}

func TestVoiceFlagHandlers(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	require.NoError(t, registry.Execute(effector, "222", "111", VoiceMute(600)))
	assert.Equal(t, 1, effector.count("voice_mute"))
	require.NoError(t, registry.Reverse(effector, "222", "111", VoiceMute(600)))
	assert.Equal(t, 1, effector.count("voice_unmute"))

	require.NoError(t, registry.Execute(effector, "222", "111", VoiceDeafen(600)))
	assert.Equal(t, 1, effector.count("voice_deafen"))
	require.NoError(t, registry.Reverse(effector, "222", "111", VoiceDeafen(600)))
	assert.Equal(t, 1, effector.count("voice_undeafen"))
}

func TestHandlerRejectsMismatchedPayload(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	handler, ok := registry.Get(ActionMute)
	require.True(t, ok)

	err := handler.Execute(effector, "222", "111", Kick(0))
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, 0, effector.count("timeout"))
}

func TestHauntHandlerRuns(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	action := Haunt(HauntParams{
		TeleportCount:   Uint32(2),
		IntervalSeconds: Uint32(0),
	})
	require.NoError(t, registry.Execute(effector, "222", "111", action))

	// Two relocations plus the return to origin.
	require.Equal(t, 3, effector.count("move"))
	assert.Equal(t, "vc-1", effector.moves[len(effector.moves)-1])
	// The first hop avoids the channel the user started in.
	assert.NotEqual(t, "vc-1", effector.moves[0])
}

func TestHauntHandlerNoReturn(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()

	action := Haunt(HauntParams{
		TeleportCount:   Uint32(2),
		IntervalSeconds: Uint32(0),
		ReturnToOrigin:  Bool(false),
	})
	require.NoError(t, registry.Execute(effector, "222", "111", action))
	assert.Equal(t, 2, effector.count("move"))
}

func TestHauntHandlerAbortsOnFailure(t *testing.T) {
	registry := NewHandlerRegistry()
	effector := newFakeEffector()
	effector.failOn("move", errors.New("cannot move member"))

	action := Haunt(HauntParams{
		TeleportCount:   Uint32(5),
		IntervalSeconds: Uint32(0),
	})
	// A mid-sequence failure aborts the rest without surfacing an error.
	require.NoError(t, registry.Execute(effector, "222", "111", action))
	assert.Equal(t, 1, effector.count("move"))
}

func TestHauntHandlerPreconditions(t *testing.T) {
	registry := NewHandlerRegistry()

	effector := newFakeEffector()
	effector.userChannel = ""
	err := registry.Execute(effector, "222", "111", Haunt(HauntParams{IntervalSeconds: Uint32(0)}))
	assert.ErrorIs(t, err, ErrNotInVoiceChannel)

	effector = newFakeEffector()
	effector.voiceList = nil
	err = registry.Execute(effector, "222", "111", Haunt(HauntParams{IntervalSeconds: Uint32(0)}))
	var noChannels *NoVoiceChannelsError
	require.ErrorAs(t, err, &noChannels)
	assert.Equal(t, "222", noChannels.GuildID)
}
