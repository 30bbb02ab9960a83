package handlers

import (
	"testing"
	"warden-bot/enforcement"
	"warden-bot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ladder = []model.EscalationStep{
	{WarningCount: 2, Action: "mute", DurationSeconds: 3600},
	{WarningCount: 3, Action: "voice_channel_haunt"},
	{WarningCount: 5, Action: "ban", DurationSeconds: 604800},
}

func TestMatchEscalationStep(t *testing.T) {
	// Below the ladder nothing matches.
	assert.Nil(t, matchEscalationStep(ladder, 0))
	assert.Nil(t, matchEscalationStep(ladder, 1))

	// The highest reached step wins.
	step := matchEscalationStep(ladder, 2)
	require.NotNil(t, step)
	assert.Equal(t, "mute", step.Action)

	step = matchEscalationStep(ladder, 4)
	require.NotNil(t, step)
	assert.Equal(t, "voice_channel_haunt", step.Action)

	step = matchEscalationStep(ladder, 9)
	require.NotNil(t, step)
	assert.Equal(t, "ban", step.Action)
}

func TestBuildEscalationAction(t *testing.T) {
	hauntCfg := model.HauntConfig{TeleportCount: 5, IntervalSeconds: 2, ReturnToOrigin: false}

	action := buildEscalationAction(ladder[0], hauntCfg)
	assert.Equal(t, enforcement.ActionMute, action.Kind)
	require.NotNil(t, action.Params)
	assert.Equal(t, uint32(3600), action.Params.DurationOrDefault())

	action = buildEscalationAction(ladder[1], hauntCfg)
	assert.Equal(t, enforcement.ActionVoiceChannelHaunt, action.Kind)
	require.NotNil(t, action.Haunt)
	assert.Equal(t, uint32(5), action.Haunt.TeleportCountOrDefault())
	assert.Equal(t, uint32(2), action.Haunt.IntervalOrDefault())
	assert.False(t, action.Haunt.ReturnToOriginOrDefault())

	// Unknown kinds collapse to no action instead of failing the warn.
	action = buildEscalationAction(model.EscalationStep{WarningCount: 1, Action: "explode"}, hauntCfg)
	assert.Equal(t, enforcement.ActionNone, action.Kind)
}
