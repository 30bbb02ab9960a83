package enforcement

import "fmt"

// ActionKind identifies the type of an enforcement action.
type ActionKind string

const (
	ActionNone              ActionKind = "none"
	ActionMute              ActionKind = "mute"
	ActionBan               ActionKind = "ban"
	ActionKick              ActionKind = "kick"
	ActionVoiceMute         ActionKind = "voice_mute"
	ActionVoiceDeafen       ActionKind = "voice_deafen"
	ActionVoiceDisconnect   ActionKind = "voice_disconnect"
	ActionVoiceChannelHaunt ActionKind = "voice_channel_haunt"
)

// AllActionKinds lists every registered kind. Used by the handler registry
// and by the config escalation ladder validation.
var AllActionKinds = []ActionKind{
	ActionNone,
	ActionMute,
	ActionBan,
	ActionKick,
	ActionVoiceMute,
	ActionVoiceDeafen,
	ActionVoiceDisconnect,
	ActionVoiceChannelHaunt,
}

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionMute:
		return "Mute"
	case ActionBan:
		return "Ban"
	case ActionKick:
		return "Kick"
	case ActionVoiceMute:
		return "Voice Mute"
	case ActionVoiceDeafen:
		return "Voice Deafen"
	case ActionVoiceDisconnect:
		return "Voice Disconnect"
	case ActionVoiceChannelHaunt:
		return "Voice Channel Haunt"
	default:
		return string(k)
	}
}

// ParseActionKind converts a stored kind value back into an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	for _, k := range AllActionKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action kind: %q", s)
}

// ActionParams holds the parameters shared by most action kinds.
type ActionParams struct {
	// Duration in seconds. For reversible kinds (mute, ban, voice mute,
	// voice deafen) this is how long the effect stays applied before it is
	// reversed. For kick and voice disconnect it is a pre-execution delay.
	// nil or 0 means immediate with no scheduled reversal.
	Duration *uint32 `json:"duration,omitempty"`

	// Reason recorded against the action for audit logs.
	Reason string `json:"reason,omitempty"`
}

// HasDuration reports whether the params carry a positive duration.
func (p *ActionParams) HasDuration() bool {
	return p != nil && p.Duration != nil && *p.Duration > 0
}

// DurationOrDefault returns the duration or 0.
func (p *ActionParams) DurationOrDefault() uint32 {
	if p == nil || p.Duration == nil {
		return 0
	}
	return *p.Duration
}

// HauntParams configures the voice channel haunt action.
type HauntParams struct {
	// TeleportCount is how many times the user is relocated. Defaults to 3.
	TeleportCount *uint32 `json:"teleport_count,omitempty"`

	// IntervalSeconds is the wait between relocations. Defaults to 10.
	IntervalSeconds *uint32 `json:"interval_seconds,omitempty"`

	// ReturnToOrigin moves the user back to their original channel once the
	// sequence finishes. Defaults to true.
	ReturnToOrigin *bool `json:"return_to_origin,omitempty"`

	// OriginChannelID overrides the channel the user is returned to. When
	// empty, the channel the user was in when the haunt started is used.
	OriginChannelID string `json:"origin_channel_id,omitempty"`
}

func (p *HauntParams) TeleportCountOrDefault() uint32 {
	if p == nil || p.TeleportCount == nil {
		return 3
	}
	return *p.TeleportCount
}

func (p *HauntParams) IntervalOrDefault() uint32 {
	if p == nil || p.IntervalSeconds == nil {
		return 10
	}
	return *p.IntervalSeconds
}

func (p *HauntParams) ReturnToOriginOrDefault() bool {
	if p == nil || p.ReturnToOrigin == nil {
		return true
	}
	return *p.ReturnToOrigin
}

// Action is a single enforcement effect description: a kind plus the
// parameter payload matching that kind. Params is set for every kind except
// None and VoiceChannelHaunt; Haunt is set only for VoiceChannelHaunt.
type Action struct {
	Kind   ActionKind    `json:"kind"`
	Params *ActionParams `json:"params,omitempty"`
	Haunt  *HauntParams  `json:"haunt,omitempty"`
}

// NoAction is the placeholder action.
func NoAction() Action {
	return Action{Kind: ActionNone}
}

// Mute builds a text timeout action. duration 0 means no scheduled reversal.
func Mute(duration uint32) Action {
	return Action{Kind: ActionMute, Params: durationParams(duration)}
}

// Ban builds a server ban action. duration 0 means a ban with no scheduled
// unban.
func Ban(duration uint32) Action {
	return Action{Kind: ActionBan, Params: durationParams(duration)}
}

// Kick builds a server kick. delay is seconds before the kick executes.
func Kick(delay uint32) Action {
	return Action{Kind: ActionKick, Params: durationParams(delay)}
}

// VoiceMute builds a voice mute action.
func VoiceMute(duration uint32) Action {
	return Action{Kind: ActionVoiceMute, Params: durationParams(duration)}
}

// VoiceDeafen builds a voice deafen action.
func VoiceDeafen(duration uint32) Action {
	return Action{Kind: ActionVoiceDeafen, Params: durationParams(duration)}
}

// VoiceDisconnect builds a voice disconnect. delay is seconds before it runs.
func VoiceDisconnect(delay uint32) Action {
	return Action{Kind: ActionVoiceDisconnect, Params: durationParams(delay)}
}

// Haunt builds a voice channel haunt from explicit parameters.
func Haunt(params HauntParams) Action {
	return Action{Kind: ActionVoiceChannelHaunt, Haunt: &params}
}

func durationParams(duration uint32) *ActionParams {
	p := &ActionParams{}
	if duration > 0 {
		p.Duration = &duration
	}
	return p
}

// WithReason returns a copy of the action with the audit reason set.
func (a Action) WithReason(reason string) Action {
	if a.Params != nil {
		params := *a.Params
		params.Reason = reason
		a.Params = &params
	}
	return a
}

// Reason returns the audit reason, if any.
func (a Action) Reason() string {
	if a.Params != nil {
		return a.Params.Reason
	}
	return ""
}

// NeedsReversal reports whether the action applies an effect that must be
// undone after its duration elapses. Only timed mute, ban, voice mute and
// voice deafen qualify; kick, voice disconnect and haunt are one-shot.
func (a Action) NeedsReversal() bool {
	switch a.Kind {
	case ActionMute, ActionBan, ActionVoiceMute, ActionVoiceDeafen:
		return a.Params.HasDuration()
	default:
		return false
	}
}

// IsImmediate reports whether the action should execute right away instead
// of waiting for a scheduled delay. For haunt the interval drives the first
// relocation only, not the whole sequence.
func (a Action) IsImmediate() bool {
	switch a.Kind {
	case ActionKick, ActionVoiceDisconnect:
		return !a.Params.HasDuration()
	case ActionVoiceChannelHaunt:
		return a.Haunt == nil || a.Haunt.IntervalSeconds == nil || *a.Haunt.IntervalSeconds == 0
	default:
		// Nothing to delay; every other kind applies immediately.
		return true
	}
}

// Uint32 returns a pointer to v, for optional haunt fields.
func Uint32(v uint32) *uint32 { return &v }

// Bool returns a pointer to v, for optional haunt fields.
func Bool(v bool) *bool { return &v }
