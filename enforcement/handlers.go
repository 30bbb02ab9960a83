package enforcement

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

type noopHandler struct{}

func (noopHandler) Execute(_ Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] No-op action executed for user %s in guild %s", userID, guildID)
	return nil
}

func (noopHandler) Reverse(_ Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] No-op action reversed for user %s in guild %s", userID, guildID)
	return nil
}

type muteHandler struct{}

func (muteHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionMute {
		return &ValidationError{Reason: "expected mute action"}
	}

	until := time.Now().Add(time.Duration(action.Params.DurationOrDefault()) * time.Second)
	log.Printf("[Enforcement] Muting user %s in guild %s until %s", userID, guildID, until.Format(time.RFC3339))

	if err := e.Timeout(guildID, userID, until, action.Reason()); err != nil {
		return &EffectorError{Op: "timeout", Err: err}
	}
	return nil
}

func (muteHandler) Reverse(e Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] Removing timeout from user %s in guild %s", userID, guildID)

	if err := e.RemoveTimeout(guildID, userID); err != nil {
		return &EffectorError{Op: "remove timeout", Err: err}
	}
	return nil
}

type banHandler struct{}

func (banHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionBan {
		return &ValidationError{Reason: "expected ban action"}
	}

	reason := action.Reason()
	if reason == "" {
		reason = fmt.Sprintf("Temporary ban from warning system for %d seconds", action.Params.DurationOrDefault())
	}
	log.Printf("[Enforcement] Banning user %s in guild %s: %s", userID, guildID, reason)

	if err := e.Ban(guildID, userID, reason); err != nil {
		return &EffectorError{Op: "ban", Err: err}
	}
	return nil
}

func (banHandler) Reverse(e Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] Unbanning user %s in guild %s", userID, guildID)

	if err := e.Unban(guildID, userID); err != nil {
		return &EffectorError{Op: "unban", Err: err}
	}
	return nil
}

type kickHandler struct{}

func (kickHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionKick {
		return &ValidationError{Reason: "expected kick action"}
	}

	reason := action.Reason()
	if reason == "" {
		reason = "Kicked by warning system"
	}
	log.Printf("[Enforcement] Kicking user %s from guild %s: %s", userID, guildID, reason)

	if err := e.Kick(guildID, userID, reason); err != nil {
		return &EffectorError{Op: "kick", Err: err}
	}
	return nil
}

func (kickHandler) Reverse(_ Effector, guildID, userID string, _ Action) error {
	// Kicks cannot be undone.
	log.Printf("[Enforcement] Kick needs no reversal for user %s in guild %s", userID, guildID)
	return nil
}

type voiceMuteHandler struct{}

func (voiceMuteHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionVoiceMute {
		return &ValidationError{Reason: "expected voice mute action"}
	}

	log.Printf("[Enforcement] Voice muting user %s in guild %s", userID, guildID)
	if err := e.SetVoiceMute(guildID, userID, true); err != nil {
		return &EffectorError{Op: "voice mute", Err: err}
	}
	return nil
}

func (voiceMuteHandler) Reverse(e Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] Removing voice mute from user %s in guild %s", userID, guildID)
	if err := e.SetVoiceMute(guildID, userID, false); err != nil {
		return &EffectorError{Op: "voice unmute", Err: err}
	}
	return nil
}

type voiceDeafenHandler struct{}

func (voiceDeafenHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionVoiceDeafen {
		return &ValidationError{Reason: "expected voice deafen action"}
	}

	log.Printf("[Enforcement] Voice deafening user %s in guild %s", userID, guildID)
	if err := e.SetVoiceDeafen(guildID, userID, true); err != nil {
		return &EffectorError{Op: "voice deafen", Err: err}
	}
	return nil
}

func (voiceDeafenHandler) Reverse(e Effector, guildID, userID string, _ Action) error {
	log.Printf("[Enforcement] Removing voice deafen from user %s in guild %s", userID, guildID)
	if err := e.SetVoiceDeafen(guildID, userID, false); err != nil {
		return &EffectorError{Op: "voice undeafen", Err: err}
	}
	return nil
}

type voiceDisconnectHandler struct{}

func (voiceDisconnectHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionVoiceDisconnect {
		return &ValidationError{Reason: "expected voice disconnect action"}
	}

	log.Printf("[Enforcement] Disconnecting user %s from voice in guild %s", userID, guildID)
	if err := e.DisconnectVoice(guildID, userID); err != nil {
		return &EffectorError{Op: "voice disconnect", Err: err}
	}
	return nil
}

func (voiceDisconnectHandler) Reverse(_ Effector, guildID, userID string, _ Action) error {
	// Disconnects cannot be undone.
	log.Printf("[Enforcement] Voice disconnect needs no reversal for user %s in guild %s", userID, guildID)
	return nil
}

// hauntHandler relocates the user through random voice channels a bounded
// number of times, waiting between steps, optionally returning them to where
// they started. Any relocation failure aborts the remaining steps without
// retry. A cancel arriving mid-sequence does not interrupt it.
type hauntHandler struct{}

func (hauntHandler) Execute(e Effector, guildID, userID string, action Action) error {
	if action.Kind != ActionVoiceChannelHaunt {
		return &ValidationError{Reason: "expected voice channel haunt action"}
	}
	params := action.Haunt
	if params == nil {
		params = &HauntParams{}
	}

	log.Printf("[Enforcement] Beginning voice channel haunt for user %s in guild %s", userID, guildID)

	currentChannel, err := e.UserVoiceChannel(guildID, userID)
	if err != nil {
		return err
	}

	channels, err := e.VoiceChannels(guildID)
	if err != nil {
		return &EffectorError{Op: "list voice channels", Err: err}
	}
	if len(channels) == 0 {
		return &NoVoiceChannelsError{GuildID: guildID}
	}

	originChannel := params.OriginChannelID
	if originChannel == "" {
		originChannel = currentChannel
	}

	teleportCount := params.TeleportCountOrDefault()
	interval := time.Duration(params.IntervalOrDefault()) * time.Second

	failed := false
	for i := uint32(0); i < teleportCount; i++ {
		// First hop must land somewhere else than where the user is.
		target := pickVoiceChannel(channels, i == 0, currentChannel)

		if err := e.MoveToVoiceChannel(guildID, userID, target); err != nil {
			log.Printf("[Enforcement] Haunt relocation failed for user %s: %v", userID, err)
			failed = true
			break
		}

		if i < teleportCount-1 {
			time.Sleep(interval)
		}
	}

	if params.ReturnToOriginOrDefault() && !failed {
		if err := e.MoveToVoiceChannel(guildID, userID, originChannel); err != nil {
			log.Printf("[Enforcement] Failed to return user %s to origin channel %s: %v", userID, originChannel, err)
		}
	}

	log.Printf("[Enforcement] Voice channel haunt finished for user %s", userID)
	return nil
}

func (hauntHandler) Reverse(_ Effector, guildID, userID string, _ Action) error {
	// The sequence is self-terminating; nothing to undo.
	log.Printf("[Enforcement] Haunt needs no reversal for user %s in guild %s", userID, guildID)
	return nil
}

func pickVoiceChannel(channels []string, mustDiffer bool, current string) string {
	if !mustDiffer || len(channels) <= 1 {
		return channels[rand.Intn(len(channels))]
	}
	for {
		channel := channels[rand.Intn(len(channels))]
		if channel != current {
			return channel
		}
	}
}
