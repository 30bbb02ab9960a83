package bot

import (
	"fmt"
	"time"
	"warden-bot/enforcement"

	"github.com/bwmarrin/discordgo"
)

// SessionEffector applies enforcement actions through a discordgo session.
// Voice lookups rely on the session state cache, so the bot must run with
// state enabled and the Guilds/GuildMembers/GuildVoiceStates intents.
type SessionEffector struct {
	session *discordgo.Session
}

func NewSessionEffector(session *discordgo.Session) *SessionEffector {
	return &SessionEffector{session: session}
}

func (e *SessionEffector) Timeout(guildID, userID string, until time.Time, reason string) error {
	if err := e.session.GuildMemberTimeout(guildID, userID, &until); err != nil {
		return fmt.Errorf("failed to timeout user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) RemoveTimeout(guildID, userID string) error {
	if err := e.session.GuildMemberTimeout(guildID, userID, nil); err != nil {
		return fmt.Errorf("failed to remove timeout for user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) Ban(guildID, userID, reason string) error {
	// Bans also purge the last 7 days of the user's messages.
	if err := e.session.GuildBanCreateWithReason(guildID, userID, reason, 7); err != nil {
		return fmt.Errorf("failed to ban user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) Unban(guildID, userID string) error {
	if err := e.session.GuildBanDelete(guildID, userID); err != nil {
		return fmt.Errorf("failed to unban user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) Kick(guildID, userID, reason string) error {
	if err := e.session.GuildMemberDeleteWithReason(guildID, userID, reason); err != nil {
		return fmt.Errorf("failed to kick user %s from guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) SetVoiceMute(guildID, userID string, mute bool) error {
	if err := e.session.GuildMemberMute(guildID, userID, mute); err != nil {
		return fmt.Errorf("failed to set voice mute=%v for user %s in guild %s: %w", mute, userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) SetVoiceDeafen(guildID, userID string, deafen bool) error {
	if err := e.session.GuildMemberDeafen(guildID, userID, deafen); err != nil {
		return fmt.Errorf("failed to set voice deafen=%v for user %s in guild %s: %w", deafen, userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) DisconnectVoice(guildID, userID string) error {
	if err := e.session.GuildMemberMove(guildID, userID, nil); err != nil {
		return fmt.Errorf("failed to disconnect user %s from voice in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) MoveToVoiceChannel(guildID, userID, channelID string) error {
	if err := e.session.GuildMemberMove(guildID, userID, &channelID); err != nil {
		return fmt.Errorf("failed to move user %s to channel %s in guild %s: %w", userID, channelID, guildID, err)
	}
	return nil
}

func (e *SessionEffector) VoiceChannels(guildID string) ([]string, error) {
	channels, err := e.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels for guild %s: %w", guildID, err)
	}

	var voiceChannels []string
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildVoice {
			voiceChannels = append(voiceChannels, ch.ID)
		}
	}
	return voiceChannels, nil
}

func (e *SessionEffector) UserVoiceChannel(guildID, userID string) (string, error) {
	vs, err := e.session.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return "", enforcement.ErrNotInVoiceChannel
	}
	return vs.ChannelID, nil
}
