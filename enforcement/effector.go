package enforcement

import "time"

// Effector is the boundary to the moderation platform. Handlers select which
// calls to make; everything platform specific (Discord API details, rate
// limits, permission failures) lives behind this interface. The production
// implementation wraps a discordgo session; tests use a recording fake.
type Effector interface {
	// Timeout disables a user's messaging until the given time.
	Timeout(guildID, userID string, until time.Time, reason string) error
	// RemoveTimeout clears an applied timeout early.
	RemoveTimeout(guildID, userID string) error

	// Ban bans the user from the guild.
	Ban(guildID, userID, reason string) error
	// Unban lifts a ban.
	Unban(guildID, userID string) error

	// Kick removes the user from the guild.
	Kick(guildID, userID, reason string) error

	// SetVoiceMute sets or clears the user's server voice mute flag.
	SetVoiceMute(guildID, userID string, mute bool) error
	// SetVoiceDeafen sets or clears the user's server deafen flag.
	SetVoiceDeafen(guildID, userID string, deafen bool) error

	// DisconnectVoice drops the user from their current voice channel.
	DisconnectVoice(guildID, userID string) error
	// MoveToVoiceChannel relocates the user to the given voice channel.
	MoveToVoiceChannel(guildID, userID, channelID string) error

	// VoiceChannels lists the guild's voice channel ids.
	VoiceChannels(guildID string) ([]string, error)
	// UserVoiceChannel returns the voice channel the user is currently in,
	// or ErrNotInVoiceChannel.
	UserVoiceChannel(guildID, userID string) (string, error)
}
