package commands

import (
	"warden-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns the full set of application commands the bot
// registers per guild.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Warn,
		defs.Appease,
		defs.Judgments,
		defs.EnforcementAdmin,
		defs.Status,
	}
}
