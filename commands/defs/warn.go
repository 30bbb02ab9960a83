package defs

import "github.com/bwmarrin/discordgo"

var minSeverity = float64(1)

var Warn = &discordgo.ApplicationCommand{
	Name:        "warn",
	Description: "Warn a user and apply the escalation ladder",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "警告",
		discordgo.ChineseTW: "警告",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "警告用户并按累犯等级执行处罚",
		discordgo.ChineseTW: "警告用戶並按累犯等級執行處罰",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "要警告的用户",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "警告原因",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "severity",
			Description: "警告点数 (默认 1)",
			Required:    false,
			MinValue:    &minSeverity,
			MaxValue:    5,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "覆盖处罚时长 (如 30m, 2h, 1d)",
			Required:    false,
		},
	},
}
