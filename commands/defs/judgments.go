package defs

import "github.com/bwmarrin/discordgo"

var Judgments = &discordgo.ApplicationCommand{
	Name:        "judgments",
	Description: "Show a user's warning and enforcement history",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "处罚记录",
		discordgo.ChineseTW: "處罰記錄",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "查看用户的警告和处罚历史",
		discordgo.ChineseTW: "查看用戶的警告和處罰歷史",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "要查询的用户",
			Required:    true,
		},
	},
}
