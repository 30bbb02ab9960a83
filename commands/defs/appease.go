package defs

import "github.com/bwmarrin/discordgo"

var Appease = &discordgo.ApplicationCommand{
	Name:        "appease",
	Description: "Pardon a user's warnings and cancel their enforcements",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "赦免",
		discordgo.ChineseTW: "赦免",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "赦免用户的警告并取消其未完成的处罚",
		discordgo.ChineseTW: "赦免用戶的警告並取消其未完成的處罰",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "要赦免的用户",
			Required:    true,
		},
	},
}
