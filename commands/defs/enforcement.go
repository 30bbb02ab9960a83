package defs

import "github.com/bwmarrin/discordgo"

var EnforcementAdmin = &discordgo.ApplicationCommand{
	Name:        "enforcement_admin",
	Description: "Manage enforcement records",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "处罚管理",
		discordgo.ChineseTW: "處罰管理",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "管理处罚记录",
		discordgo.ChineseTW: "管理處罰記錄",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "action",
			Description: "要执行的操作",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "列出用户处罚", Value: "list"},
				{Name: "取消处罚", Value: "cancel"},
				{Name: "立即检查", Value: "check"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "目标用户 (list/check)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "enforcement_id",
			Description: "处罚记录ID (cancel)",
			Required:    false,
		},
	},
}
