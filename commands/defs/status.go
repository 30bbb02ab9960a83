package defs

import "github.com/bwmarrin/discordgo"

var Status = &discordgo.ApplicationCommand{
	Name:        "status",
	Description: "Show bot and enforcement daemon status",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "运行状态",
		discordgo.ChineseTW: "運行狀態",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "查看机器人和处罚调度器的运行状态",
		discordgo.ChineseTW: "查看機器人和處罰調度器的運行狀態",
	},
}
