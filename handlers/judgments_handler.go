package handlers

import (
	"fmt"
	"log"
	"strings"
	"warden-bot/bot"
	"warden-bot/enforcement"
	"warden-bot/model"
	"warden-bot/utils"
	warningdb "warden-bot/utils/database/warnings"

	"github.com/bwmarrin/discordgo"
)

const judgmentsPageSize = 10

// HandleJudgmentsCommand shows the most recent warnings and enforcement
// records for a user.
func HandleJudgmentsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetUser = opt.UserValue(s)
		}
	}
	if targetUser == nil {
		utils.SendErrorResponse(s, i, "未指定用户。")
		return
	}

	warnings, err := warningdb.GetWarningsByUser(b.WarningDB, targetUser.ID, i.GuildID)
	if err != nil {
		log.Printf("Error fetching warnings: %v", err)
		utils.SendErrorResponse(s, i, "Failed to fetch warning history.")
		return
	}

	records := b.Service.Store().GetForUser(targetUser.ID, i.GuildID)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("处罚记录: %s", targetUser.Username),
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "警告", Value: formatWarnings(warnings), Inline: false},
			{Name: "处罚", Value: formatEnforcements(records), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d warnings, %d enforcements", len(warnings), len(records)),
		},
	}

	utils.SendEmbedResponse(s, i, embed)
}

func formatWarnings(warnings []model.Warning) string {
	if len(warnings) == 0 {
		return "无记录"
	}

	var b strings.Builder
	for idx, w := range warnings {
		if idx >= judgmentsPageSize {
			fmt.Fprintf(&b, "... and %d more", len(warnings)-judgmentsPageSize)
			break
		}
		status := ""
		if w.Pardoned {
			status = " (已赦免)"
		}
		fmt.Fprintf(&b, "<t:%d:d> %s — by <@%s>%s\n", w.Timestamp, w.Reason, w.ModeratorID, status)
	}
	return b.String()
}

func formatEnforcements(records []*enforcement.Record) string {
	if len(records) == 0 {
		return "无记录"
	}

	var b strings.Builder
	for idx, r := range records {
		if idx >= judgmentsPageSize {
			fmt.Fprintf(&b, "... and %d more", len(records)-judgmentsPageSize)
			break
		}
		line := fmt.Sprintf("`%s` %s — %s", shortID(r.ID), r.Action.Kind, r.State)
		if r.State == enforcement.StateActive && r.ReverseAt != nil {
			line += fmt.Sprintf(", ends <t:%d:R>", r.ReverseAt.Unix())
		} else if r.State == enforcement.StatePending {
			line += fmt.Sprintf(", due <t:%d:R>", r.ExecuteAt.Unix())
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
