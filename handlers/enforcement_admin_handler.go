package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"warden-bot/bot"
	"warden-bot/enforcement"
	"warden-bot/utils"
	enforcementdb "warden-bot/utils/database/enforcements"

	"github.com/bwmarrin/discordgo"
)

// HandleEnforcementAdminCommand lets moderators inspect, cancel and re-check
// enforcement records.
func HandleEnforcementAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	var action, enforcementID string
	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "action":
			action = opt.StringValue()
		case "user":
			targetUser = opt.UserValue(s)
		case "enforcement_id":
			enforcementID = opt.StringValue()
		}
	}

	switch action {
	case "list":
		if targetUser == nil {
			utils.SendErrorResponse(s, i, "list 操作需要指定用户。")
			return
		}
		records := b.Service.Store().GetForUser(targetUser.ID, i.GuildID)
		embed := &discordgo.MessageEmbed{
			Title:  fmt.Sprintf("处罚记录: %s", targetUser.Username),
			Color:  0x5865F2,
			Fields: []*discordgo.MessageEmbedField{{Name: "处罚", Value: formatEnforcements(records)}},
		}
		utils.SendEmbedResponse(s, i, embed)

	case "cancel":
		if enforcementID == "" {
			utils.SendErrorResponse(s, i, "cancel 操作需要指定处罚记录ID。")
			return
		}
		record, ok := resolveRecord(b.Service.Store(), enforcementID)
		if !ok {
			utils.SendErrorResponse(s, i, fmt.Sprintf("No enforcement found matching `%s`.", enforcementID))
			return
		}
		if err := b.Service.CancelEnforcement(record.ID); err != nil {
			if errors.Is(err, enforcement.ErrInvalidStateTransition) {
				utils.SendErrorResponse(s, i, "This enforcement is already finished.")
				return
			}
			log.Printf("Error cancelling enforcement %s: %v", record.ID, err)
			utils.SendErrorResponse(s, i, "Failed to cancel the enforcement.")
			return
		}
		if updated, ok := b.Service.Store().Get(record.ID); ok {
			if err := enforcementdb.UpsertRecord(b.EnforcementDB, updated); err != nil {
				log.Printf("Error persisting cancelled enforcement %s: %v", record.ID, err)
			}
		}
		utils.SendPublicResponse(s, i, fmt.Sprintf("Cancelled enforcement `%s` (%s) for <@%s>.",
			shortID(record.ID), record.Action.Kind, record.UserID))
		utils.LogInfo(s, b.GetConfig().LogChannelID, "Enforcement", "取消处罚",
			fmt.Sprintf("Moderator <@%s> cancelled %s for <@%s>", i.Member.User.ID, record.Action.Kind, record.UserID))

	case "check":
		var err error
		if targetUser != nil {
			err = b.Service.NotifyAboutUser(targetUser.ID, i.GuildID)
		} else {
			err = b.Service.NotifyCheckAll()
		}
		if err != nil {
			log.Printf("Error notifying enforcement daemon: %v", err)
			utils.SendErrorResponse(s, i, "The enforcement daemon is not running.")
			return
		}
		utils.SendErrorResponse(s, i, "Check queued.")

	default:
		utils.SendErrorResponse(s, i, "未知操作。")
	}
}

// resolveRecord finds a record by full ID, falling back to unique prefix
// match so moderators can paste the short ID shown in embeds.
func resolveRecord(store *enforcement.Store, id string) (*enforcement.Record, bool) {
	if record, ok := store.Get(id); ok {
		return record, true
	}

	var matched *enforcement.Record
	for _, record := range store.GetAll() {
		if strings.HasPrefix(record.ID, id) {
			if matched != nil {
				return nil, false // ambiguous prefix
			}
			matched = record
		}
	}
	return matched, matched != nil
}
