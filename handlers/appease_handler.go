package handlers

import (
	"fmt"
	"log"
	"warden-bot/bot"
	"warden-bot/utils"
	enforcementdb "warden-bot/utils/database/enforcements"
	warningdb "warden-bot/utils/database/warnings"

	"github.com/bwmarrin/discordgo"
)

// HandleAppeaseCommand pardons a user's outstanding warnings and cancels all
// of their pending and active enforcements.
func HandleAppeaseCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetUser = opt.UserValue(s)
		}
	}
	if targetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "未指定用户。")
		return
	}

	pardoned, err := warningdb.PardonWarnings(b.WarningDB, targetUser.ID, i.GuildID)
	if err != nil {
		log.Printf("Error pardoning warnings: %v", err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to pardon warnings.")
		return
	}

	cancelled, err := b.Service.CancelAllForUser(targetUser.ID, i.GuildID)
	if err != nil {
		log.Printf("Error cancelling enforcements: %v", err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to cancel enforcements.")
		return
	}
	for _, record := range cancelled {
		if err := enforcementdb.UpsertRecord(b.EnforcementDB, record); err != nil {
			log.Printf("Error persisting cancelled enforcement %s: %v", record.ID, err)
		}
	}

	summary := fmt.Sprintf("Pardoned %d warnings and cancelled %d enforcements for <@%s>.",
		pardoned, len(cancelled), targetUser.ID)
	utils.SendFollowUp(s, i.Interaction, summary)
	utils.LogInfo(s, b.GetConfig().LogChannelID, "Appease", "赦免",
		fmt.Sprintf("Moderator <@%s>: %s", i.Member.User.ID, summary))
}
