package handlers

import (
	"fmt"
	"log"
	"time"
	"warden-bot/bot"
	"warden-bot/enforcement"
	"warden-bot/model"
	"warden-bot/utils"
	enforcementdb "warden-bot/utils/database/enforcements"
	warningdb "warden-bot/utils/database/warnings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// HandleWarnCommand records a warning, tallies the user's recent warning
// points and arms the enforcement the escalation ladder prescribes.
func HandleWarnCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	options := i.ApplicationCommandData().Options
	var targetUser *discordgo.User
	reason := ""
	severity := 1
	durationOverride := ""
	for _, opt := range options {
		switch opt.Name {
		case "user":
			targetUser = opt.UserValue(s)
		case "reason":
			reason = opt.StringValue()
		case "severity":
			severity = int(opt.IntValue())
		case "duration":
			durationOverride = opt.StringValue()
		}
	}
	if targetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "未指定用户。")
		return
	}

	if !utils.CheckAndSetWarnLock(targetUser.ID) {
		utils.SendFollowUpError(s, i.Interaction, "This user was just warned, please wait a moment.")
		return
	}

	cfg := b.GetConfig()
	warning := model.Warning{
		WarningID:   uuid.NewString(),
		UserID:      targetUser.ID,
		GuildID:     i.GuildID,
		ModeratorID: i.Member.User.ID,
		Reason:      reason,
		Severity:    severity,
		Timestamp:   time.Now().Unix(),
	}
	if err := warningdb.AddWarning(b.WarningDB, warning); err != nil {
		log.Printf("Error saving warning record: %v", err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to save the warning record.")
		return
	}

	windowStart := time.Now().AddDate(0, 0, -cfg.Enforcement.WarningWindowDays)
	count, err := warningdb.CountActiveWarnings(b.WarningDB, targetUser.ID, i.GuildID, windowStart)
	if err != nil {
		log.Printf("Error counting warnings: %v", err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to count warnings.")
		return
	}

	summary := fmt.Sprintf("warned <@%s>: %s (%d points in window)", targetUser.ID, reason, count)

	step := matchEscalationStep(cfg.Enforcement.Escalation, count)
	if step != nil {
		if durationOverride != "" {
			d, err := utils.ParseDuration(durationOverride)
			if err != nil {
				utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Invalid duration %q.", durationOverride))
				return
			}
			override := *step
			override.DurationSeconds = uint32(d / time.Second)
			step = &override
		}
		action := buildEscalationAction(*step, cfg.Enforcement.Haunt).WithReason(reason)
		if action.Kind == enforcement.ActionNone {
			utils.SendFollowUp(s, i.Interaction, summary)
			return
		}
		record := b.Service.CreateEnforcement(warning.WarningID, targetUser.ID, i.GuildID, action)
		if err := enforcementdb.UpsertRecord(b.EnforcementDB, record); err != nil {
			log.Printf("Error persisting enforcement record %s: %v", record.ID, err)
		}
		if err := b.Service.NotifyAboutEnforcement(record.ID); err != nil {
			log.Printf("Error notifying enforcement daemon: %v", err)
		}
		summary += fmt.Sprintf("\nEscalation: **%s**", describeAction(record.Action))
	}

	utils.SendFollowUp(s, i.Interaction, summary)
	utils.LogWarn(s, cfg.LogChannelID, "Warn", "警告",
		fmt.Sprintf("Moderator <@%s> %s", i.Member.User.ID, summary))
}

// matchEscalationStep picks the step with the highest warning count that the
// user's tally has reached.
func matchEscalationStep(steps []model.EscalationStep, count int) *model.EscalationStep {
	var matched *model.EscalationStep
	for idx := range steps {
		step := steps[idx]
		if count >= step.WarningCount && (matched == nil || step.WarningCount > matched.WarningCount) {
			matched = &steps[idx]
		}
	}
	return matched
}

func buildEscalationAction(step model.EscalationStep, haunt model.HauntConfig) enforcement.Action {
	kind, err := enforcement.ParseActionKind(step.Action)
	if err != nil {
		log.Printf("Unknown escalation action %q, skipping: %v", step.Action, err)
		return enforcement.NoAction()
	}

	switch kind {
	case enforcement.ActionMute:
		return enforcement.Mute(step.DurationSeconds)
	case enforcement.ActionBan:
		return enforcement.Ban(step.DurationSeconds)
	case enforcement.ActionKick:
		return enforcement.Kick(step.DurationSeconds)
	case enforcement.ActionVoiceMute:
		return enforcement.VoiceMute(step.DurationSeconds)
	case enforcement.ActionVoiceDeafen:
		return enforcement.VoiceDeafen(step.DurationSeconds)
	case enforcement.ActionVoiceDisconnect:
		return enforcement.VoiceDisconnect(step.DurationSeconds)
	case enforcement.ActionVoiceChannelHaunt:
		return enforcement.Haunt(enforcement.HauntParams{
			TeleportCount:   enforcement.Uint32(haunt.TeleportCount),
			IntervalSeconds: enforcement.Uint32(haunt.IntervalSeconds),
			ReturnToOrigin:  enforcement.Bool(haunt.ReturnToOrigin),
		})
	default:
		return enforcement.NoAction()
	}
}

func describeAction(action enforcement.Action) string {
	if action.Params != nil && action.Params.HasDuration() {
		return fmt.Sprintf("%s (%s)", action.Kind, utils.FormatSeconds(action.Params.DurationOrDefault()))
	}
	return action.Kind.String()
}
