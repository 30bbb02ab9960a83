package handlers

import (
	"log"
	"warden-bot/bot"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

// requireModerator checks the invoking member against the guild's moderator
// roles and the developer list. It replies with an ephemeral error and
// returns false when the user is not allowed.
func requireModerator(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	cfg := b.GetConfig()
	serverCfg, ok := cfg.ServerConfigs[i.GuildID]
	if !ok {
		log.Printf("Could not find server config for guild: %s", i.GuildID)
		utils.SendErrorResponse(s, i, "此服务器未配置。")
		return false
	}

	level := utils.CheckPermission(i.Member.Roles, i.Member.User.ID, serverCfg.ModeratorRoleIDs, cfg.DeveloperUserIDs)
	if level == utils.GuestPermission {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return false
	}
	return true
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"warn": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			HandleWarnCommand(s, i, b)
		},
		"appease": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			HandleAppeaseCommand(s, i, b)
		},
		"judgments": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			HandleJudgmentsCommand(s, i, b)
		},
		"enforcement_admin": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			HandleEnforcementAdminCommand(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatusCommand(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}
