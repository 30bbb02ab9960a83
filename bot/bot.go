package bot

import (
	"log"
	"sync/atomic"
	"time"
	"warden-bot/commands"
	"warden-bot/config"
	"warden-bot/enforcement"
	"warden-bot/model"
	enforcementdb "warden-bot/utils/database/enforcements"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	Service            *enforcement.Service
	WarningDB          *sqlx.DB
	EnforcementDB      *sqlx.DB
	StartedAt          time.Time
	scheduler          *Scheduler
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetService() *enforcement.Service {
	return b.Service
}

func (b *Bot) GetWarningDB() *sqlx.DB {
	return b.WarningDB
}

func New(cfg *model.Config, warningDB, enforcementDB *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	// Voice state tracking needs the state cache and the voice intents.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildVoiceStates
	dg.StateEnabled = true

	checkInterval := time.Duration(cfg.Enforcement.CheckIntervalSeconds) * time.Second
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}

	b := &Bot{
		Session:       dg,
		Service:       enforcement.NewService(NewSessionEffector(dg), checkInterval),
		WarningDB:     warningDB,
		EnforcementDB: enforcementDB,
		StartedAt:     time.Now(),
	}
	b.config.Store(cfg)
	b.scheduler = NewScheduler(b)
	return b, nil
}

// RestoreEnforcements loads the persisted snapshot into the in-memory store.
func (b *Bot) RestoreEnforcements() error {
	records, err := enforcementdb.LoadAll(b.EnforcementDB)
	if err != nil {
		return err
	}
	b.Service.Store().Restore(records)
	log.Printf("[Enforcement] Restored %d enforcement records from snapshot", len(records))
	return nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")

	b.scheduler.Stop()

	if err := b.Service.Shutdown(); err != nil {
		log.Printf("Error shutting down enforcement service: %v", err)
	}

	// Final snapshot so nothing is lost between the last tick and shutdown.
	if err := enforcementdb.SaveSnapshot(b.EnforcementDB, b.Service.Store().GetAll()); err != nil {
		log.Printf("Error saving final enforcement snapshot: %v", err)
	}

	b.Session.Close()
}

func (b *Bot) RefreshCommands(guildID string) {
	serverCfg, ok := b.GetConfig().ServerConfigs[guildID]
	if !ok {
		log.Printf("Could not find server config for guild: %s", guildID)
		return
	}
	log.Printf("Updating commands for guild %s", serverCfg.GuildID)

	cmds := commands.GenerateCommands()
	log.Printf("Registering %d commands for guild %s...", len(cmds), serverCfg.GuildID)
	registeredCmds, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, serverCfg.GuildID, cmds)
	if err != nil {
		log.Printf("cannot update commands for guild '%s': %v", serverCfg.GuildID, err)
		return
	}
	b.RegisteredCommands = append(b.RegisteredCommands, registeredCmds...)
}

func (b *Bot) ReloadConfig() error {
	log.Println("Reloading configuration...")
	newCfg, err := config.Load()
	if err != nil {
		log.Printf("Error reloading config: %v", err)
		return err
	}

	b.config.Store(newCfg)
	log.Println("Configuration reloaded successfully.")

	for _, serverCfg := range newCfg.ServerConfigs {
		go b.RefreshCommands(serverCfg.GuildID)
	}

	return nil
}
