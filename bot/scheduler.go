package bot

import (
	"fmt"
	"log"
	"sync"
	"time"
	"warden-bot/enforcement"
	"warden-bot/model"
	"warden-bot/utils"
	enforcementdb "warden-bot/utils/database/enforcements"
	warningdb "warden-bot/utils/database/warnings"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
)

// BotProvider defines the methods the scheduler needs from the Bot.
type BotProvider interface {
	GetConfig() *model.Config
	GetSession() *discordgo.Session
	GetService() *enforcement.Service
	GetWarningDB() *sqlx.DB
}

// Scheduler runs the enforcement check loop, the periodic snapshot and the
// daily moderation report.
type Scheduler struct {
	bot  BotProvider
	db   *sqlx.DB // enforcement snapshot database
	cron *cron.Cron
	done chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a new scheduler.
func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{
		bot:  b,
		db:   b.EnforcementDB,
		done: make(chan struct{}),
	}
}

// Start begins all scheduled tasks.
func (s *Scheduler) Start() error {
	s.bot.GetService().Start()

	s.wg.Add(1)
	go s.startSnapshotLoop()

	schedule := s.bot.GetConfig().Enforcement.DailyReportSchedule
	if schedule != "" {
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(schedule, s.runDailyReport); err != nil {
			return fmt.Errorf("failed to schedule daily report (%q): %w", schedule, err)
		}
		s.cron.Start()
	}

	return nil
}

// Stop terminates all scheduled tasks gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	if s.cron != nil {
		s.cron.Stop()
	}
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) startSnapshotLoop() {
	defer s.wg.Done()

	interval := time.Duration(s.bot.GetConfig().Enforcement.SnapshotIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.saveSnapshot()
		case <-s.done:
			return
		}
	}
}

func (s *Scheduler) saveSnapshot() {
	records := s.bot.GetService().Store().GetAll()
	if err := enforcementdb.SaveSnapshot(s.db, records); err != nil {
		log.Printf("[Enforcement] Failed to save snapshot: %v", err)
		return
	}
	log.Printf("[Enforcement] Saved snapshot of %d records", len(records))
}

func (s *Scheduler) runDailyReport() {
	log.Println("Running daily enforcement report...")
	cfg := s.bot.GetConfig()
	if cfg.LogChannelID == "" {
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	counts := s.bot.GetService().Store().CountByState()

	var activity string
	stats, err := warningdb.GetWarningStats(s.bot.GetWarningDB(), reportGuildID(cfg), since)
	if err != nil {
		log.Printf("Failed to collect warning stats for daily report: %v", err)
		activity = "unavailable"
	} else {
		total := 0
		for _, c := range stats {
			total += c
		}
		activity = fmt.Sprintf("%d warnings issued by %d moderators", total, len(stats))
	}

	summary := fmt.Sprintf(
		"Last 24h: %s\nEnforcements: %d pending, %d active, %d completed, %d reversed, %d cancelled",
		activity,
		counts[enforcement.StatePending],
		counts[enforcement.StateActive],
		counts[enforcement.StateCompleted],
		counts[enforcement.StateReversed],
		counts[enforcement.StateCancelled],
	)

	utils.LogInfo(s.bot.GetSession(), cfg.LogChannelID, "Enforcement", "DailyReport", summary)
}

// reportGuildID picks the first enabled guild for the report query. Warning
// stats are stored per guild but the bot typically serves one.
func reportGuildID(cfg *model.Config) string {
	for _, serverCfg := range cfg.ServerConfigs {
		if serverCfg.Enable {
			return serverCfg.GuildID
		}
	}
	return ""
}
