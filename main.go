package main

import (
	"log"
	"os"
	"warden-bot/bot"
	"warden-bot/config"
	"warden-bot/handlers"
	enforcementdb "warden-bot/utils/database/enforcements"
	warningdb "warden-bot/utils/database/warnings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	warningDB, err := warningdb.Init(cfg.WarningDBPath)
	if err != nil {
		log.Fatalf("Error initializing warning database: %v", err)
	}
	defer warningDB.Close()

	enforcementDB, err := enforcementdb.Init(cfg.EnforcementDBPath)
	if err != nil {
		log.Fatalf("Error initializing enforcement database: %v", err)
	}
	defer enforcementDB.Close()

	b, err := bot.New(cfg, warningDB, enforcementDB)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	if err := b.RestoreEnforcements(); err != nil {
		log.Fatalf("Error restoring enforcement records: %v", err)
	}

	handlers.Register(b)

	b.Run()

	b.Close()
}
