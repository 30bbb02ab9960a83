package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"warden-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and
// config/enforcement.yaml.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := os.Getenv("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, logging will be disabled")
	}

	enforcementDBPath := os.Getenv("ENFORCEMENT_DB_PATH")
	if enforcementDBPath == "" {
		enforcementDBPath = "data/enforcements.db"
	}

	warningDBPath := os.Getenv("WARNING_DB_PATH")
	if warningDBPath == "" {
		warningDBPath = "data/warnings.db"
	}

	cfg := &model.Config{
		BotToken:          token,
		AppID:             appID,
		LogChannelID:      logChannelID,
		DeveloperUserIDs:  strings.Split(os.Getenv("DEVELOPER_USER_IDS"), ","),
		EnforcementDBPath: enforcementDBPath,
		WarningDBPath:     warningDBPath,
		ServerConfigs:     make(map[string]model.ServerConfig),
	}

	// Load per-guild config
	if err := loadJSON("data/server_config.json", &cfg.ServerConfigs); err != nil {
		return nil, err
	}

	enforcement, err := loadEnforcementConfig()
	if err != nil {
		return nil, err
	}
	cfg.Enforcement = enforcement

	return cfg, nil
}

// loadEnforcementConfig reads config/enforcement.yaml via viper, falling back
// to built-in defaults when the file is missing.
func loadEnforcementConfig() (model.EnforcementConfig, error) {
	v := viper.New()
	v.SetConfigName("enforcement")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("check_interval_seconds", 60)
	v.SetDefault("snapshot_interval_seconds", 300)
	v.SetDefault("daily_report_schedule", "0 0 * * *")
	v.SetDefault("warning_window_days", 30)
	v.SetDefault("haunt.teleport_count", 3)
	v.SetDefault("haunt.interval_seconds", 10)
	v.SetDefault("haunt.return_to_origin", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: enforcement.yaml not found, using default enforcement settings")
		} else {
			return model.EnforcementConfig{}, err
		}
	}

	var cfg model.EnforcementConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.EnforcementConfig{}, err
	}
	return cfg, nil
}

func loadJSON(path string, v interface{}) error {
	configFile, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: Config file not found at %s, skipping.", path)
			return nil
		}
		return err
	}
	return json.Unmarshal(configFile, v)
}
