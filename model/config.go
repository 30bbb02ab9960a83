package model

// ServerConfig 定义了每个服务器的配置
type ServerConfig struct {
	Name             string   `json:"name"`
	GuildID          string   `json:"guilds_id"`
	Enable           bool     `json:"enable"`
	ModeratorRoleIDs []string `json:"moderator_role_ids"`
}

// Config 存储应用程序的配置
type Config struct {
	BotToken         string
	AppID            string
	LogChannelID     string
	DeveloperUserIDs []string

	EnforcementDBPath string
	WarningDBPath     string

	ServerConfigs map[string]ServerConfig

	Enforcement EnforcementConfig
}

// EnforcementConfig holds the scheduling and escalation settings read from
// config/enforcement.yaml.
type EnforcementConfig struct {
	CheckIntervalSeconds    int    `mapstructure:"check_interval_seconds"`
	SnapshotIntervalSeconds int    `mapstructure:"snapshot_interval_seconds"`
	DailyReportSchedule     string `mapstructure:"daily_report_schedule"`

	// WarningWindowDays is how far back warnings count toward escalation.
	WarningWindowDays int `mapstructure:"warning_window_days"`

	Haunt      HauntConfig      `mapstructure:"haunt"`
	Escalation []EscalationStep `mapstructure:"escalation"`
}

// HauntConfig sets the default parameters used when an escalation step
// triggers a voice channel haunt.
type HauntConfig struct {
	TeleportCount   uint32 `mapstructure:"teleport_count"`
	IntervalSeconds uint32 `mapstructure:"interval_seconds"`
	ReturnToOrigin  bool   `mapstructure:"return_to_origin"`
}

// EscalationStep maps an accumulated warning count to the action it triggers.
// Steps are matched by the highest WarningCount not exceeding the user's
// current count inside the warning window.
type EscalationStep struct {
	WarningCount    int    `mapstructure:"warning_count"`
	Action          string `mapstructure:"action"`
	DurationSeconds uint32 `mapstructure:"duration_seconds"`
}
