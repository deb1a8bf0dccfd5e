package conf

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config represents application configuration
type Config struct {
	// Allegro OAuth application
	Allegro AllegroConfig

	// Discord webhook sinks
	Discord DiscordConfig

	// Insights (optional)
	Insights InsightsConfig

	// Polling loops
	Monitor   MonitorConfig
	Responder ResponderConfig

	// Control/status HTTP server
	Server ServerConfig

	// Message templates (loaded from YAML)
	Templates *TemplatesConfig

	// Debug mode
	Debug bool
}

// AllegroConfig contains the OAuth application settings
type AllegroConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// DiscordConfig contains one webhook URL per notification class
type DiscordConfig struct {
	OrdersWebhookURL   string
	MessagesWebhookURL string
}

// InsightsConfig contains the research API settings
type InsightsConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// MonitorConfig contains the order monitor loop settings
type MonitorConfig struct {
	PollInterval   time.Duration
	FreshnessWin   time.Duration
	FetchLimit     int
	LedgerCapacity int
}

// ResponderConfig contains the auto-responder loop settings
type ResponderConfig struct {
	PollInterval time.Duration
	FreshnessWin time.Duration
	FetchLimit   int
}

// ServerConfig contains the HTTP API settings
type ServerConfig struct {
	Port int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	templates, err := LoadTemplatesConfig(os.Getenv("TEMPLATES_CONFIG_PATH"))
	if err != nil {
		log.Warn().Err(err).Msg("templates config unusable, falling back to defaults")
		templates = DefaultTemplatesConfig()
	}

	return &Config{
		Allegro: AllegroConfig{
			ClientID:     os.Getenv("ALLEGRO_CLIENT_ID"),
			ClientSecret: os.Getenv("ALLEGRO_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("ALLEGRO_REDIRECT_URI"),
		},
		Discord: DiscordConfig{
			OrdersWebhookURL:   os.Getenv("DISCORD_ORDERS_WEBHOOK_URL"),
			MessagesWebhookURL: os.Getenv("DISCORD_MESSAGES_WEBHOOK_URL"),
		},
		Insights: InsightsConfig{
			APIKey:  os.Getenv("INSIGHTS_API_KEY"),
			BaseURL: os.Getenv("INSIGHTS_BASE_URL"),
			Model:   os.Getenv("INSIGHTS_MODEL"),
		},
		Monitor: MonitorConfig{
			PollInterval:   envDuration("ORDER_POLL_SECONDS", 60) * time.Second,
			FreshnessWin:   envDuration("ORDER_FRESH_MINUTES", 30) * time.Minute,
			FetchLimit:     envInt("ORDER_FETCH_LIMIT", 20),
			LedgerCapacity: envInt("LEDGER_CAPACITY", 100),
		},
		Responder: ResponderConfig{
			PollInterval: envDuration("MESSAGE_POLL_SECONDS", 60) * time.Second,
			FreshnessWin: envDuration("MESSAGE_FRESH_MINUTES", 15) * time.Minute,
			FetchLimit:   envInt("THREAD_FETCH_LIMIT", 20),
		},
		Server: ServerConfig{
			Port: envInt("PORT", 8080),
		},
		Templates: templates,
		Debug:     os.Getenv("DEBUG") == "true",
	}
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Allegro.ClientID == "" || c.Allegro.ClientSecret == "" {
		return &ConfigError{Field: "ALLEGRO_CLIENT_ID/ALLEGRO_CLIENT_SECRET", Message: "required"}
	}
	if c.Discord.OrdersWebhookURL == "" {
		return &ConfigError{Field: "DISCORD_ORDERS_WEBHOOK_URL", Message: "required"}
	}
	if c.Discord.MessagesWebhookURL == "" {
		return &ConfigError{Field: "DISCORD_MESSAGES_WEBHOOK_URL", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
