package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	APIKeyHash        string `mapstructure:"API_KEY_HASH"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisPromptCacheDB   int    `mapstructure:"REDIS_PROMPT_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Scheduling backend (Calendly-style API).
	CalendlyToken   string `mapstructure:"CALENDLY_TOKEN"`
	CalendlyBaseURL string `mapstructure:"CALENDLY_BASE_URL"`

	// Telephony / SMS.
	TwilioSID          string `mapstructure:"TWILIO_SID"`
	TwilioAuthToken    string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber   string `mapstructure:"TWILIO_FROM_NUMBER"`
	HumanSupportNumber string `mapstructure:"HUMAN_SUPPORT_NUMBER"`

	// Text-to-speech.
	ElevenLabsAPIKey  string `mapstructure:"ELEVENLABS_API_KEY"`
	ElevenLabsBaseURL string `mapstructure:"ELEVENLABS_BASE_URL"`
	ElevenLabsVoiceID string `mapstructure:"ELEVENLABS_VOICE_ID"`
	ElevenLabsModel   string `mapstructure:"ELEVENLABS_MODEL"`

	// Google APIs.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// On-call staff device token for escalation pushes.
	StaffFCMToken string `mapstructure:"STAFF_FCM_TOKEN"`

	// Reminder lead time in minutes before the appointment.
	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_PROMPT_CACHE_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "voicedesk")
	viper.SetDefault("CALENDLY_BASE_URL", "https://api.calendly.com")
	viper.SetDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io")
	viper.SetDefault("ELEVENLABS_VOICE_ID", "3UFZ7Pkyx3hNTropzBlS")
	viper.SetDefault("ELEVENLABS_MODEL", "eleven_multilingual_v2")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// IsProduction reports whether the server runs with a production profile.
func IsProduction() bool {
	return AppConfig.Env == "production"
}
