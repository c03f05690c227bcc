package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Email     EmailConfig
	OTP       OTPConfig
	RateLimit RateLimitConfig
	Reminder  ReminderConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type EmailConfig struct {
	Provider       string // "smtp" or "sendgrid"
	Host           string
	Port           int
	User           string
	Password       string
	From           string
	FromName       string
	SendGridAPIKey string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

type RateLimitConfig struct {
	SendMax       int
	VerifyMax     int
	WindowMinutes int
}

type ReminderConfig struct {
	WindowDays int
	CronSecret string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 168)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("EMAIL_PROVIDER", "smtp")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("RATE_LIMIT_SEND_MAX", 3)
	viper.SetDefault("RATE_LIMIT_VERIFY_MAX", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 15)
	viper.SetDefault("REMINDER_WINDOW_DAYS", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Provider:       viper.GetString("EMAIL_PROVIDER"),
			Host:           viper.GetString("SMTP_HOST"),
			Port:           viper.GetInt("SMTP_PORT"),
			User:           viper.GetString("SMTP_USER"),
			Password:       viper.GetString("SMTP_PASS"),
			From:           viper.GetString("EMAIL_FROM"),
			FromName:       viper.GetString("EMAIL_FROM_NAME"),
			SendGridAPIKey: viper.GetString("SENDGRID_API_KEY"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		RateLimit: RateLimitConfig{
			SendMax:       viper.GetInt("RATE_LIMIT_SEND_MAX"),
			VerifyMax:     viper.GetInt("RATE_LIMIT_VERIFY_MAX"),
			WindowMinutes: viper.GetInt("RATE_LIMIT_WINDOW_MINUTES"),
		},
		Reminder: ReminderConfig{
			WindowDays: viper.GetInt("REMINDER_WINDOW_DAYS"),
			CronSecret: viper.GetString("CRON_SECRET"),
		},
	}

	return config, nil
}
