package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Line     LineConfig
	Kafka    KafkaConfig
	Metrics  MetricsConfig
	Log      LogConfig
	Company  CompanyConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	URL          string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type TelegramConfig struct {
	BotToken    string
	ChatID      int64
	APIEndpoint string
}

type LineConfig struct {
	ChannelToken string
	To           string
	APIBaseURL   string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type MetricsConfig struct {
	Enabled bool
	Port    int
}

type LogConfig struct {
	Level string
}

// CompanyConfig comes from the [company] table of config/config.toml.
type CompanyConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
}

func LoadConfig() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, checking environment variables")
	}

	v.AutomaticEnv()

	v.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	v.BindEnv("DATABASE_URL")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("LINE_API_BASE_URL", "https://api.line.me")
	v.SetDefault("KAFKA_TOPIC", "booking-events")
	v.SetDefault("METRICS_PORT", 9090)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			URL:          v.GetString("DATABASE_URL"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Telegram: TelegramConfig{
			BotToken:    v.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:      v.GetInt64("TELEGRAM_CHAT_ID"),
			APIEndpoint: v.GetString("TELEGRAM_API_ENDPOINT"),
		},
		Line: LineConfig{
			ChannelToken: v.GetString("LINE_CHANNEL_TOKEN"),
			To:           v.GetString("LINE_TO"),
			APIBaseURL:   v.GetString("LINE_API_BASE_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Port:    v.GetInt("METRICS_PORT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Company: CompanyConfig{
			Timezone: "UTC",
		},
	}

	companyViper := viper.New()
	companyViper.SetConfigFile("config/config.toml")
	companyViper.SetConfigType("toml")
	if err := companyViper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("config/config.toml not found, using default company info")
	} else if err := companyViper.UnmarshalKey("company", &cfg.Company); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal company info from TOML")
	}
	if cfg.Company.Timezone == "" {
		cfg.Company.Timezone = "UTC"
	}

	log.Info().
		Str("port", cfg.Server.Port).
		Str("env", cfg.Server.Env).
		Str("db_driver", cfg.Database.Driver).
		Str("db_host", cfg.Database.Host).
		Str("db_name", cfg.Database.Name).
		Str("database_url", setOrNot(cfg.Database.URL)).
		Str("telegram_token", setOrNot(cfg.Telegram.BotToken)).
		Str("line_token", setOrNot(cfg.Line.ChannelToken)).
		Strs("kafka_brokers", cfg.Kafka.Brokers).
		Str("company", cfg.Company.Name).
		Str("timezone", cfg.Company.Timezone).
		Msg("configuration loaded")

	return cfg
}

func setOrNot(s string) string {
	if s != "" {
		return "SET"
	}
	return "NOT SET"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
