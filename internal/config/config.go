package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// The data source name (DSN) for connecting to the database.
		DSN string `yaml:"dsn" env:"DATABASE_URI"`
		// Subconfigs.
		HTTPServer HTTPServer `yaml:"http_server"`
		JWT        JWT        `yaml:"jwt"`
		Logger     Logger     `yaml:"logger"`
		Redis      Redis      `yaml:"redis"`
		Telegram   Telegram   `yaml:"telegram"`
		Withdrawal Withdrawal `yaml:"withdrawal"`
		Documents  Documents  `yaml:"documents"`
	}
	// Config for HTTP server.
	HTTPServer struct {
		// The server startup address.
		Address string `yaml:"run_address" env:"RUN_ADDRESS" env-default:"127.0.0.1:8080"`
		// Read Header Timeout in seconds.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout in seconds.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout in seconds.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
	// Config for JWT verification. Tokens are issued by the identity
	// provider; this service only verifies them.
	JWT struct {
		// JWT signing key shared with the identity provider.
		SigningKey string `yaml:"signing_key" env:"JWT_SIGNING_KEY"`
	}
	// Config for the redis-backed idempotency cache.
	// Idempotent retries are disabled when no address is given.
	Redis struct {
		Addr           string        `yaml:"addr" env:"REDIS_ADDR"`
		IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env-default:"24h"`
	}
	// Config for the telegram notification channel.
	// Falls back to log-only notifications when no token is given.
	Telegram struct {
		Token     string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
		OpsChatID int64  `yaml:"ops_chat_id" env:"TELEGRAM_OPS_CHAT_ID"`
	}
	// Withdrawal policy.
	Withdrawal struct {
		// Minimum amount in minor currency units.
		MinAmount int64 `yaml:"min_amount" env:"MIN_WITHDRAWAL_AMOUNT" env-default:"10000"`
		// Display currency code used in notification texts.
		Currency string `yaml:"currency" env-default:"IDR"`
	}
	// Config for the document storage.
	Documents struct {
		// Directory where uploaded documents are kept.
		Root string `yaml:"root" env:"DOCUMENTS_ROOT" env-default:"./data/documents"`
		// Public path prefix of stored document references.
		BaseURL string `yaml:"base_url" env-default:"/documents"`
	}
)

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
func MustLoad() *Config {
	// Configuration yaml file path.
	configPath := flag.String("config", "./config/local.yml", "path to the config file")

	var cfg Config

	// Read given flags.
	flag.StringVar(&cfg.HTTPServer.Address, "a", "127.0.0.1:8080", "server startup address")
	flag.StringVar(&cfg.DSN, "d", "", "server data source name")
	flag.Parse()

	// Load from YAML cfg file if it exists.
	if _, err := os.Stat(*configPath); err == nil {
		file, err := os.Open(*configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %s", *configPath)
		}
		if err = cleanenv.ParseYAML(file, &cfg); err != nil {
			log.Fatalf("failed to parse config file: %s", *configPath)
		}
	}

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}
