package config

import (
	"fmt"
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Port                    string `env:"PORT" env-default:"8080"`
	Env                     string `env:"APP_ENV" env-default:"development"`
	LogLevel                string `env:"LOG_LEVEL" env-default:"info"`
	MetricsPort             string `env:"METRICS_PORT" env-default:"9090"`
	StoreDriver             string `env:"STORE_DRIVER" env-default:"mongo"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	JWTSecret               string `env:"JWT_SECRET" env-default:"supersecretjwtkey"`
	SentryDSN               string `env:"SENTRY_DSN"`
	PostgresConnStr         string `env:"POSTGRES_CONN_STR"`
	MongoURI                string `env:"MONGO_URI"`
	MongoDatabase           string `env:"MONGO_DATABASE" env-default:"socialmedia"`
	Notifications           struct {
		OnLike  bool `env:"NOTIFY_ON_LIKE" env-default:"false"`
		OnReply bool `env:"NOTIFY_ON_REPLY" env-default:"false"`
	}
}

// Load reads the optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory:
		return nil
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
		if c.PostgresConnStr == "" {
			return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
