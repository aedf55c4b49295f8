package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"AUTH_APP_NAME" envDefault:"galvan-auth"`
	AppEnv       string `env:"AUTH_APP_ENV" envDefault:"local"`
	HTTPHost     string `env:"AUTH_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"AUTH_HTTP_PORT" envDefault:"5000"`
	HTTPBasePath string `env:"AUTH_HTTP_BASE_PATH" envDefault:""`

	DBHost     string `env:"AUTH_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"AUTH_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"AUTH_DB_USER" envDefault:"app"`
	DBPassword string `env:"AUTH_DB_PASSWORD" envDefault:"app_password"`
	DBName     string `env:"AUTH_DB_NAME" envDefault:"galvan_auth"`
	DBSSLMode  string `env:"AUTH_DB_SSLMODE" envDefault:"disable"`

	JWTSecret   string        `env:"JWT_SECRET_KEY"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"galvan-auth"`
	JWTAudience string        `env:"JWT_AUDIENCE" envDefault:"frontend"`
	AccessTTL   time.Duration `env:"JWT_ACCESS_TTL" envDefault:"1h"`
	RefreshTTL  time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`

	SuperAdminEmail    string `env:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"GMAIL_EMAIL"`
	SMTPPassword string `env:"GMAIL_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	NATSURL               string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSVerifySubject     string `env:"NATS_SUBJECT_VERIFY_JWT" envDefault:"auth.verifyJWT"`
	NATSUserEventsSubject string `env:"NATS_SUBJECT_USER_EVENTS" envDefault:"auth.user-events"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
