package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/localxp/localxp_backend/security"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process configuration read from the environment
type Config struct {
	Env         string
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	UploadDir   string
	CORSOrigins []string

	// TrustedProxies are CIDR ranges allowed to set X-Forwarded-For
	TrustedProxies []string

	AdminUsername string
	AdminPassword string

	Redis   RedisConfig
	SMTP    SMTPConfig
	Payment PaymentConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMTPConfig holds the outgoing mail settings. Mail is disabled when Host is empty.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	From        string
	AdminNotify string
}

// PaymentConfig holds payment-gateway credentials
type PaymentConfig struct {
	MerchantID string
	Secret     string
}

func (p PaymentConfig) Configured() bool {
	return p.MerchantID != "" && p.Secret != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration through getenv
func LoadFrom(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	env := strings.ToLower(get("ENV", get("NODE_ENV", EnvDevelopment)))
	if env == "prod" {
		env = EnvProduction
	}
	if env != EnvProduction {
		env = EnvDevelopment
	}

	cfg := &Config{
		Env:            env,
		Port:           get("PORT", "5000"),
		MongoURI:       get("MONGO_URI", get("MONGODB_URI", "")),
		DBName:         get("DB_NAME", "localxp"),
		JWTSecret:      get("JWT_SECRET", ""),
		CORSOrigins:    splitList(getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies: splitList(getenv("TRUSTED_PROXIES")),
		AdminUsername:  get("ADMIN_USERNAME", ""),
		AdminPassword:  getenv("ADMIN_PASSWORD"),
		Redis: RedisConfig{
			Addr:     get("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host:        get("SMTP_HOST", ""),
			Port:        587,
			User:        get("SMTP_USER", ""),
			Pass:        getenv("SMTP_PASS"),
			AdminNotify: get("ADMIN_NOTIFY_EMAIL", ""),
		},
		Payment: PaymentConfig{
			MerchantID: get("PAYMENT_MERCHANT_ID", ""),
			Secret:     getenv("PAYMENT_MERCHANT_SECRET"),
		},
	}
	cfg.SMTP.From = get("SMTP_FROM", cfg.SMTP.User)

	if cfg.IsProduction() {
		cfg.UploadDir = get("UPLOAD_DIR", "/tmp/Uploads")
	} else {
		cfg.UploadDir = get("UPLOAD_DIR", "Uploads")
	}

	if v := get("REDIS_DB", ""); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("REDIS_DB must be a number")
		}
		cfg.Redis.DB = db
	}
	if v := get("SMTP_PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("SMTP_PORT must be a number")
		}
		cfg.SMTP.Port = port
	}

	if cfg.MongoURI == "" {
		if cfg.IsProduction() {
			return nil, errors.New("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
		cfg.MongoURI = "mongodb://localhost:27017"
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET environment variable is required for production")
		}
		secret, err := security.RandomToken(32)
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		log.Println("Warning: JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
