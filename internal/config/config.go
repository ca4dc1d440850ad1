package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Auth      AuthConfig      `yaml:"auth"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// MongoConfig holds MongoDB connection settings for the preference store.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"             env-required:"true"`
	Database       string        `yaml:"database"        env:"MONGO_DATABASE"        env-default:"foodi"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// AuthConfig holds authentication and social-login settings.
type AuthConfig struct {
	JWTSecret            string        `yaml:"jwt_secret"             env:"AUTH_JWT_SECRET"             env-required:"true"`
	JWTIssuer            string        `yaml:"jwt_issuer"             env:"AUTH_JWT_ISSUER"             env-default:"foodi"`
	AccessTokenTTL       time.Duration `yaml:"access_token_ttl"       env:"AUTH_ACCESS_TOKEN_TTL"       env-default:"15m"`
	RefreshTokenTTL      time.Duration `yaml:"refresh_token_ttl"      env:"AUTH_REFRESH_TOKEN_TTL"      env-default:"720h"`
	VerificationTokenTTL time.Duration `yaml:"verification_token_ttl" env:"AUTH_VERIFICATION_TOKEN_TTL" env-default:"48h"`
	PasswordHashCost     int           `yaml:"password_hash_cost"     env:"AUTH_PASSWORD_HASH_COST"     env-default:"12"`
	GoogleClientID       string        `yaml:"google_client_id"       env:"AUTH_GOOGLE_CLIENT_ID"`
}

// MailConfig holds SMTP settings for outbound verification mail.
// An empty Host disables sending; registration still succeeds.
type MailConfig struct {
	Host     string `yaml:"host"     env:"SMTP_HOST"`
	Port     int    `yaml:"port"     env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from"     env:"SMTP_FROM" env-default:"no-reply@foodi.app"`
	BaseURL  string `yaml:"base_url" env:"MAIL_BASE_URL" env-default:"https://app.foodi.app"`
}

// RateLimitConfig holds fixed-window admission limits, per client IP.
type RateLimitConfig struct {
	RegisterPerMinute int `yaml:"register_per_minute" env:"RATE_REGISTER_PER_MINUTE" env-default:"5"`
	LoginPerMinute    int `yaml:"login_per_minute"    env:"RATE_LOGIN_PER_MINUTE"    env-default:"10"`
	DefaultPerMinute  int `yaml:"default_per_minute"  env:"RATE_DEFAULT_PER_MINUTE"  env-default:"120"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// MailEnabled reports whether outbound mail is configured.
func (c MailConfig) MailEnabled() bool {
	return c.Host != ""
}
