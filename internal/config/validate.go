package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d,%d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl (got %v <= %v)",
			c.Auth.RefreshTokenTTL, c.Auth.AccessTokenTTL)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if c.Mail.MailEnabled() {
		if c.Mail.Port <= 0 {
			return fmt.Errorf("mail.port must be > 0 when SMTP is configured (got %d)", c.Mail.Port)
		}
		if c.Mail.From == "" {
			return fmt.Errorf("mail.from is required when SMTP is configured")
		}
	}

	return nil
}

func (r RateLimitConfig) validate() error {
	if r.RegisterPerMinute <= 0 {
		return fmt.Errorf("register_per_minute must be > 0 (got %d)", r.RegisterPerMinute)
	}
	if r.LoginPerMinute <= 0 {
		return fmt.Errorf("login_per_minute must be > 0 (got %d)", r.LoginPerMinute)
	}
	if r.DefaultPerMinute <= 0 {
		return fmt.Errorf("default_per_minute must be > 0 (got %d)", r.DefaultPerMinute)
	}
	return nil
}
