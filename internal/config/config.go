package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	UploadDir   string

	OTPTTL         time.Duration
	OTPLength      int
	OTPMaxAttempts int
	ExposeOTP      bool

	DeliveryCharge   decimal.Decimal
	TaxRate          decimal.Decimal
	OrderRewardCoins int

	// Warnings lists values that were present but unparsable and were
	// replaced by their defaults.
	Warnings []string
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		Addr:        getenv("APP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", devJWTSecret),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),
		ExposeOTP:   os.Getenv("EXPOSE_OTP") == "1",
	}

	cfg.TokenTTL = cfg.duration("TOKEN_TTL", 72*time.Hour)
	cfg.OTPTTL = cfg.duration("OTP_TTL", 5*time.Minute)
	cfg.OTPLength = cfg.integer("OTP_LENGTH", 4)
	cfg.OTPMaxAttempts = cfg.integer("OTP_MAX_ATTEMPTS", 5)
	cfg.OrderRewardCoins = cfg.integer("ORDER_REWARD_COINS", 10)
	cfg.DeliveryCharge = cfg.amount("DELIVERY_CHARGE", decimal.Zero)
	cfg.TaxRate = cfg.amount("TAX_RATE", decimal.RequireFromString("0.05"))

	return cfg
}

// Validate reports configuration that is unsafe to run with.
func (c Config) Validate() error {
	if c.DatabaseURL != "" && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when DATABASE_URL is configured")
	}
	if c.OTPLength < 4 || c.OTPLength > 8 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 8, got %d", c.OTPLength)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a valid duration, using %s", key, raw, fallback))
		return fallback
	}
	return d
}

func (c *Config) integer(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a valid number, using %d", key, raw, fallback))
		return fallback
	}
	return v
}

func (c *Config) amount(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a valid amount, using %s", key, raw, fallback))
		return fallback
	}
	return v
}
