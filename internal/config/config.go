package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "3000"
	defaultATExpiry       = "1440h" // 60 days
	defaultRTExpiry       = "1440h"
	defaultOtpExpiry      = "5m"
	defaultOtpDigits      = "4"
	defaultOtpRetries     = "3"
	defaultRequestTimeout = "10s"
	defaultSmsWhitelist   = "9876543210"
	defaultATSecret       = "change-me-access-secret"
	defaultRTSecret       = "change-me-refresh-secret"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	ATSecret string
	RTSecret string
	ATExpiry time.Duration
	RTExpiry time.Duration
	Issuer   string

	OtpExpiry      time.Duration
	OtpDigits      int
	OtpRetries     int
	SmsWhitelist   []string
	GupshupURL     string
	GupshupUserID  string
	GupshupPwd     string
	FirebaseAPIKey string

	WarehouseURL string
	RzAuthKey    string

	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "development"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.ATSecret = strings.TrimSpace(getEnv("AT_SECRET", defaultATSecret))
	cfg.RTSecret = strings.TrimSpace(getEnv("RT_SECRET", defaultRTSecret))
	cfg.Issuer = strings.TrimSpace(getEnv("ISS", "livsorted-auth"))

	var err error
	if cfg.ATExpiry, err = parseDurationEnv("AT_EXPIRY", defaultATExpiry); err != nil {
		return nil, err
	}
	if cfg.RTExpiry, err = parseDurationEnv("RT_EXPIRY", defaultRTExpiry); err != nil {
		return nil, err
	}
	if cfg.OtpExpiry, err = parseDurationEnv("OTP_EXPIRY", defaultOtpExpiry); err != nil {
		return nil, err
	}
	if cfg.OtpDigits, err = parseIntEnv("OTP_DIGITS", defaultOtpDigits); err != nil {
		return nil, err
	}
	if cfg.OtpRetries, err = parseIntEnv("OTP_RETRIES_ALLOWED", defaultOtpRetries); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDurationEnv("DEFAULT_TIMEOUT", defaultRequestTimeout); err != nil {
		return nil, err
	}

	cfg.SmsWhitelist = parseListEnv("SMS_WHITELIST", defaultSmsWhitelist)
	cfg.GupshupURL = strings.TrimSpace(os.Getenv("GUPSHUP_URL"))
	cfg.GupshupUserID = strings.TrimSpace(os.Getenv("GUPSHUP_USERID"))
	cfg.GupshupPwd = strings.TrimSpace(os.Getenv("GUPSHUP_PASSWORD"))
	cfg.FirebaseAPIKey = strings.TrimSpace(os.Getenv("FIREBASE_API_KEY"))

	cfg.WarehouseURL = strings.TrimSpace(os.Getenv("WAREHOUSE_URL"))
	cfg.RzAuthKey = strings.TrimSpace(os.Getenv("RZ_AUTH_KEY"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether real SMS dispatch and random codes apply.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func (c *Config) InSmsWhitelist(phoneNumber string) bool {
	for _, p := range c.SmsWhitelist {
		if p == phoneNumber {
			return true
		}
	}
	return false
}

func validate(cfg *Config) error {
	if cfg.ATExpiry <= 0 || cfg.RTExpiry <= 0 {
		return fmt.Errorf("AT_EXPIRY and RT_EXPIRY must be > 0")
	}
	if cfg.OtpExpiry <= 0 {
		return fmt.Errorf("OTP_EXPIRY must be > 0")
	}
	if cfg.OtpDigits < 4 || cfg.OtpDigits > 10 {
		return fmt.Errorf("OTP_DIGITS must be between 4 and 10")
	}
	if cfg.OtpRetries <= 0 {
		return fmt.Errorf("OTP_RETRIES_ALLOWED must be > 0")
	}
	if cfg.IsProduction() {
		if isEmptyOrDefault(cfg.ATSecret, defaultATSecret) {
			return fmt.Errorf("in production AT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RTSecret, defaultRTSecret) {
			return fmt.Errorf("in production RT_SECRET must be set and not default")
		}
		if cfg.GupshupURL == "" || cfg.GupshupUserID == "" || cfg.GupshupPwd == "" {
			return fmt.Errorf("in production GUPSHUP_URL, GUPSHUP_USERID and GUPSHUP_PASSWORD must be set")
		}
	}
	return nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseListEnv(name, fallback string) []string {
	value := strings.TrimSpace(getEnv(name, fallback))
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
