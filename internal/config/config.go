package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pkgvalidator "camperrent/internal/pkg/validator"
)

const (
	defaultPort            = "8080"
	defaultRedsysURL       = "https://sis-t.redsys.es:25443/sis/realizarPago"
	defaultRedsysProdURL   = "https://sis.redsys.es/sis/realizarPago"
	defaultCurrency        = "978" // EUR
	defaultPendingTTL      = "48h"
	defaultLowSeasonName   = "Temporada Baja"
	defaultJWTTTL          = 24 * time.Hour
)

// RedsysConfig is the merchant-side contract with the card gateway.
// SecretKey is base64 and must decode to 24 bytes (3DES).
type RedsysConfig struct {
	MerchantCode    string
	Terminal        string
	SecretKey       string
	Currency        string
	URLOk           string
	URLKo           string
	NotificationURL string
	GatewayURL      string
}

type EmailConfig struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

// SeasonFallbackRates price days that fall outside every configured season.
// These replace the hard-coded low-season table of the legacy system; they
// load once at startup and are injected, never referenced as globals.
type SeasonFallbackRates struct {
	Name              string
	PriceLessThanWeek float64 `validate:"gt=0"`
	PriceOneWeek      float64 `validate:"gt=0"`
	PriceTwoWeeks     float64 `validate:"gt=0"`
	PriceThreeWeeks   float64 `validate:"gt=0"`
	MinDays           int
}

type Config struct {
	Port        string
	DatabaseURL string `validate:"required"`
	JWTSecret   string `validate:"required"`
	JWTTTL      time.Duration

	Redsys   RedsysConfig
	Email    EmailConfig
	Fallback SeasonFallbackRates

	// PendingBookingTTL is how long a pending/pending booking may sit
	// without a completed payment before the expiry job cancels it.
	PendingBookingTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envOrDefault("PORT", defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:      defaultJWTTTL,
		Redsys: RedsysConfig{
			MerchantCode:    os.Getenv("REDSYS_MERCHANT_CODE"),
			Terminal:        envOrDefault("REDSYS_TERMINAL", "1"),
			SecretKey:       os.Getenv("REDSYS_SECRET_KEY"),
			Currency:        envOrDefault("REDSYS_CURRENCY", defaultCurrency),
			URLOk:           os.Getenv("REDSYS_URL_OK"),
			URLKo:           os.Getenv("REDSYS_URL_KO"),
			NotificationURL: os.Getenv("REDSYS_NOTIFICATION_URL"),
			GatewayURL:      gatewayURL(),
		},
		Email: EmailConfig{
			APIKey:      os.Getenv("EMAIL_API_KEY"),
			SenderEmail: os.Getenv("EMAIL_SENDER"),
			SenderName:  envOrDefault("EMAIL_SENDER_NAME", "Camperrent"),
		},
		Fallback: SeasonFallbackRates{
			Name:              envOrDefault("LOW_SEASON_NAME", defaultLowSeasonName),
			PriceLessThanWeek: envFloat("LOW_SEASON_PRICE_BASE", 95),
			PriceOneWeek:      envFloat("LOW_SEASON_PRICE_WEEK", 85),
			PriceTwoWeeks:     envFloat("LOW_SEASON_PRICE_TWO_WEEKS", 75),
			PriceThreeWeeks:   envFloat("LOW_SEASON_PRICE_THREE_WEEKS", 65),
			MinDays:           int(envFloat("LOW_SEASON_MIN_DAYS", 2)),
		},
	}

	ttl, err := time.ParseDuration(envOrDefault("PENDING_BOOKING_TTL", defaultPendingTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_BOOKING_TTL: %w", err)
	}
	cfg.PendingBookingTTL = ttl

	if errs := pkgvalidator.Validate(cfg); errs != nil {
		return nil, fmt.Errorf("config validation failed: %v", errs)
	}
	if cfg.Redsys.SecretKey != "" {
		if err := cfg.Redsys.CheckSecretKey(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// CheckSecretKey verifies the merchant secret decodes to the 24 bytes 3DES
// needs; a wrong-length key makes every signature silently fail, so it is
// rejected at startup instead.
func (r *RedsysConfig) CheckSecretKey() error {
	raw, err := base64.StdEncoding.DecodeString(r.SecretKey)
	if err != nil {
		return fmt.Errorf("REDSYS_SECRET_KEY is not valid base64: %w", err)
	}
	if len(raw) != 24 {
		return fmt.Errorf("REDSYS_SECRET_KEY must decode to 24 bytes, got %d", len(raw))
	}
	return nil
}

func gatewayURL() string {
	if v := os.Getenv("REDSYS_GATEWAY_URL"); v != "" {
		return v
	}
	if os.Getenv("REDSYS_ENVIRONMENT") == "production" {
		return defaultRedsysProdURL
	}
	return defaultRedsysURL
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envFloat(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
