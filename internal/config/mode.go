package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Mode is the deployment mode a process runs with.
type Mode string

const (
	ModeTest        Mode = "test"
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Protocol is the scheme the HTTP server listens with.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

const (
	defaultJWTSecret = "topSecret"
	defaultExpiresIn = "7d"
)

// Selected is the fixed record chosen for a deployment mode.
type Selected struct {
	Mode Mode
	App  AppRecord
	JWT  JWTConfig
}

// AppRecord carries the mode-dependent server settings.
type AppRecord struct {
	Protocol Protocol
	IP       string
}

// JWTConfig holds the shared secret and token lifetime.
type JWTConfig struct {
	Secret    string
	ExpiresIn string
}

// Select maps a deployment mode signal to its record. Matching is exact;
// unknown or empty values yield the development record.
func Select(mode string) Selected {
	switch mode {
	case "production":
		return ForProduction()
	case "test", "e2e":
		return ForTest()
	default:
		return ForDevelopment()
	}
}

// ForTest returns the record used by test and e2e runs.
func ForTest() Selected {
	return Selected{
		Mode: ModeTest,
		App:  AppRecord{Protocol: ProtocolHTTP, IP: "localhost"},
		JWT:  JWTConfig{Secret: defaultJWTSecret, ExpiresIn: defaultExpiresIn},
	}
}

// ForDevelopment returns the record used for local development.
func ForDevelopment() Selected {
	return Selected{
		Mode: ModeDevelopment,
		App:  AppRecord{Protocol: ProtocolHTTP, IP: "localhost"},
		JWT:  JWTConfig{Secret: defaultJWTSecret, ExpiresIn: defaultExpiresIn},
	}
}

// ForProduction returns the record used in production.
func ForProduction() Selected {
	return Selected{
		Mode: ModeProduction,
		App:  AppRecord{Protocol: ProtocolHTTP, IP: "0.0.0.0"},
		JWT:  JWTConfig{Secret: defaultJWTSecret, ExpiresIn: defaultExpiresIn},
	}
}

// TokenTTL parses ExpiresIn. Go duration syntax is accepted, plus a whole
// number of days such as "7d".
func (j JWTConfig) TokenTTL() (time.Duration, error) {
	return parseExpiry(j.ExpiresIn)
}

func parseExpiry(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, errors.New("empty expiry")
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, errors.New("invalid day count")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("expiry must be positive")
	}
	return d, nil
}
