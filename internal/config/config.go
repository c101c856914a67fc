// Package config collects every environment-sourced knob into one value that
// is loaded once at startup and passed down. Nothing in the ingest hot path
// reads the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	defaultDatabaseURL   = "sqlite:///./soc.db"
	defaultCORSOrigins   = "*"
	defaultResidencyTag  = "SA"
	defaultBenignTypes   = "auth_success"
	defaultCriticalTypes = "auth_failure,mfa_bypass,api_key_use,privilege_escalation"
	defaultHTTPAddr      = ":8080"
)

// Config is the full service configuration.
type Config struct {
	DatabaseURL         string
	HTTPAddr            string
	CORSAllowOrigins    []string
	DefaultResidencyTag string
	StoreRaw            bool
	BenignTypes         map[string]struct{}
	CriticalTypes       map[string]struct{}
	BucketSeconds       int

	// Optional integrations; empty means disabled.
	NATSURL      string
	OTelEndpoint string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	cfg := Config{
		DatabaseURL:         envOr("DATABASE_URL", defaultDatabaseURL),
		HTTPAddr:            envOr("HTTP_ADDR", defaultHTTPAddr),
		CORSAllowOrigins:    splitList(envOr("CORS_ALLOW_ORIGINS", defaultCORSOrigins)),
		DefaultResidencyTag: envOr("DEFAULT_RESIDENCY_TAG", defaultResidencyTag),
		StoreRaw:            strings.EqualFold(envOr("STORE_RAW", "false"), "true"),
		BenignTypes:         typeSet(envOr("BENIGN_TYPES", defaultBenignTypes)),
		CriticalTypes:       typeSet(envOr("CRITICAL_TYPES", defaultCriticalTypes)),
		BucketSeconds:       envInt("CLUSTER_BUCKET_SECONDS", 900),
		NATSURL:             os.Getenv("NATS_URL"),
		OTelEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	return cfg
}

// IsBenign classifies an event type: benign iff in BENIGN_TYPES and not in
// CRITICAL_TYPES (both matched lowercase).
func (c Config) IsBenign(eventType string) bool {
	et := strings.ToLower(eventType)
	if _, critical := c.CriticalTypes[et]; critical {
		return false
	}
	_, benign := c.BenignTypes[et]
	return benign
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func typeSet(s string) map[string]struct{} {
	set := make(map[string]struct{}, 8)
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}
