package config

import (
	"fmt"
	"os"
	"time"

	"github.com/givehub/server/internal/common/constants"
	commonerrors "github.com/givehub/server/internal/common/errors"
)

type AppConfig struct {
	HTTPPort              string
	DatabaseURL           string
	SessionSecret         string
	SessionTTL            time.Duration
	ContentSecurityPolicy string
}

func Load() (AppConfig, error) {
	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return AppConfig{}, err
	}

	if len(sessionSecret) < constants.SessionSecretMinSize {
		return AppConfig{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidSessionSecret, len(sessionSecret))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		HTTPPort:              getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:           databaseURL,
		SessionSecret:         sessionSecret,
		SessionTTL:            getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		ContentSecurityPolicy: getEnv("CONTENT_SECURITY_POLICY", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
