package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// ElevenLabs (preferred TTS provider)
	ElevenLabsKey     string
	ElevenLabsVoiceID string

	// Cartesia (alternate TTS provider — used when ElevenLabs key is not set)
	CartesiaKey     string
	CartesiaURL     string
	CartesiaVoiceID string

	// GoHighLevel (CRM — contact upsert + appointment booking)
	GHLAPIKey     string
	GHLLocationID string
	GHLCalendarID string

	// Timezone applied to booking datetimes that carry no UTC offset
	Timezone *time.Location
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               resolvePort(),
		CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		ElevenLabsKey:      getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:  getEnv("ELEVENLABS_VOICE_ID", ""),
		CartesiaKey:        getEnv("CARTESIA_API_KEY", ""),
		CartesiaURL:        getEnv("CARTESIA_API_URL", "https://api.cartesia.ai"),
		CartesiaVoiceID:    getEnv("CARTESIA_VOICE_ID", ""),
		GHLAPIKey:          getEnv("GHL_API_KEY", ""),
		GHLLocationID:      getEnv("GHL_LOCATION_ID", ""),
		GHLCalendarID:      getEnv("GHL_CALENDAR_ID", ""),
	}

	// Validate required fields
	if cfg.GHLAPIKey == "" {
		return nil, fmt.Errorf("GHL_API_KEY is required")
	}

	if cfg.GHLLocationID == "" {
		return nil, fmt.Errorf("GHL_LOCATION_ID is required")
	}

	if cfg.GHLCalendarID == "" {
		return nil, fmt.Errorf("GHL_CALENDAR_ID is required")
	}

	// At least one TTS provider must be configured
	if cfg.ElevenLabsKey == "" && cfg.CartesiaKey == "" {
		return nil, fmt.Errorf("either ELEVENLABS_API_KEY or CARTESIA_API_KEY is required for TTS")
	}

	if cfg.ElevenLabsKey != "" && cfg.ElevenLabsVoiceID == "" {
		return nil, fmt.Errorf("ELEVENLABS_VOICE_ID is required when ELEVENLABS_API_KEY is set")
	}

	tz := getEnv("DEFAULT_TIMEZONE", "America/Chicago")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", tz, err)
	}
	cfg.Timezone = loc

	return cfg, nil
}

// resolvePort picks the listen port. The platform-injected RAILWAY_PORT wins
// over a locally configured PORT.
func resolvePort() string {
	if port := os.Getenv("RAILWAY_PORT"); port != "" {
		return port
	}
	return getEnv("PORT", "5000")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
