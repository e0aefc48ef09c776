package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	GoogleClientID   string
	MeetingJWTSecret string

	// AllowStubScheduling enables the non-persistent scheduling fallback
	// (demo/CI environments without the full schema).
	AllowStubScheduling bool
)

const (
	SessionCookieName = "sid"

	SessionTTL         = 3 * 24 * time.Hour
	SessionTTLRemember = 7 * 24 * time.Hour
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARNING] No .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running on Railway, using system ENV")
	}

	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	MeetingJWTSecret = GetEnv("MEETING_JWT_SECRET")
	AllowStubScheduling = ParseBoolEnv("ALLOW_STUB_SCHEDULING")

	if GoogleClientID == "" {
		log.Println("[WARNING] GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}
	if AllowStubScheduling {
		log.Println("[WARNING] ALLOW_STUB_SCHEDULING enabled: scheduling may return unpersisted stub sessions")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// ParseBoolEnv accepts "true"/"1" (case-insensitive) like the legacy deployment did.
func ParseBoolEnv(key string) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return false
	}
	if v == "1" || v == "true" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
