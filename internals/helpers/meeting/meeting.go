// Meeting room/link utilities.
// - Room name: "<prefix>-<uuid>" (lowercase)
// - Link: https://meet.jit.si/<room>
package meeting

import (
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	jitsiBase = "https://meet.jit.si/"

	// PlaceholderPrefix marks join links that were seeded by old demo data
	// and must be regenerated on first read.
	PlaceholderPrefix = "https://meet.example/"
)

// NewRoomName returns a globally unique room slug.
func NewRoomName(prefix string) string {
	if prefix == "" {
		prefix = "tutor"
	}
	return strings.ToLower(prefix + "-" + uuid.NewString())
}

// Link builds the join URL for a room.
func Link(roomName string) string {
	slug := strings.TrimSpace(roomName)
	return jitsiBase + url.PathEscape(slug)
}

// IsPlaceholderLink reports whether a persisted join link must be repaired:
// either empty or matching the known placeholder pattern.
func IsPlaceholderLink(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" {
		return true
	}
	return strings.HasPrefix(link, PlaceholderPrefix)
}

// NewStubMeetLink generates a meet-style slug (xxx-xxxx-xxx) for stub
// scheduling responses.
func NewStubMeetLink() string {
	part := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte('a' + rand.Intn(26))
		}
		return string(b)
	}
	return "https://meet.google.com/" + part(3) + "-" + part(4) + "-" + part(3)
}

// RoomToken mints a short-lived HS256 token for a room, for deployments that
// gate their meeting platform behind JWT auth. Empty secret disables signing.
func RoomToken(secret, roomName string, userID int64, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", nil
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"room": roomName,
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
