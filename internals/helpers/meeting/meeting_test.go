package meeting

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomName(t *testing.T) {
	a := NewRoomName("tutor")
	b := NewRoomName("tutor")

	assert.True(t, strings.HasPrefix(a, "tutor-"))
	assert.Equal(t, a, strings.ToLower(a))
	assert.NotEqual(t, a, b)

	assert.True(t, strings.HasPrefix(NewRoomName(""), "tutor-"))
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://meet.jit.si/tutor-abc", Link("tutor-abc"))
	assert.Equal(t, "https://meet.jit.si/tutor-abc", Link("  tutor-abc "))
}

func TestIsPlaceholderLink(t *testing.T) {
	assert.True(t, IsPlaceholderLink(""))
	assert.True(t, IsPlaceholderLink("   "))
	assert.True(t, IsPlaceholderLink("https://meet.example/room-1"))
	assert.False(t, IsPlaceholderLink("https://meet.jit.si/tutor-abc"))
	assert.False(t, IsPlaceholderLink("https://meet.google.com/abc-defg-hij"))
}

func TestNewStubMeetLink(t *testing.T) {
	link := NewStubMeetLink()
	require.True(t, strings.HasPrefix(link, "https://meet.google.com/"))

	slug := strings.TrimPrefix(link, "https://meet.google.com/")
	parts := strings.Split(slug, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 3)
	assert.Len(t, parts[1], 4)
	assert.Len(t, parts[2], 3)
}

func TestRoomToken(t *testing.T) {
	// empty secret disables signing
	tok, err := RoomToken("", "tutor-abc", 7, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, tok)

	tok, err = RoomToken("secret", "tutor-abc", 7, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "tutor-abc", claims["room"])
}
