package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsascontentcorner/discordlite/model"
)

// makeToken fabricates a structurally valid token for the given user id
// and timestamp bytes.
func makeToken(id string, ts []byte) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id)) +
		"." + base64.RawURLEncoding.EncodeToString(ts) +
		".hmac-part"
}

func TestValidateToken(t *testing.T) {
	// 0x4B4F2940 = 1263479104, below the vendor epoch.
	ts := []byte{0x00, 0x00, 0x4B, 0x4F, 0x29, 0x40}
	token := makeToken("258568289746288641", ts)

	id, issued, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.UserID(258568289746288641), id)
	assert.Equal(t, time.Unix(1263479104+1_293_840_000, 0).UTC(), issued)
}

func TestValidateTokenBotPrefix(t *testing.T) {
	ts := []byte{0x00, 0x00, 0x4B, 0x4F, 0x29, 0x40}
	token := "Bot " + makeToken("123", ts)

	id, _, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.UserID(123), id)
}

func TestValidateTokenAbsoluteTimestamp(t *testing.T) {
	// 0x5D4E5E00 = 1565416960, above the vendor epoch, so no offset.
	ts := []byte{0x00, 0x00, 0x5D, 0x4E, 0x5E, 0x00}
	_, issued, err := ValidateToken(makeToken("123", ts))
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1565416960, 0).UTC(), issued)
}

func TestValidateTokenRejectsMalformed(t *testing.T) {
	ts := []byte{0x00, 0x00, 0x4B, 0x4F, 0x29, 0x40}
	var invalid *InvalidTokenError

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"empty segment", "a..c"},
		{"id not base64url", "!!!." + base64.RawURLEncoding.EncodeToString(ts) + ".x"},
		{"id not digits", makeToken("notdigits", ts)},
		{"timestamp too short", makeToken("123", []byte{0x01, 0x02})},
		{"timestamp not base64url", base64.RawURLEncoding.EncodeToString([]byte("123")) + ".!!!.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateToken(tt.token)
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
