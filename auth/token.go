// Package auth validates Discord bot tokens and builds authorized HTTP
// clients for the REST API.
package auth

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/parsascontentcorner/discordlite/model"
)

// tokenEpoch is the vendor epoch token timestamps count from. Values below
// it are offsets rather than absolute unix seconds.
const tokenEpoch = 1_293_840_000

// minTimestampBytes is the shortest timestamp segment a well-formed token
// carries.
const minTimestampBytes = 6

// InvalidTokenError reports why a token failed validation.
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return "invalid token: " + e.Reason
}

// ValidateToken checks a bot token's structure and decomposes it into the
// bot's user id and the token's issue time. A leading "Bot " prefix and
// surrounding whitespace are accepted and ignored.
func ValidateToken(token string) (model.UserID, time.Time, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(token), "Bot ")
	if trimmed == "" {
		return 0, time.Time{}, &InvalidTokenError{Reason: "empty"}
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return 0, time.Time{}, &InvalidTokenError{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}
	for i, p := range parts {
		if p == "" {
			return 0, time.Time{}, &InvalidTokenError{Reason: fmt.Sprintf("segment %d is empty", i+1)}
		}
	}

	idRaw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return 0, time.Time{}, &InvalidTokenError{Reason: "user id segment is not base64url"}
	}
	id, err := strconv.ParseUint(string(idRaw), 10, 64)
	if err != nil {
		return 0, time.Time{}, &InvalidTokenError{Reason: "user id segment does not decode to a snowflake"}
	}

	tsRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, time.Time{}, &InvalidTokenError{Reason: "timestamp segment is not base64url"}
	}
	if len(tsRaw) < minTimestampBytes {
		return 0, time.Time{}, &InvalidTokenError{Reason: "timestamp segment too short"}
	}
	var ts uint64
	for _, b := range tsRaw {
		ts = ts<<8 | uint64(b)
	}
	if ts < tokenEpoch {
		ts += tokenEpoch
	}

	return model.UserID(id), time.Unix(int64(ts), 0).UTC(), nil
}
