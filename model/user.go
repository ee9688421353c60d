package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Discriminator is the four digit user tag. The wire carries it as a string,
// a number, or null depending on the payload.
type Discriminator uint16

// UnmarshalJSON accepts "0001", 1, or null.
func (d *Discriminator) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*d = 0
			return nil
		}
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return fmt.Errorf("malformed discriminator %q: %w", s, err)
		}
		*d = Discriminator(n)
		return nil
	}
	var n uint16
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("malformed discriminator %s", data)
	}
	*d = Discriminator(n)
	return nil
}

// MarshalJSON emits the zero padded string form.
func (d Discriminator) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%04d", uint16(d)))), nil
}

// User is a Discord user as carried on the wire. A user is uniquely
// identified by ID.
type User struct {
	ID            UserID        `json:"id"`
	Name          string        `json:"username"`
	Discriminator Discriminator `json:"discriminator"`
	Bot           bool          `json:"bot"`
	Avatar        *string       `json:"avatar"`
}

// Tag returns the classic name#discriminator form.
func (u User) Tag() string {
	return fmt.Sprintf("%s#%04d", u.Name, u.Discriminator)
}

// Mention returns the chat mention form of the user.
func (u User) Mention() string {
	return "<@" + u.ID.String() + ">"
}

// CurrentUser is the user the client is authenticated as.
type CurrentUser struct {
	User

	Verified   bool    `json:"verified"`
	Email      *string `json:"email"`
	MFAEnabled bool    `json:"mfa_enabled"`
}
