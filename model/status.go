package model

import "encoding/json"

// OnlineStatus is a user's presence state.
type OnlineStatus string

const (
	StatusOnline       OnlineStatus = "online"
	StatusIdle         OnlineStatus = "idle"
	StatusDoNotDisturb OnlineStatus = "dnd"
	StatusOffline      OnlineStatus = "offline"
	StatusInvisible    OnlineStatus = "invisible"
)

// Activity is the game or custom status attached to a presence.
type Activity struct {
	Name string  `json:"name"`
	Kind int     `json:"type"`
	URL  *string `json:"url"`
}

// Presence is a user's observed status in a guild or globally.
type Presence struct {
	UserID   UserID       `json:"-"`
	Status   OnlineStatus `json:"status"`
	Activity *Activity    `json:"game"`
	User     *User        `json:"user"`
}

// UnmarshalJSON fills UserID from the embedded user object, which may be a
// bare {"id": ...} stub.
func (p *Presence) UnmarshalJSON(data []byte) error {
	type presence Presence
	var raw presence
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Presence(raw)
	if p.User != nil {
		p.UserID = p.User.ID
		// Stub users carry only an id; drop them so the cache does not
		// clobber real records with empty names.
		if p.User.Name == "" {
			p.User = nil
		}
	}
	return nil
}
