package session

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	// bearer credential used against the identity provider, never
	// returned to browsers by itself
	AccessToken string `json:"-"`

	SigningTime time.Time `json:"-"`
}

type Identity struct {
	ID        types.ID `json:"id"`
	DiscordID string   `json:"discordId"`
	Name      string   `json:"name"`
	Avatar    string   `json:"avatar"`
}
