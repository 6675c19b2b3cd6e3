package account

import "github.com/fundwit/go-commons/types"

type User struct {
	ID types.ID `json:"id"`

	DiscordID string `json:"discordId" gorm:"column:discord_id;unique_index:uni_discord_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`

	AccessToken  string `json:"-" sql:"type:TEXT"`
	RefreshToken string `json:"-" sql:"type:TEXT"`

	CreatedAt types.Timestamp `json:"createdAt" gorm:"column:created_at" sql:"type:DATETIME(6) NOT NULL"`
}

type UserInfo struct {
	ID        types.ID `json:"id"`
	DiscordID string   `json:"discordId"`
	Username  string   `json:"username"`
	Avatar    string   `json:"avatar"`
}
