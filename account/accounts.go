package account

import (
	"discordpanel/idgen"
	"discordpanel/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	UpsertUserFunc = UpsertUser
)

// UpsertUser records an authenticated principal keyed by its Discord id.
// Credentials are overwritten on every re-authentication.
func UpsertUser(discordID, username, avatar, accessToken, refreshToken string) (*User, error) {
	var user User
	err := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&User{DiscordID: discordID}).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = User{ID: idgen.NextID(userIdWorker), DiscordID: discordID, Username: username,
				Avatar: avatar, AccessToken: accessToken, RefreshToken: refreshToken,
				CreatedAt: types.CurrentTimestamp()}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		updating := map[string]interface{}{
			"username": username, "avatar": avatar,
			"access_token": accessToken, "refresh_token": refreshToken,
		}
		if err := tx.Model(&User{}).Where(&User{ID: user.ID}).Update(updating).Error; err != nil {
			return err
		}
		return tx.Where(&User{ID: user.ID}).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByDiscordID(discordID string) (*User, error) {
	var user User
	if err := persistence.ActiveDataSourceManager.GormDB().Where(&User{DiscordID: discordID}).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
