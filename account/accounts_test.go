package account_test

import (
	"testing"
	"time"

	"discordpanel/account"
	"discordpanel/persistence"
	"discordpanel/testinfra"

	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("discordpanel")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&account.User{}).Error).To(BeNil())

	persistence.ActiveDataSourceManager = db.DS
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestUpsertUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("first authentication should create the user", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		user, err := account.UpsertUser("10001", "admin#0420", "a1b2", "acc-1", "ref-1")
		Expect(err).To(BeNil())
		Expect(user.ID > 0).To(BeTrue())
		Expect(user.DiscordID).To(Equal("10001"))
		Expect(user.Username).To(Equal("admin#0420"))
		Expect(user.AccessToken).To(Equal("acc-1"))
		Expect(user.RefreshToken).To(Equal("ref-1"))
		Expect(time.Since(user.CreatedAt.Time()) < time.Second).To(BeTrue())
	})

	t.Run("re-authentication should refresh credentials in place", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		first, err := account.UpsertUser("10001", "admin#0420", "a1b2", "acc-1", "ref-1")
		Expect(err).To(BeNil())

		second, err := account.UpsertUser("10001", "renamed#0420", "c3d4", "acc-2", "ref-2")
		Expect(err).To(BeNil())
		Expect(second.ID).To(Equal(first.ID))
		Expect(second.Username).To(Equal("renamed#0420"))
		Expect(second.Avatar).To(Equal("c3d4"))
		Expect(second.AccessToken).To(Equal("acc-2"))
		Expect(second.RefreshToken).To(Equal("ref-2"))

		var count int
		Expect(persistence.ActiveDataSourceManager.GormDB().Model(&account.User{}).
			Count(&count).Error).To(BeNil())
		Expect(count).To(Equal(1))
	})

	t.Run("lookup by discord id", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		created, err := account.UpsertUser("10001", "admin#0420", "a1b2", "acc-1", "ref-1")
		Expect(err).To(BeNil())

		found, err := account.FindUserByDiscordID("10001")
		Expect(err).To(BeNil())
		Expect(found.ID).To(Equal(created.ID))

		_, err = account.FindUserByDiscordID("unknown")
		Expect(gorm.IsRecordNotFoundError(err)).To(BeTrue())
	})
}
