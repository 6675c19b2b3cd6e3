package modulestate_test

import (
	"discordpanel/modulestate"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseAllowlist", func() {
	Context("with a blank value", func() {
		It("should keep the default subset", func() {
			Expect(modulestate.ParseAllowlist("")).To(Equal([]string{"AutoMod", "Logging", "Moderation", "Welcome"}))
			Expect(modulestate.ParseAllowlist("   ")).To(Equal([]string{"AutoMod", "Logging", "Moderation", "Welcome"}))
		})
	})

	Context("with a wildcard", func() {
		It("should lift the restriction", func() {
			Expect(modulestate.ParseAllowlist("*")).To(BeNil())
		})
	})

	Context("with a comma separated list", func() {
		It("should parse the configured names", func() {
			Expect(modulestate.ParseAllowlist("Moderation,AutoMod")).To(Equal([]string{"Moderation", "AutoMod"}))
		})

		It("should trim spaces and skip empty entries", func() {
			Expect(modulestate.ParseAllowlist(" Moderation , ,AutoMod, ")).To(Equal([]string{"Moderation", "AutoMod"}))
		})

		It("should fall back to the default subset when nothing survives", func() {
			Expect(modulestate.ParseAllowlist(" , ,")).To(Equal([]string{"AutoMod", "Logging", "Moderation", "Welcome"}))
		})
	})
})
