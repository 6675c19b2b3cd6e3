package modulestate_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestModulestate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Modulestate Suite")
}
