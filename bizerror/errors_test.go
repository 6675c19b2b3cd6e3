package bizerror_test

import (
	"errors"
	"net/http"
	"testing"

	"discordpanel/bizerror"

	. "github.com/onsi/gomega"
)

func TestErrProvider(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should pass the upstream status through", func(t *testing.T) {
		err := &bizerror.ErrProvider{Status: http.StatusTooManyRequests, Message: "rate limited"}
		respond := err.Respond()
		Expect(respond.Status).To(Equal(http.StatusTooManyRequests))
		Expect(respond.Code).To(Equal("provider.rejected"))
		Expect(respond.Message).To(Equal("rate limited"))
	})

	t.Run("should clamp nonsense statuses to bad gateway", func(t *testing.T) {
		err := &bizerror.ErrProvider{Status: 0}
		Expect(err.Respond().Status).To(Equal(http.StatusBadGateway))

		err = &bizerror.ErrProvider{Status: http.StatusOK}
		Expect(err.Respond().Status).To(Equal(http.StatusBadGateway))
	})
}

func TestErrTransient(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should respond as internal failure and keep the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &bizerror.ErrTransient{Cause: cause}
		respond := err.Respond()
		Expect(respond.Status).To(Equal(http.StatusInternalServerError))
		Expect(respond.Code).To(Equal("provider.unavailable"))
		Expect(errors.Is(err, cause)).To(BeTrue())
	})
}

func TestErrBadParam(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should use the cause message when present", func(t *testing.T) {
		err := &bizerror.ErrBadParam{Cause: errors.New("invalid id 'aaa'")}
		respond := err.Respond()
		Expect(respond.Status).To(Equal(http.StatusBadRequest))
		Expect(respond.Code).To(Equal("common.bad_param"))
		Expect(respond.Message).To(Equal("invalid id 'aaa'"))
	})
}
