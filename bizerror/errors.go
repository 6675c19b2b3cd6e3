package bizerror

import (
	"errors"
	"net/http"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("forbidden")
var ErrNotFound = errors.New("record not found")
var ErrMissingScope = errors.New("missing scope")
var ErrDuplicateModuleName = errors.New("duplicate module name")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// ErrProvider reports a definite rejection from the identity provider.
// The upstream status is passed through to the caller.
type ErrProvider struct {
	Status  int
	Message string
	Cause   error
}

func (e *ErrProvider) Unwrap() error {
	return e.Cause
}
func (e *ErrProvider) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "provider rejected request"
}
func (e *ErrProvider) Respond() *BizErrorDetail {
	status := e.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &BizErrorDetail{Status: status, Code: "provider.rejected", Message: e.Error(), Data: nil}
}

// ErrTransient reports a network level failure talking to the identity
// provider. Nothing has been committed when it is raised.
type ErrTransient struct {
	Cause error
}

func (e *ErrTransient) Unwrap() error {
	return e.Cause
}
func (e *ErrTransient) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "provider unavailable"
}
func (e *ErrTransient) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusInternalServerError, Code: "provider.unavailable", Message: e.Error(), Data: nil}
}
