package modulestate_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"discordpanel/bizerror"
	"discordpanel/modulestate"
	"discordpanel/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestUpsertModuleStateAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	modulestate.RegisterModuleStatesRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, modulestate.PathModuleStates, strings.NewReader("{}"))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
			"message": "Key: 'ModuleStateUpsert.ScopeID' Error:Field validation for 'ScopeID' failed on the 'required' tag\n` +
			`Key: 'ModuleStateUpsert.ModuleID' Error:Field validation for 'ModuleID' failed on the 'required' tag",
			"data":null}`))

		req = httptest.NewRequest(http.MethodPost, modulestate.PathModuleStates, nil)
		status, body, _ = testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code": "common.bad_param", "message": "EOF", "data": null}`))
	})

	t.Run("enabled should default to true when omitted", func(t *testing.T) {
		var gotScope string
		var gotModule types.ID
		var gotEnabled bool
		modulestate.UpsertModuleStateFunc = func(scopeID string, moduleID types.ID, enabled bool) (*modulestate.ModuleState, error) {
			gotScope, gotModule, gotEnabled = scopeID, moduleID, enabled
			return &modulestate.ModuleState{ID: 1, ScopeID: scopeID, ModuleID: moduleID, Enabled: enabled}, nil
		}
		reqBody := `{"userId": "user-1", "moduleId": "123"}`
		req := httptest.NewRequest(http.MethodPost, modulestate.PathModuleStates, strings.NewReader(reqBody))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"id": "1", "scopeId": "user-1", "moduleId": "123", "enabled": true}`))
		Expect(gotScope).To(Equal("user-1"))
		Expect(gotModule).To(Equal(types.ID(123)))
		Expect(gotEnabled).To(BeTrue())
	})

	t.Run("explicit enabled false should be passed through", func(t *testing.T) {
		var gotEnabled bool
		modulestate.UpsertModuleStateFunc = func(scopeID string, moduleID types.ID, enabled bool) (*modulestate.ModuleState, error) {
			gotEnabled = enabled
			return &modulestate.ModuleState{ID: 1, ScopeID: scopeID, ModuleID: moduleID, Enabled: enabled}, nil
		}
		reqBody := `{"userId": "user-1", "moduleId": "123", "enabled": false}`
		req := httptest.NewRequest(http.MethodPost, modulestate.PathModuleStates, strings.NewReader(reqBody))
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(gotEnabled).To(BeFalse())
	})

	t.Run("should report 404 for unknown module", func(t *testing.T) {
		modulestate.UpsertModuleStateFunc = func(scopeID string, moduleID types.ID, enabled bool) (*modulestate.ModuleState, error) {
			return nil, bizerror.ErrNotFound
		}
		reqBody := `{"userId": "user-1", "moduleId": "123"}`
		req := httptest.NewRequest(http.MethodPost, modulestate.PathModuleStates, strings.NewReader(reqBody))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(`{"code":"common.record_not_found", "message":"record not found", "data":null}`))
	})
}
