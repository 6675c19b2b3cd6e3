package modulestate

import (
	"net/http"

	"discordpanel/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathModuleStates = "/api/module-states"
)

type ModuleStateUpsert struct {
	ScopeID  string   `json:"userId" binding:"required"`
	ModuleID types.ID `json:"moduleId" binding:"required"`

	// defaults to enabled when omitted
	Enabled *bool `json:"enabled"`
}

func RegisterModuleStatesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathModuleStates, middleWares...)
	g.POST("", handleUpsertModuleState)
}

func handleUpsertModuleState(c *gin.Context) {
	upsert := ModuleStateUpsert{}
	if err := c.ShouldBindBodyWith(&upsert, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	enabled := true
	if upsert.Enabled != nil {
		enabled = *upsert.Enabled
	}
	record, err := UpsertModuleStateFunc(upsert.ScopeID, upsert.ModuleID, enabled)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
