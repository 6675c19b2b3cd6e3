package module

import (
	"fmt"
	"net/http"

	"discordpanel/bizerror"
	"discordpanel/modulestate"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathModules = "/api/modules"
)

func RegisterModulesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathModules, middleWares...)
	g.GET("", handleQueryModules)
	g.POST("", handleCreateModule)
	g.PATCH("/:id/toggle", handleToggleModule)
}

func handleQueryModules(c *gin.Context) {
	records, err := ListModulesFunc()
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

// handleCreateModule responds with the full updated module list, the
// shape the dashboard rerenders from.
func handleCreateModule(c *gin.Context) {
	creation := ModuleCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if _, err := CreateModuleFunc(creation); err != nil {
		panic(err)
	}
	records, err := ListModulesFunc()
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleToggleModule(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: fmt.Errorf("invalid id '%s'", c.Param("id"))})
	}
	record, err := modulestate.ToggleFunc("", id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
