package modulestate

import (
	"fmt"
	"net/http"

	"discordpanel/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

var (
	PathGuildModules = "/api/guilds/:guildId/modules"
)

func RegisterGuildModulesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathGuildModules, middleWares...)
	g.GET("", handleQueryGuildModules)
	g.PATCH("/:id/toggle", handleToggleGuildModule)
}

func handleQueryGuildModules(c *gin.Context) {
	guildId := c.Param("guildId")
	if guildId == "" {
		panic(bizerror.ErrMissingScope)
	}
	records, err := EffectiveModulesFunc(guildId)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleToggleGuildModule(c *gin.Context) {
	guildId := c.Param("guildId")
	if guildId == "" {
		panic(bizerror.ErrMissingScope)
	}
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: fmt.Errorf("invalid id '%s'", c.Param("id"))})
	}
	record, err := ToggleFunc(guildId, id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
