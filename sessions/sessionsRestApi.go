package sessions

import (
	"net/http"
	"time"

	"discordpanel/account"
	"discordpanel/bizerror"
	"discordpanel/discord"
	"discordpanel/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var (
	PathAuthExchange = "/api/auth/discord/exchange"
	PathGuilds       = "/api/guilds"

	// managed-guild lists change rarely; avoid hammering the provider
	// on every dashboard render
	guildCache = cache.New(1*time.Minute, 1*time.Minute)

	// Discord rate limits the token endpoint per application
	exchangeLimiter = rate.NewLimiter(rate.Every(time.Second), 10)
)

type ExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

func RegisterSessionsRestAPI(r *gin.Engine) {
	r.POST(PathAuthExchange, HandleExchange)
	r.DELETE("/api/auth/session", HandleLogout)

	g := r.Group(PathGuilds, session.SimpleAuthFilter())
	g.GET("", handleQueryManagedGuilds)
}

// HandleExchange trades the authorization code for a Discord identity,
// upserts the account record and opens a panel session.
func HandleExchange(c *gin.Context) {
	req := ExchangeRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if !exchangeLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"code": "common.rate_limited", "message": "too many exchange requests"})
		return
	}

	user, tokenData, err := discord.ExchangeCodeFunc(c.Request.Context(), req.Code)
	if err != nil {
		panic(err)
	}

	record, err := account.UpsertUserFunc(user.ID, user.DisplayName(), user.Avatar,
		tokenData.AccessToken, tokenData.RefreshToken)
	if err != nil {
		panic(err)
	}

	token := uuid.New().String()
	securityContext := session.Session{Token: token,
		Identity: session.Identity{ID: record.ID, DiscordID: record.DiscordID,
			Name: record.Username, Avatar: record.Avatar},
		AccessToken: tokenData.AccessToken, SigningTime: time.Now()}
	session.TokenCache.Set(token, &securityContext, cache.DefaultExpiration)

	c.SetCookie(session.KeySecToken, token, int(session.TokenExpiration/time.Second), "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"user": user, "tokenData": tokenData})
}

func HandleLogout(c *gin.Context) {
	token, _ := c.Cookie(session.KeySecToken) // ErrNoCookie
	if token != "" {
		session.TokenCache.Delete(token)
		guildCache.Delete(token)
	}
	c.SetCookie(session.KeySecToken, "", -1, "/", "", false, false)
	c.AbortWithStatus(http.StatusNoContent)
}

func handleQueryManagedGuilds(c *gin.Context) {
	secCtx := session.FindSecurityContext(c)
	if secCtx == nil {
		panic(bizerror.ErrUnauthenticated)
	}

	if cached, found := guildCache.Get(secCtx.Token); found {
		if guilds, ok := cached.([]discord.Guild); ok {
			c.JSON(http.StatusOK, guilds)
			return
		}
	}

	guilds, err := discord.ListManagedGuildsFunc(c.Request.Context(), secCtx.AccessToken)
	if err != nil {
		panic(err)
	}
	guildCache.Set(secCtx.Token, guilds, cache.DefaultExpiration)
	c.JSON(http.StatusOK, guilds)
}
