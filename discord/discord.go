package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"discordpanel/bizerror"
	"discordpanel/common"

	"github.com/caarlos0/env/v11"
	"golang.org/x/oauth2"
)

// BaseURL is swapped out by tests to point at a fake provider.
var BaseURL = "https://discord.com/api"

// PermManageGuild is the Discord MANAGE_GUILD permission bit.
const PermManageGuild = 0x20

type Config struct {
	ClientID     string `env:"DISCORD_CLIENT_ID"`
	ClientSecret string `env:"DISCORD_CLIENT_SECRET"`
	RedirectURI  string `env:"DISCORD_REDIRECT_URI" envDefault:"http://localhost:5173/login"`
}

var ActiveConfig = &Config{}

func ParseConfigFromEnv() (*Config, error) {
	c := Config{}
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

type UserInfo struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Email         string `json:"email"`
}

func (u UserInfo) DisplayName() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

type TokenData struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

type Guild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Owner       bool   `json:"owner"`
	Permissions string `json:"permissions"`
}

func (g Guild) CanManage() bool {
	perms, err := strconv.ParseInt(g.Permissions, 10, 64)
	if err != nil {
		return false
	}
	return perms&PermManageGuild == PermManageGuild
}

var (
	ExchangeCodeFunc      = ExchangeCode
	ListManagedGuildsFunc = ListManagedGuilds
)

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     ActiveConfig.ClientID,
		ClientSecret: ActiveConfig.ClientSecret,
		RedirectURL:  ActiveConfig.RedirectURI,
		Scopes:       []string{"identify", "email", "guilds"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   BaseURL + "/oauth2/authorize",
			TokenURL:  BaseURL + "/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// ExchangeCode trades an authorization code for the principal's
// identity and bearer credential. Provider rejections keep their
// upstream status; failures are never retried here.
func ExchangeCode(ctx context.Context, code string) (*UserInfo, *TokenData, error) {
	token, err := oauthConfig().Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, nil, &bizerror.ErrProvider{Status: retrieveErr.Response.StatusCode,
				Message: "discord token exchange failed", Cause: err}
		}
		return nil, nil, &bizerror.ErrTransient{Cause: err}
	}

	tokenData := &TokenData{AccessToken: token.AccessToken, TokenType: token.TokenType,
		RefreshToken: token.RefreshToken}
	if !token.Expiry.IsZero() {
		tokenData.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}
	if scope, ok := token.Extra("scope").(string); ok {
		tokenData.Scope = scope
	}

	user, err := fetchCurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return user, tokenData, nil
}

// ListManagedGuilds returns the guilds where the principal holds the
// manage permission. The list is advisory input for scope selection.
func ListManagedGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	body, err := invokeAPI(ctx, "/users/@me/guilds", accessToken)
	if err != nil {
		return nil, err
	}
	var guilds []Guild
	if err := json.Unmarshal([]byte(body), &guilds); err != nil {
		return nil, err
	}

	managed := []Guild{}
	for _, g := range guilds {
		if g.CanManage() {
			managed = append(managed, g)
		}
	}
	return managed, nil
}

func fetchCurrentUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	body, err := invokeAPI(ctx, "/users/@me", accessToken)
	if err != nil {
		return nil, err
	}
	var user UserInfo
	if err := json.Unmarshal([]byte(body), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func invokeAPI(ctx context.Context, path, accessToken string) (string, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+accessToken)
	body, err := common.HttpInvokeJson(ctx, http.MethodGet, BaseURL+path, headers, "")
	if err != nil {
		var invokeErr *common.ErrHttpInvoke
		if errors.As(err, &invokeErr) && invokeErr.StatusCode != 0 {
			return "", &bizerror.ErrProvider{Status: invokeErr.StatusCode,
				Message: "discord api rejected request", Cause: err}
		}
		return "", &bizerror.ErrTransient{Cause: err}
	}
	return body, nil
}
