package main

import (
	"errors"
	"fmt"
	"net/http"

	"discordpanel/account"
	"discordpanel/bizerror"
	"discordpanel/common"
	"discordpanel/discord"
	"discordpanel/module"
	"discordpanel/modulestate"
	"discordpanel/persistence"
	"discordpanel/sessions"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
)

const (
	VariantGuild  = "guild"
	VariantGlobal = "global"
)

type PanelConfig struct {
	Variant         string `env:"PANEL_VARIANT" envDefault:"guild"`
	ModuleAllowlist string `env:"MODULE_ALLOWLIST"`
	Port            int    `env:"PORT" envDefault:"4000"`
}

func main() {
	common.Log.Info("service start")

	panelConfig := PanelConfig{}
	if err := env.Parse(&panelConfig); err != nil {
		common.Log.Fatalf("parse panel config failed %v", err)
	}
	if panelConfig.Variant != VariantGuild && panelConfig.Variant != VariantGlobal {
		common.Log.Fatalf("unknown panel variant %q", panelConfig.Variant)
	}

	discordConfig, err := discord.ParseConfigFromEnv()
	if err != nil {
		common.Log.Fatalf("parse discord config failed %v", err)
	}
	discord.ActiveConfig = discordConfig

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		common.Log.Fatalf("parse database config failed %v", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			common.Log.Fatalf("failed to prepare database %v", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		common.Log.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration
	db := ds.GormDB()
	if err := db.AutoMigrate(&module.Module{}, &modulestate.ModuleState{}, &account.User{}).Error; err != nil {
		common.Log.Fatalf("database migration failed %v", err)
	}
	if err := db.Model(&modulestate.ModuleState{}).
		AddForeignKey("module_id", "modules(id)", "CASCADE", "CASCADE").Error; err != nil {
		common.Log.Fatalf("database migration failed %v", err)
	}

	allowlist := modulestate.ParseAllowlist(panelConfig.ModuleAllowlist)
	switch panelConfig.Variant {
	case VariantGuild:
		modulestate.ActiveResolver = &modulestate.ScopeOverrideResolver{Allowlist: allowlist}
		if err := seedModules(allowlist); err != nil {
			common.Log.Fatalf("module seeding failed %v", err)
		}
	case VariantGlobal:
		modulestate.ActiveResolver = &modulestate.GlobalDefaultResolver{}
	}

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling())
	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessions.RegisterSessionsRestAPI(engine)
	switch panelConfig.Variant {
	case VariantGuild:
		modulestate.RegisterGuildModulesRestAPI(engine)
	case VariantGlobal:
		module.RegisterModulesRestAPI(engine)
		modulestate.RegisterModuleStatesRestAPI(engine)
	}

	common.Log.Infof("serving %s panel on port %d", panelConfig.Variant, panelConfig.Port)
	if err := engine.Run(fmt.Sprintf(":%d", panelConfig.Port)); err != nil {
		panic(err)
	}
}

// seedModules registers the allow-listed modules that do not exist
// yet, so a fresh guild deployment renders a usable dashboard.
func seedModules(names []string) error {
	for _, name := range names {
		_, err := module.FindModuleByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, bizerror.ErrNotFound) {
			return err
		}
		if _, err := module.CreateModule(module.ModuleCreation{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
