package persistence

import (
	"database/sql"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

type DatabaseConfig struct {
	DriverType string `env:"DATABASE_DRIVER" envDefault:"mysql"`
	DriverArgs string `env:"DATABASE_URL" envDefault:"root:root@(127.0.0.1:3306)/discord_panel?charset=utf8mb4&parseTime=True&loc=Local"`
}

func ParseDatabaseConfigFromEnv() (*DatabaseConfig, error) {
	c := DatabaseConfig{}
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PrepareMysqlDatabase creates the target database when it does not
// exist yet, connecting without a schema selected.
func PrepareMysqlDatabase(driverArgs string) error {
	cfg, err := mysql.ParseDSN(driverArgs)
	if err != nil {
		return err
	}
	databaseName := cfg.DBName
	cfg.DBName = ""

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` CHARACTER SET utf8mb4")
	return err
}
