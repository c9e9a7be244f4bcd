package main

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tujenge/mipango/core"
	"github.com/tujenge/mipango/storage/database"
)

// mockable
var (
	openDBFunc          = func(conf *core.Config) (*sqlx.DB, error) { return database.Open(conf) }
	pingFunc            = database.Ping
	migrateFunc         = database.Migrate
	migrateDownFunc     = database.MigrateDown
	migrationStatusFunc = database.MigrationStatus
)

func (cli *commandLine) migrate(direction string) error {
	var run func(*sql.DB) error
	switch direction {
	case "up":
		run = migrateFunc
	case "down":
		run = migrateDownFunc
	case "status":
		run = migrationStatusFunc
	default:
		return fmt.Errorf("%q: no such migrate direction", direction)
	}

	db, err := openDBFunc(cli.conf)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = pingFunc(db); err != nil {
		return err
	}
	return run(db.DB)
}
