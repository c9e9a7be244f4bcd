package main

import (
	"errors"
	"fmt"

	"github.com/tujenge/mipango/core"
	"github.com/tujenge/mipango/storage/database"
)

var (
	createDBFunc = database.CreateIfNotExist // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb                 - create the application user and database if missing")
	fmt.Println("  migrate up|down|status   - apply, roll back or inspect schema migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return createDBFunc(cli.conf)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2])
	default:
		cli.printUsage()
		return errHelp
	}
}
