package main

import (
	"github.com/mbizohigh/chikoro/storage/database"
)

var runMigrationFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	command := args[0]
	return runMigrationFunc(cli.db, command, args[1:]...)
}
