package main

import (
	"github.com/ekta-foundation/casebook/storage/database"
)

var gooseRunFunc = database.Migrate // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errDBRequired
	}
	return gooseRunFunc(cli.db, args[0], args[1:]...)
}
