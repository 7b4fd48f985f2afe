package main

import (
	"context"

	"github.com/mbizohigh/chikoro/core/seed"
	sqlxrepos "github.com/mbizohigh/chikoro/storage/database/sqlx"
)

func (cli *commandLine) seed() error {
	repos := seed.Repos{
		User:     cli.usrRepo,
		Student:  cli.stdRepo,
		Notice:   sqlxrepos.NewNoticeRepository(cli.db),
		Resource: sqlxrepos.NewResourceRepository(cli.db),
	}
	return seed.Run(context.Background(), repos)
}
