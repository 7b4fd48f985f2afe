package database

import (
	"embed"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/mbizohigh/chikoro/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// connection retry policy: linearly increasing delay, fatal after maxAttempts
const (
	maxPingAttempts = 5
	pingBaseDelay   = time.Second
)

func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", conf.Database.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", MaskURL(conf.Database.URL))
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "pinging database %s", MaskURL(conf.Database.URL))
	}
	return db, nil
}

// ping waits for the database to be ready. Waits a second longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	for attempts := 1; attempts <= maxPingAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempts) * pingBaseDelay)
	}
	return errors.Wrap(err, "DB ping timeout")
}

// MaskURL hides the password in a connection string so it is safe to log.
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.User != nil {
		if _, hasPwd := u.User.Password(); hasPwd {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}
	return u.String()
}

func Migrate(db *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// RunMigration runs an arbitrary goose command (up, down, status, ...)
// against the embedded migrations.
func RunMigration(db *sqlx.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return errors.Wrapf(goose.Run(command, db.DB, "migrations", args...), "running goose %s", command)
}
