package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, name, role, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	role = core.CleanString(role, true /* lower */)

	valid := false
	for _, r := range user.AllRoles {
		if role == r {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Errorf("unknown role %q", role)
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByUsername(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Username:  uname,
			CreatedAt: now,
		}
	}
	usr.Name = name
	usr.Role = role
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
