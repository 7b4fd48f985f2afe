package seed_test

import (
	"context"
	"testing"

	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/seed"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
	inmemdb "github.com/mbizohigh/chikoro/storage/database/inmem"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	repos := seed.Repos{
		User:     inmemdb.NewUserRepository(db),
		Student:  inmemdb.NewStudentRepository(db),
		Notice:   inmemdb.NewNoticeRepository(db),
		Resource: inmemdb.NewResourceRepository(db),
	}

	if err := seed.Run(ctx, repos); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	users, err := repos.User.QueryAllUsers(ctx)
	if err != nil {
		t.Fatalf("QueryAllUsers() failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("seeded %d users, want 3", len(users))
	}

	students, err := repos.Student.QueryAllStudents(ctx)
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	if want := 5 * len(student.ClassCodes); len(students) != want {
		t.Errorf("seeded %d students, want %d", len(students), want)
	}

	notices, err := repos.Notice.QueryAllNotices(ctx)
	if err != nil {
		t.Fatalf("QueryAllNotices() failed: %v", err)
	}
	if len(notices) != 3 {
		t.Errorf("seeded %d notices, want 3", len(notices))
	}

	resources, err := repos.Resource.FilterResources(ctx, resource.QueryFilter{})
	if err != nil {
		t.Fatalf("FilterResources() failed: %v", err)
	}
	if len(resources) != 6 {
		t.Errorf("seeded %d resources, want 6", len(resources))
	}

	t.Run("demo accounts can log in", func(t *testing.T) {
		admin, err := repos.User.GetUserByUsername(ctx, "admin")
		if err != nil {
			t.Fatalf("GetUserByUsername() failed: %v", err)
		}
		if admin.Role != user.RoleAdmin {
			t.Errorf("admin role = %s, want %s", admin.Role, user.RoleAdmin)
		}
		if err := admin.CheckPassword(seed.DefaultPassword); err != nil {
			t.Error("admin account was not given the default password")
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		if err := seed.Run(ctx, repos); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		again, err := repos.User.QueryAllUsers(ctx)
		if err != nil {
			t.Fatalf("QueryAllUsers() failed: %v", err)
		}
		if len(again) != len(users) {
			t.Errorf("second run created users: %d, want %d", len(again), len(users))
		}
	})
}

func TestRun_populatesNotices(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	repos := seed.Repos{
		User:     inmemdb.NewUserRepository(db),
		Student:  inmemdb.NewStudentRepository(db),
		Notice:   inmemdb.NewNoticeRepository(db),
		Resource: inmemdb.NewResourceRepository(db),
	}
	if err := seed.Run(ctx, repos); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	admin, err := repos.User.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	notices, err := repos.Notice.QueryAllNotices(ctx)
	if err != nil {
		t.Fatalf("QueryAllNotices() failed: %v", err)
	}
	for _, n := range notices {
		if n.AuthorID != admin.ID {
			t.Errorf("notice %q author = %s, want the admin account", n.Title, n.AuthorID)
		}
	}
}
