// Package seed populates an empty store with demo accounts, a full roster of
// synthetic students, and starter notices and resources. It runs once at
// process start and is a no-op whenever any account already exists.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

// DefaultPassword is shared by all demo accounts.
const DefaultPassword = "password123"

var sampleNames = []string{
	"Tafadzwa Moyo", "Rutendo Ncube", "Tinashe Dube", "Chipo Mlambo",
	"Farai Sibanda", "Rumbi Chikwava",
}

type Repos struct {
	User     user.Repository
	Student  student.Repository
	Notice   notice.Repository
	Resource resource.Repository
}

// Run seeds the store if no account exists yet. It must not be invoked
// concurrently with itself.
func Run(ctx context.Context, repos Repos) error {
	count, err := repos.User.CountUsers(ctx)
	if err != nil {
		return errors.Wrap(err, "counting users")
	}
	if count > 0 {
		return nil
	}

	admin, err := createUser(ctx, repos.User, user.User{
		Username: "admin",
		Role:     user.RoleAdmin,
		Name:     "School Administrator",
		Email:    "admin@mbizohigh.ac.zw",
	})
	if err != nil {
		return err
	}
	if _, err = createUser(ctx, repos.User, user.User{
		Username: "teacher1",
		Role:     user.RoleStaff,
		Name:     "Mrs. Chikwava",
		Email:    "chikwava@mbizohigh.ac.zw",
	}); err != nil {
		return err
	}
	if _, err = createUser(ctx, repos.User, user.User{
		Username:  "student1",
		Role:      user.RoleStudent,
		Name:      "Tafadzwa Moyo",
		Email:     "tafadzwa@student.mbizo.ac.zw",
		StudentID: "STU001",
		Class:     "form4a",
	}); err != nil {
		return err
	}

	// five synthetic students per class, no linked accounts
	for _, class := range student.ClassCodes {
		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("%s %s %d", sampleNames[i%len(sampleNames)], class, i)
			st := student.Student{
				Name:        name,
				Class:       class,
				Attendance:  rand.Intn(20) + 80,
				Performance: rand.Intn(30) + 70,
				Status:      student.StatusPresent,
			}
			if _, err := repos.Student.CreateStudent(ctx, st); err != nil {
				return errors.Wrap(err, "seeding students")
			}
		}
	}

	notices := []notice.Notice{
		{
			Title:   "Welcome Back to Term 1",
			Content: "School reopens on January 9th, 2025. All students should report by 8:00 AM.",
		},
		{
			Title: "ZIMSEC Exam Registration",
			Content: "Registration for November 2025 ZIMSEC examinations is now open. " +
				"All Form 4 students must register by March 31st.",
		},
		{
			Title:   "Parent-Teacher Meeting",
			Content: "The first Parent-Teacher meeting of the term will be held on February 15th, 2025 at 2:00 PM.",
		},
	}
	for _, n := range notices {
		n.AuthorID = admin.ID
		n.CreatedAt = time.Now().UTC()
		if _, err := repos.Notice.CreateNotice(ctx, n); err != nil {
			return errors.Wrap(err, "seeding notices")
		}
	}

	resources := []resource.Resource{
		{Title: "Mathematics Paper 1 - 2024", Type: resource.TypePastPaper, Category: "Mathematics", Subject: "Mathematics", Year: 2024, FileURL: "https://example.com/math-paper-1-2024.pdf"},
		{Title: "English Literature Notes", Type: resource.TypeStudyNotes, Category: "English", Subject: "English Literature", Year: 2024, FileURL: "https://example.com/english-lit-notes.pdf"},
		{Title: "Chemistry Practical Guide", Type: resource.TypeStudyNotes, Category: "Science", Subject: "Chemistry", Year: 2024, FileURL: "https://example.com/chemistry-practical-guide.pdf"},
		{Title: "History Revision Questions", Type: resource.TypePastPaper, Category: "History", Subject: "History", Year: 2023, FileURL: "https://example.com/history-revision-questions.pdf"},
		{Title: "Geography Map Work", Type: resource.TypeStudyNotes, Category: "Geography", Subject: "Geography", Year: 2024, FileURL: "https://example.com/geography-map-work.pdf"},
		{Title: "Physics Formula Sheet", Type: resource.TypeStudyNotes, Category: "Science", Subject: "Physics", Year: 2024, FileURL: "https://example.com/physics-formula-sheet.pdf"},
	}
	for _, r := range resources {
		r.UploaderID = admin.ID
		r.CreatedAt = time.Now().UTC()
		if _, err := repos.Resource.CreateResource(ctx, r); err != nil {
			return errors.Wrap(err, "seeding resources")
		}
	}

	return nil
}

func createUser(ctx context.Context, repo user.Repository, usr user.User) (user.User, error) {
	now := time.Now().UTC()
	usr.CreatedAt = now
	usr.UpdatedAt = now
	if err := usr.SetPassword(DefaultPassword); err != nil {
		return user.User{}, errors.Wrap(err, "hashing seed password")
	}
	usr, err := repo.CreateUser(ctx, usr)
	return usr, errors.Wrap(err, "seeding users")
}
