package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/mbizohigh/chikoro/core/event"
	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, pwd, role string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, class string,
	attendance, performance int,
) student.Student {
	t.Helper()

	st, err := repo.CreateStudent(context.Background(), student.Student{
		Name:        name,
		Class:       class,
		Attendance:  attendance,
		Performance: performance,
		Status:      student.StatusPresent,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateNotice(t *testing.T, repo notice.Repository, title, content, authorID string, createdAt ...time.Time) notice.Notice {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	n, err := repo.CreateNotice(context.Background(), notice.Notice{
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateNotice() failed: %v", err)
	}
	return n
}

func CreatePayment(t *testing.T, repo payment.Repository, payerID, studentName, studentID string, amount float64, createdAt ...time.Time) payment.Payment {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p, err := repo.CreatePayment(context.Background(), payment.Payment{
		PayerID:     payerID,
		StudentName: studentName,
		StudentID:   studentID,
		PaymentType: "tuition",
		Amount:      amount,
		Phone:       "+263771234567",
		Status:      payment.StatusPending,
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	return p
}

func CreateResource(t *testing.T, repo resource.Repository, title, typ, category, uploaderID string, createdAt ...time.Time) resource.Resource {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	r, err := repo.CreateResource(context.Background(), resource.Resource{
		Title:      title,
		Type:       typ,
		Category:   category,
		Subject:    "Mathematics",
		Year:       2023,
		UploaderID: uploaderID,
		CreatedAt:  tstamp,
	})
	if err != nil {
		t.Fatalf("CreateResource() failed: %v", err)
	}
	return r
}

func CreateEvent(t *testing.T, repo event.Repository, title string, date time.Time, creatorID string) event.Event {
	t.Helper()

	e, err := repo.CreateEvent(context.Background(), event.Event{
		Title:     title,
		Date:      date,
		Type:      "academic",
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	return e
}

func CreatePortfolio(t *testing.T, repo portfolio.Repository, title, authorType, authorID string, createdAt ...time.Time) portfolio.Portfolio {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p, err := repo.CreatePortfolio(context.Background(), portfolio.Portfolio{
		AuthorID:    authorID,
		AuthorType:  authorType,
		Title:       title,
		Description: "showcase entry",
		Category:    "art",
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreatePortfolio() failed: %v", err)
	}
	return p
}
