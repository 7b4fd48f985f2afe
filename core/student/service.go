package student

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/user"
)

// DefaultPassword is the credential synthesized for accounts created on enrollment.
// Students are expected to change it on first login.
const DefaultPassword = "student123"

// Defaults applied on enrollment.
const (
	defaultAttendance  = 100
	defaultPerformance = 75
)

var (
	// errors
	ErrNotFound      = errors.New("student not found")
	ErrStudentExists = errors.New("a student with this name already exists in this class")
)

type (
	Repository interface {
		StudentExists(ctx context.Context, name, class string) (bool, error)
		CreateStudent(ctx context.Context, st Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		QueryStudentsByClass(ctx context.Context, class string) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
	}
)

func NewService(repo Repository, usrRepo user.Repository) *Service {
	return &Service{repo: repo, usrRepo: usrRepo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) QueryByClass(ctx context.Context, class string) ([]Student, error) {
	return svc.repo.QueryStudentsByClass(ctx, core.CleanString(class, true /* lower */))
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// Create enrolls a new Student: a record plus a linked account with a default
// credential. A (name, class) pair may only be enrolled once.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	exists, err := svc.repo.StudentExists(ctx, ns.Name, ns.Class)
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "checking student uniqueness")
	}
	if exists {
		return Student{}, core.NewValidationError(ErrStudentExists, core.FieldError{Field: "name", Error: ErrStudentExists.Error()})
	}

	username := strings.ToLower(ns.StudentID)
	if err := svc.usrRepo.CheckUsernameUniqueness(ctx, username); err != nil {
		if err == user.ErrUsernameExists {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "student_id", Error: err.Error()})
		}
		return Student{}, err
	}

	now := time.Now().UTC()
	usr := user.User{
		Username:  username,
		Name:      ns.Name,
		Role:      user.RoleStudent,
		Email:     ns.Email,
		Phone:     ns.Phone,
		StudentID: ns.StudentID,
		Class:     ns.Class,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(DefaultPassword); err != nil {
		return Student{}, err
	}
	usr, err = svc.usrRepo.CreateUser(ctx, usr)
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "creating student account")
	}

	st := Student{
		UserID:      usr.ID,
		Name:        ns.Name,
		Class:       ns.Class,
		Attendance:  defaultAttendance,
		Performance: defaultPerformance,
		Status:      StatusPresent,
		Email:       usr.Email,
	}
	return svc.repo.CreateStudent(ctx, st)
}

// CreateForUser attaches a fresh record to an already registered student account.
func (svc *Service) CreateForUser(ctx context.Context, usr user.User) (Student, error) {
	st := Student{
		UserID: usr.ID,
		Name:   usr.Name,
		Class:  usr.Class,
		Status: StatusPresent,
		Email:  usr.Email,
	}
	return svc.repo.CreateStudent(ctx, st)
}

// Update modifies a record and propagates name/class changes into the linked account.
func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	if us.Name != "" {
		st.Name = us.Name
	}
	if us.Class != "" {
		st.Class = us.Class
	}
	if us.Attendance != nil {
		st.Attendance = *us.Attendance
	}
	if us.Performance != nil {
		st.Performance = *us.Performance
	}

	st, err = svc.repo.UpdateStudent(ctx, st)
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "updating student")
	}

	if st.UserID != "" {
		usr, err := svc.usrRepo.GetUserByID(ctx, st.UserID)
		if err != nil {
			return Student{}, pkgerrors.Wrap(err, "finding student account")
		}
		usr.Name = st.Name
		usr.Class = st.Class
		usr.UpdatedAt = time.Now().UTC()
		if _, err := svc.usrRepo.UpdateUser(ctx, usr); err != nil {
			return Student{}, pkgerrors.Wrap(err, "updating student account")
		}
	}
	return st, nil
}

// Delete removes a record along with its linked account.
// Both deletes must succeed for the operation to be reported successful.
func (svc *Service) Delete(ctx context.Context, id string) error {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}
	if st.UserID != "" {
		if err := svc.usrRepo.DeleteUsersByID(ctx, st.UserID); err != nil {
			return pkgerrors.Wrap(err, "deleting student account")
		}
	}
	return svc.repo.DeleteStudentsByID(ctx, id)
}

// MarkAttendance sets today's status on a record. Re-marking the same status is a no-op.
func (svc *Service) MarkAttendance(ctx context.Context, id, status string) (Student, error) {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if st.Status == status {
		return st, nil
	}
	st.Status = status
	return svc.repo.UpdateStudent(ctx, st)
}
