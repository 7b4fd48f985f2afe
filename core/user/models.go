package user

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbizohigh/chikoro/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
	RoleParent  = "parent"
)

var AllRoles = []string{RoleAdmin, RoleStaff, RoleStudent, RoleParent}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	StudentID    string    `json:"student_id,omitempty"` // when Role == student
	Class        string    `json:"class,omitempty"`      // when Role == student
	Children     []string  `json:"children,omitempty"`   // child User IDs, when Role == parent
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStaff() bool   { return u.Role == RoleStaff }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsParent() bool  { return u.Role == RoleParent }

// PublicUser is the subset of User returned on login.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Email:    u.Email,
	}
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username  string   `json:"username" validate:"required,min=4,alphanum_"`
	Password  string   `json:"password" validate:"required,min=6"`
	Role      string   `json:"role" validate:"required,role"`
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
	StudentID string   `json:"student_id"`
	Class     string   `json:"class"`
	Children  []string `json:"children"`
}

func (nu *NewUser) Validate(ctx context.Context, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name     string   `json:"name"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone"`
	Password string   `json:"password" validate:"omitempty,min=6"`
	Children []string `json:"children"`
}

func (uu *UpdateUser) Validate(origUsr User) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}
	uu.Email = core.CleanString(uu.Email, true /* lower */)
	if uu.Email == "" {
		uu.Email = origUsr.Email
	}
	return core.Validate.Struct(uu)
}
