package student

import (
	"github.com/mbizohigh/chikoro/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

var AllStatuses = []string{StatusPresent, StatusAbsent, StatusLate}

// ClassCodes lists every recognized class: forms 1-4 streams a-j, plus lower & upper 6.
var ClassCodes = makeClassCodes()

func makeClassCodes() []string {
	codes := make([]string, 0, 42)
	for _, form := range []string{"form1", "form2", "form3", "form4"} {
		for stream := byte('a'); stream <= 'j'; stream++ {
			codes = append(codes, form+string(stream))
		}
	}
	return append(codes, "l6", "u6")
}

func IsValidClass(class string) bool {
	for _, code := range ClassCodes {
		if class == code {
			return true
		}
	}
	return false
}

// Student is the per-class attendance/performance record, distinct from but
// linked to the student's account.
type Student struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"` // empty for seed records
	Name        string `json:"name"`
	Class       string `json:"class"`
	Attendance  int    `json:"attendance"`  // percentage, 0-100
	Performance int    `json:"performance"` // percentage, 0-100
	Status      string `json:"status"`

	// joined from the linked account on reads
	Email string `json:"email,omitempty"`
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name      string `json:"name" validate:"required"`
	StudentID string `json:"student_id" validate:"required,alphanum_"`
	Class     string `json:"class" validate:"required,classcode"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Class = core.CleanString(ns.Class, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Nil/empty fields are left untouched.
type UpdateStudent struct {
	Name        string `json:"name"`
	Class       string `json:"class" validate:"omitempty,classcode"`
	Attendance  *int   `json:"attendance" validate:"omitempty,min=0,max=100"`
	Performance *int   `json:"performance" validate:"omitempty,min=0,max=100"`
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Class = core.CleanString(us.Class, true /* lower */)
	return core.Validate.Struct(us)
}

// MarkAttendance is the attendance-marking request body.
type MarkAttendance struct {
	Status string `json:"status" validate:"required,attendancestatus"`
}

func (ma *MarkAttendance) Validate() error {
	ma.Status = core.CleanString(ma.Status, true /* lower */)
	return core.Validate.Struct(ma)
}
