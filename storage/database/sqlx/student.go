package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

type studentRow struct {
	ID          string      `db:"id"`
	Seq         int64       `db:"seq"`
	UserID      null.String `db:"user_id"`
	Name        string      `db:"name"`
	Class       string      `db:"class"`
	Attendance  int         `db:"attendance"`
	Performance int         `db:"performance"`
	Status      string      `db:"status"`
	Email       null.String `db:"email"`
}

// studentSelectQuery joins the linked account for the email column.
const studentSelectQuery = `
	SELECT s.id, s.seq, s.user_id, s.name, s.class, s.attendance, s.performance, s.status, u.email
	FROM student s
	LEFT JOIN "user" u ON u.id = s.user_id`

func (repo studentRepository) unrow(row studentRow) student.Student {
	return student.Student{
		ID:          row.ID,
		UserID:      row.UserID.String,
		Name:        row.Name,
		Class:       row.Class,
		Attendance:  row.Attendance,
		Performance: row.Performance,
		Status:      row.Status,
		Email:       row.Email.String,
	}
}

func (repo studentRepository) unrowSlice(rows []studentRow) []student.Student {
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.unrow(row))
	}
	return students
}

func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) StudentExists(ctx context.Context, name, class string) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM student WHERE name = $1 AND class = $2)`, name, class)
	if err != nil {
		return false, errors.Wrap(err, "checking student existence")
	}
	return exists, nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	st.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO student (id, user_id, name, class, attendance, performance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		st.ID, null.NewString(st.UserID, st.UserID != ""), st.Name, st.Class, st.Attendance, st.Performance, st.Status)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, studentSelectQuery+` ORDER BY s.seq`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return repo.unrowSlice(rows), nil
}

func (repo studentRepository) QueryStudentsByClass(ctx context.Context, class string) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, studentSelectQuery+` WHERE s.class = $1 ORDER BY s.seq`, class); err != nil {
		return nil, errors.Wrap(err, "querying students by class")
	}
	return repo.unrowSlice(rows), nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return student.Student{}, student.ErrNotFound
	}
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, studentSelectQuery+` WHERE s.id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return repo.unrow(row), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE student
		SET name = $2, class = $3, attendance = $4, performance = $5, status = $6
		WHERE id = $1`,
		st.ID, st.Name, st.Class, st.Attendance, st.Performance, st.Status)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return st, nil
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	query, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building student delete query")
	}
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
