package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

// join fills in account-backed fields the way the SQL store's LEFT JOIN does.
func (repo *studentRepository) join(st student.Student) student.Student {
	if st.UserID == "" {
		return st
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[st.UserID]; ok {
		st.Email = usr.Email
	}
	return st
}

func (repo *studentRepository) query() []student.Student {
	t := repo.db.student
	students := make([]student.Student, 0, len(t.table))
	for _, st := range t.table {
		students = append(students, repo.join(*st))
	}
	sort.Slice(students, func(i, j int) bool { return t.seq[students[i].ID] < t.seq[students[j].ID] })
	return students
}

func (repo *studentRepository) StudentExists(ctx context.Context, name, class string) (bool, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()

	for _, st := range repo.db.student.table {
		if st.Name == name && st.Class == class {
			return true, nil
		}
	}
	return false, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	st.ID = uuid.New().String()
	repo.db.student.next++
	repo.db.student.seq[st.ID] = repo.db.student.next
	repo.db.student.table[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) QueryStudentsByClass(ctx context.Context, class string) ([]student.Student, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, st := range repo.query() {
		if st.Class == class {
			students = append(students, st)
		}
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()

	if st, ok := repo.db.student.table[id]; ok {
		return repo.join(*st), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	if _, ok := repo.db.student.table[st.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.student.table[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.student.table, id)
		delete(repo.db.student.seq, id)
	}
	return nil
}
