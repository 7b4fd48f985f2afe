package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
	"github.com/mbizohigh/chikoro/tests"
)

func Test_studentApi_query(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "", user.RoleAdmin)
	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	studentUsr := testutil.CreateUser(t, usrRepo, "Student", "student", "", user.RoleStudent)
	parent := testutil.CreateUser(t, usrRepo, "Parent", "parent", "", user.RoleParent)

	st1 := testutil.CreateStudent(t, stdRepo, "Tendai Moyo", "form1a", 95, 80)
	st2 := testutil.CreateStudent(t, stdRepo, "Rudo Ncube", "form1a", 88, 72)
	st3 := testutil.CreateStudent(t, stdRepo, "Farai Sibanda", "u6", 91, 85)

	tests := []httpTest{
		{name: "Auth required", path: "/api/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Invalid token", path: "/api/students", token: "not.a.token", wantCode: http.StatusForbidden, wantData: marchallObj(t, errInvalidToken)},
		{name: "Student forbidden", path: "/api/students", token: getToken(t, studentUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Parent forbidden", path: "/api/students", token: getToken(t, parent), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Admin gets all", path: "/api/students", token: getToken(t, admin), wantCode: http.StatusOK, wantData: marchallList(t, st1, st2, st3)},
		{name: "Staff gets all", path: "/api/students", token: getToken(t, staff), wantCode: http.StatusOK, wantData: marchallList(t, st1, st2, st3)},
		{name: "By class", path: "/api/students/form1a", token: getToken(t, staff), wantCode: http.StatusOK, wantData: marchallList(t, st1, st2)},
		{name: "By class (upper six)", path: "/api/students/u6", token: getToken(t, staff), wantCode: http.StatusOK, wantData: marchallList(t, st3)},
		{name: "By class (empty)", path: "/api/students/form4j", token: getToken(t, staff), wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_create(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	staffToken := getToken(t, staff)

	newStudent := func(name, studentID, class string) []byte {
		return marchallObj(t, map[string]string{"name": name, "student_id": studentID, "class": class})
	}

	t.Run("ok with defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/students", staffToken, newStudent("Tendai Moyo", "STU100", "form3c"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var st student.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
		assert.Equal(t, 100, st.Attendance)
		assert.Equal(t, 75, st.Performance)
		assert.Equal(t, student.StatusPresent, st.Status)

		// a linked account exists, username is the lowercased student id
		usr, err := usrRepo.GetUserByUsername(context.Background(), "stu100")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, st.UserID)
		assert.Equal(t, user.RoleStudent, usr.Role)
		assert.NoError(t, usr.CheckPassword(student.DefaultPassword))
	})

	tests := []httpTest{
		{
			name: "duplicate name in same class", body: newStudent("Tendai Moyo", "STU101", "form3c"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Message: "a student with this name already exists in this class"}),
		},
		{
			name: "duplicate student id", body: newStudent("Kuda Dube", "STU100", "form1a"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Message: "a user with this username already exists"}),
		},
		{name: "missing name", body: newStudent("", "STU102", "form1a"), wantCode: http.StatusBadRequest},
		{name: "unknown class", body: newStudent("Kuda Dube", "STU102", "form5z"), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/students", staffToken, tt.body)
			app.ServeHTTP(rec, req)
			if tt.wantData == nil {
				assert.Equal(t, tt.wantCode, rec.Code)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("same name allowed in another class", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/students", staffToken, newStudent("Tendai Moyo", "STU103", "form4a"))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("forbidden role does not enroll", func(t *testing.T) {
		parent := testutil.CreateUser(t, usrRepo, "Parent", "parent", "", user.RoleParent)
		req, rec := newAuthRequest(http.MethodPost, "/api/students", getToken(t, parent), newStudent("Blessing Zhou", "STU200", "form1a"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)

		exists, err := stdRepo.StudentExists(context.Background(), "Blessing Zhou", "form1a")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func Test_studentApi_update(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "", user.RoleAdmin)
	adminToken := getToken(t, admin)

	// enroll via the service so a linked account exists
	req, rec := newAuthRequest(http.MethodPost, "/api/students", adminToken,
		marchallObj(t, map[string]string{"name": "Tendai Moyo", "student_id": "STU300", "class": "form2a"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var st student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))

	t.Run("ok, propagates to the account", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"name": "Tendai M. Moyo", "class": "form2b", "attendance": 90})
		req, rec := newAuthRequest(http.MethodPut, "/api/students/"+st.ID, adminToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated student.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Tendai M. Moyo", updated.Name)
		assert.Equal(t, "form2b", updated.Class)
		assert.Equal(t, 90, updated.Attendance)
		assert.Equal(t, 75, updated.Performance) // untouched

		usr, err := usrRepo.GetUserByID(context.Background(), st.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Tendai M. Moyo", usr.Name)
		assert.Equal(t, "form2b", usr.Class)
	})

	t.Run("attendance out of range", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"attendance": 101})
		req, rec := newAuthRequest(http.MethodPut, "/api/students/"+st.ID, adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"name": "Nobody"})
		req, rec := newAuthRequest(http.MethodPut, "/api/students/8b9f09e2-66b5-4e47-8d46-3a17362b7ba8", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_studentApi_markAttendance(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	staffToken := getToken(t, staff)
	st := testutil.CreateStudent(t, stdRepo, "Farai Sibanda", "l6", 95, 80)

	mark := func(id, status string) *http.Response {
		body := marchallObj(t, map[string]string{"status": status})
		req, rec := newAuthRequest(http.MethodPut, "/api/students/"+id+"/attendance", staffToken, body)
		app.ServeHTTP(rec, req)
		return rec.Result()
	}

	t.Run("ok", func(t *testing.T) {
		res := mark(st.ID, "absent")
		require.Equal(t, http.StatusOK, res.StatusCode)
		got, err := stdRepo.GetStudentByID(context.Background(), st.ID)
		require.NoError(t, err)
		assert.Equal(t, student.StatusAbsent, got.Status)
	})

	t.Run("idempotent re-mark", func(t *testing.T) {
		res := mark(st.ID, "absent")
		require.Equal(t, http.StatusOK, res.StatusCode)
		got, err := stdRepo.GetStudentByID(context.Background(), st.ID)
		require.NoError(t, err)
		assert.Equal(t, student.StatusAbsent, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		res := mark(st.ID, "sleeping")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		res := mark("8b9f09e2-66b5-4e47-8d46-3a17362b7ba8", "late")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func Test_studentApi_destroy(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "", user.RoleAdmin)
	adminToken := getToken(t, admin)

	req, rec := newAuthRequest(http.MethodPost, "/api/students", adminToken,
		marchallObj(t, map[string]string{"name": "Kuda Dube", "student_id": "STU400", "class": "form4j"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var st student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))

	t.Run("ok, cascades to the account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/students/"+st.ID, adminToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := stdRepo.GetStudentByID(context.Background(), st.ID)
		assert.Equal(t, student.ErrNotFound, err)
		_, err = usrRepo.GetUserByID(context.Background(), st.UserID)
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/students/"+st.ID, adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
