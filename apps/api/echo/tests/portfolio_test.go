package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/user"
	"github.com/mbizohigh/chikoro/tests"
)

func Test_portfolioApi_query(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Tinashe Moyo", "tinashe", "", user.RoleStaff)
	studentUsr := testutil.CreateUser(t, usrRepo, "Rudo Ncube", "rudo", "", user.RoleStudent)

	now := time.Now()
	art := testutil.CreatePortfolio(t, pfRepo, "My Paintings", portfolio.AuthorStudent, studentUsr.ID, now.Add(-time.Hour))
	science := testutil.CreatePortfolio(t, pfRepo, "Science Fair Projects", portfolio.AuthorTeacher, staff.ID, now)
	art.AuthorName = studentUsr.Name
	science.AuthorName = staff.Name

	tests := []httpTest{
		{name: "All", path: "/api/portfolios", wantCode: http.StatusOK, wantData: marchallList(t, science, art)},
		{name: "Students only", path: "/api/portfolios?category=student", wantCode: http.StatusOK, wantData: marchallList(t, art)},
		{name: "Teachers only", path: "/api/portfolios?category=teacher", wantCode: http.StatusOK, wantData: marchallList(t, science)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_portfolioApi_create(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Tinashe Moyo", "tinashe", "", user.RoleStaff)
	studentUsr := testutil.CreateUser(t, usrRepo, "Rudo Ncube", "rudo", "", user.RoleStudent)

	body := marchallObj(t, map[string]string{
		"title": "My Sculptures", "description": "Clay work from this term.", "category": "art",
	})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/portfolios", body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("student publishes under the student showcase", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/portfolios", getToken(t, studentUsr), body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var p portfolio.Portfolio
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, portfolio.AuthorStudent, p.AuthorType)
		assert.Equal(t, studentUsr.ID, p.AuthorID)
	})

	t.Run("staff publishes under the teacher showcase", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/portfolios", getToken(t, staff), body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var p portfolio.Portfolio
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, portfolio.AuthorTeacher, p.AuthorType)
	})

	t.Run("missing description", func(t *testing.T) {
		bad := marchallObj(t, map[string]string{"title": "My Sculptures", "category": "art"})
		req, rec := newAuthRequest(http.MethodPost, "/api/portfolios", getToken(t, staff), bad)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
