package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/user"
	"github.com/mbizohigh/chikoro/tests"
)

func Test_smsApi_send(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	parent := testutil.CreateUser(t, usrRepo, "Parent", "parent", "", user.RoleParent)
	staffToken := getToken(t, staff)

	body := marchallObj(t, map[string]string{
		"recipient": "+263771234567", "type": "absence", "message": "Your child was absent today.",
	})

	tests := []httpTest{
		{name: "Auth required", body: body, wantCode: http.StatusUnauthorized},
		{name: "Parent forbidden", body: body, token: getToken(t, parent), wantCode: http.StatusForbidden},
		{name: "Missing recipient", body: marchallObj(t, map[string]string{"type": "general", "message": "hi"}), token: staffToken, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/sms", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}

	t.Run("ok, delivered and logged", func(t *testing.T) {
		smsGateway.Sent = nil
		req, rec := newAuthRequest(http.MethodPost, "/api/sms", staffToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var e smslog.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
		assert.Equal(t, smslog.StatusSent, e.Status)
		require.Len(t, smsGateway.Sent, 1)
		assert.Equal(t, "+263771234567", smsGateway.Sent[0].Recipient)
	})

	t.Run("gateway failure is logged, not surfaced", func(t *testing.T) {
		smsGateway.FailWith = errors.New("gateway down")
		defer func() { smsGateway.FailWith = nil }()

		req, rec := newAuthRequest(http.MethodPost, "/api/sms", staffToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var e smslog.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
		assert.Equal(t, smslog.StatusFailed, e.Status)
	})
}

func Test_smsApi_history(t *testing.T) {
	resetDB()

	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	staffToken := getToken(t, staff)

	body := marchallObj(t, map[string]string{
		"recipient": "+263771234567", "type": "general", "message": "Reminder.",
	})
	// push past the history cap
	for i := 0; i < 55; i++ {
		req, rec := newAuthRequest(http.MethodPost, "/api/sms", staffToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req, rec := newAuthRequest(http.MethodGet, "/api/sms", staffToken)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []smslog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 50)
}
