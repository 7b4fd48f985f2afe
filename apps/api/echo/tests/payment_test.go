package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/user"
	"github.com/mbizohigh/chikoro/tests"
)

func Test_paymentApi_create(t *testing.T) {
	resetDB()

	parent := testutil.CreateUser(t, usrRepo, "Parent", "parent", "", user.RoleParent)
	parentToken := getToken(t, parent)

	newPayment := func(studentName string, amount float64) []byte {
		return marchallObj(t, map[string]interface{}{
			"student_name": studentName, "student_id": "STU100", "payment_type": "tuition",
			"amount": amount, "phone": "+263771234567",
		})
	}

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/payments", newPayment("Tendai Moyo", 50))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ok, settles in the store", func(t *testing.T) {
		payProcessor.Result = payment.ProcessResult{Success: true, TransactionID: "TXN42"}
		payProcessor.Err = nil

		req, rec := newAuthRequest(http.MethodPost, "/api/payments", parentToken, newPayment("Tendai Moyo", 50))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		// the response is the payment as initially recorded
		var p payment.Payment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, payment.StatusPending, p.Status)
		assert.Empty(t, p.TransactionID)
		assert.Equal(t, parent.ID, p.PayerID)

		// the stored record carries the settlement
		stored, err := payRepo.QueryPaymentsByPayer(context.Background(), parent.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, payment.StatusCompleted, stored[0].Status)
		assert.Equal(t, "TXN42", stored[0].TransactionID)
	})

	t.Run("gateway failure leaves the record pending", func(t *testing.T) {
		resetDB()
		parent := testutil.CreateUser(t, usrRepo, "Parent", "parent", "", user.RoleParent)
		payProcessor.Err = errors.New("gateway unreachable")
		defer func() { payProcessor.Err = nil }()

		req, rec := newAuthRequest(http.MethodPost, "/api/payments", getToken(t, parent), newPayment("Tendai Moyo", 50))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		stored, err := payRepo.QueryPaymentsByPayer(context.Background(), parent.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, payment.StatusPending, stored[0].Status)
	})

	tests := []httpTest{
		{name: "zero amount", body: newPayment("Tendai Moyo", 0), wantCode: http.StatusBadRequest},
		{name: "negative amount", body: newPayment("Tendai Moyo", -5), wantCode: http.StatusBadRequest},
		{name: "missing student name", body: newPayment("", 50), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/payments", parentToken, tt.body)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func Test_paymentApi_query(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "", user.RoleAdmin)
	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "", user.RoleStaff)
	parent1 := testutil.CreateUser(t, usrRepo, "Parent One", "parent1", "", user.RoleParent)
	parent2 := testutil.CreateUser(t, usrRepo, "Parent Two", "parent2", "", user.RoleParent)

	p1 := testutil.CreatePayment(t, payRepo, parent1.ID, "Tendai Moyo", "STU100", 50)
	p2 := testutil.CreatePayment(t, payRepo, parent2.ID, "Rudo Ncube", "STU101", 75)

	// PayerName is joined on the admin listing only
	p1Own := p1
	p1.PayerName = parent1.Name
	p2.PayerName = parent2.Name

	tests := []httpTest{
		{name: "Auth required", path: "/api/payments", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Admin sees all", path: "/api/payments", token: getToken(t, admin), wantCode: http.StatusOK, wantData: marchallList(t, p1, p2)},
		{name: "Staff sees all", path: "/api/payments", token: getToken(t, staff), wantCode: http.StatusOK, wantData: marchallList(t, p1, p2)},
		{name: "Payer sees own", path: "/api/payments", token: getToken(t, parent1), wantCode: http.StatusOK, wantData: marchallList(t, p1Own)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
