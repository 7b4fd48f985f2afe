package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core"
	emailsvc "github.com/mbizohigh/chikoro/services/email"
)

func Test_contactApi_send(t *testing.T) {
	tests := []httpTest{
		{
			name: "ok",
			body: marchallObj(t, map[string]string{
				"name": "Nyasha Gumbo", "email": "nyasha@example.com", "message": "When does term start?",
			}),
			wantCode: http.StatusOK, wantData: marchallObj(t, httpErr{Message: "Message sent successfully!"}),
		},
		{
			name:     "missing message",
			body:     marchallObj(t, map[string]string{"name": "Nyasha Gumbo", "email": "nyasha@example.com"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad email",
			body:     marchallObj(t, map[string]string{"name": "Nyasha Gumbo", "email": "not-an-email", "message": "hi"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ClearSentMessages()

			req, rec := newRequest(http.MethodPost, "/api/contact", tt.body)
			app.ServeHTTP(rec, req)
			if tt.wantData == nil {
				assert.Equal(t, tt.wantCode, rec.Code)
				return
			}
			checkCodeAndData(t, tt, rec)

			// forwarded to the school address with the sender on Reply-To
			require.Len(t, emailsvc.SentMessages, 1)
			msg := emailsvc.SentMessages[0]
			assert.Equal(t, core.Conf.ContactEmail, msg.To[0])
			require.NotNil(t, msg.ReplyTo)
			assert.Equal(t, "nyasha@example.com", msg.ReplyTo.Address)
		})
	}
}
