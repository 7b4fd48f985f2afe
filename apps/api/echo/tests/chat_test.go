package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbizohigh/chikoro/core/chat"
)

func askChat(t *testing.T, message string) (int, string) {
	t.Helper()

	body := marchallObj(t, map[string]string{"message": message})
	req, rec := newRequest(http.MethodPost, "/api/chat", body)
	app.ServeHTTP(rec, req)

	var resp struct {
		Response string `json:"response"`
	}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp.Response
}

func Test_chatApi_cannedReplies(t *testing.T) {
	generator.err = errors.New("inference endpoint down")
	generator.reply = ""
	defer func() { generator.err = nil }()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "fees", message: "How do I pay fees?", want: "pay school fees through our payment portal"},
		{name: "exams", message: "When are the ZIMSEC exams?", want: "Exam timetables are available in the Notices section"},
		{name: "events", message: "when is sports day", want: "Check our School Calendar"},
		{name: "papers", message: "where can I find study notes", want: "past papers, study notes, and revision guides"},
		{name: "attendance", message: "my child was absent", want: "Attendance Tracker"},
		{name: "contact", message: "what is your phone number", want: "info@mbizohigh.ac.zw"},
		{name: "priority: fees beat exams", message: "fee for the exam", want: "payment portal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, response := askChat(t, tt.message)
			require.Equal(t, http.StatusOK, code)
			assert.Contains(t, response, tt.want)
		})
	}

	t.Run("no trigger", func(t *testing.T) {
		code, response := askChat(t, "hello there")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, chat.GenericReply, response)
	})
}

func Test_chatApi_generatedReplies(t *testing.T) {
	generator.err = nil

	t.Run("generic reply gets the matching school fact appended", func(t *testing.T) {
		generator.reply = "Sure, here is what I know."
		code, response := askChat(t, "when is the next event?")
		require.Equal(t, http.StatusOK, code)
		assert.True(t, strings.HasPrefix(response, "Sure, here is what I know."))
		assert.Contains(t, response, "Sports Day is on February 15th")
	})

	t.Run("school-specific reply is passed through", func(t *testing.T) {
		generator.reply = "Mbizo High School offers A-Level sciences."
		code, response := askChat(t, "what subjects do you offer?")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, generator.reply, response)
	})
}

func Test_chatApi_validation(t *testing.T) {
	code, _ := askChat(t, "")
	assert.Equal(t, http.StatusBadRequest, code)
}
