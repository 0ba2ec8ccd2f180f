package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type recordingEvents struct {
	store.EventRepo
	answers []store.AnswerEventData
}

func (r *recordingEvents) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	r.answers = append(r.answers, data)
	return nil
}

func newTestServer(provider llm.Provider, opts ...Option) http.Handler {
	t := tutor.New(provider, tutor.WithClock(func() time.Time { return fixedNow }))
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(t, config.Default().Server, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeBody[healthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, healthMessage, resp.Message)
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "API endpoint not found", decodeBody[errorResponse](t, rec).Detail)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodOptions, "/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestBadJSON(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/planting/count", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Detail, "invalid request body")
}

func TestCount(t *testing.T) {
	h := newTestServer(nil)

	tests := []struct {
		name     string
		body     string
		count    int
		feasible bool
	}{
		{"both ends", `{"length":100,"interval":10,"mode":"both","shape":"segment"}`, 11, true},
		{"no ends", `{"length":100,"interval":10,"mode":"none","shape":"segment"}`, 9, true},
		{"one end", `{"length":100,"interval":10,"mode":"one","shape":"segment"}`, 10, true},
		{"square", `{"length":20,"interval":5,"mode":"loop","shape":"square"}`, 16, true},
		{"lenient circle", `{"length":62,"interval":5,"mode":"loop","shape":"circle"}`, 12, true},
		{"strict circle", `{"length":62,"interval":5,"mode":"loop","shape":"circle","strict":true}`, 0, false},
		{"segment remainder", `{"length":100,"interval":7,"mode":"both","shape":"segment"}`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/planting/count", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			resp := decodeBody[countResponse](t, rec)
			assert.Equal(t, tt.count, resp.Count)
			assert.Equal(t, tt.feasible, resp.Feasible)
			assert.Equal(t, !tt.feasible, resp.Reason != "")
			assert.NotEmpty(t, resp.Steps)
		})
	}
}

func TestCount_InvalidParameters(t *testing.T) {
	h := newTestServer(nil)
	for _, body := range []string{
		`{"length":100,"interval":0,"mode":"both","shape":"segment"}`,
		`{"length":-5,"interval":1,"mode":"both","shape":"segment"}`,
		`{"length":100,"interval":10,"mode":"sideways","shape":"segment"}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/planting/count", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSample(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/api/planting/sample",
		`{"length":100,"interval":10,"mode":"both","shape":"segment","width":1000,"height":200}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[sampleResponse](t, rec)
	assert.True(t, resp.Feasible)
	assert.Equal(t, 11, resp.Count)
	require.Len(t, resp.Points, 11)
	assert.InDelta(t, 100, resp.Points[0].X, 1e-9)
	assert.InDelta(t, 900, resp.Points[10].X, 1e-9)

	rec = do(t, h, http.MethodPost, "/api/planting/sample",
		`{"length":100,"interval":7,"mode":"both","shape":"segment"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[sampleResponse](t, rec)
	assert.False(t, resp.Feasible)
	assert.Empty(t, resp.Points)
	assert.NotEmpty(t, resp.Reason)
}

func TestQuestions(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodGet, "/api/planting/questions?count=3&seed=42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[questionsResponse](t, rec)
	assert.Equal(t, uint64(42), resp.Seed)
	require.Len(t, resp.Questions, 3)
	for _, q := range resp.Questions {
		assert.NotEmpty(t, q.NarrativeText)
		assert.Positive(t, q.ExpectedAnswer)
	}

	again := decodeBody[questionsResponse](t, do(t, h, http.MethodGet, "/api/planting/questions?count=3&seed=42", nil))
	assert.Equal(t, resp, again)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/planting/questions?count=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/planting/questions?count=101", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/planting/questions?seed=abc", nil).Code)
}

func TestGenerateQuestion_Offline(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/api/practice/generate-question", map[string]any{"question_number": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	q := decodeBody[tutor.GeneratedQuestion](t, rec)
	assert.True(t, q.Degraded)
	assert.True(t, strings.HasPrefix(q.ID, "q2_"), q.ID)
	assert.NotEmpty(t, q.Text)
	assert.Positive(t, q.ExpectedAnswer)
}

func TestGenerateQuestion_BadDifficulty(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/practice/generate-question",
		map[string]any{"question_number": 1, "difficulty_level": "impossible"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckAnswer(t *testing.T) {
	events := &recordingEvents{}
	h := newTestServer(nil, WithEvents(events))

	rec := do(t, h, http.MethodPost, "/api/practice/check-answer", `{
		"parameters": {"length":100,"interval":10,"mode":"both","shape":"segment"},
		"user_answer": "10",
		"question_id": "q1_1"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[tutor.CheckResult](t, rec)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 11, res.CorrectAnswer)
	assert.NotEmpty(t, res.Explanation)
	assert.NotEmpty(t, res.SolvingSteps)

	require.Len(t, events.answers, 1)
	got := events.answers[0]
	assert.Equal(t, store.SourceAPI, got.Source)
	assert.Equal(t, "q1_1", got.QuestionID)
	assert.Equal(t, "both", got.Mode)
	assert.Equal(t, 10, got.LearnerAnswer)
	assert.False(t, got.Correct)
}

func TestCheckAnswer_Errors(t *testing.T) {
	h := newTestServer(nil)

	tests := map[string]string{
		"missing answer": `{"parameters":{"length":100,"interval":10,"mode":"both","shape":"segment"}}`,
		"word answer":    `{"parameters":{"length":100,"interval":10,"mode":"both","shape":"segment"},"user_answer":"eleven"}`,
		"infeasible":     `{"parameters":{"length":100,"interval":7,"mode":"both","shape":"segment"},"user_answer":14}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/practice/check-answer", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestEvaluate(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/practice/evaluate", `{
		"practice_session": {
			"answers": [
				{"question_id":"a","is_correct":true},
				{"question_id":"b","is_correct":true},
				{"question_id":"c","is_correct":false}
			],
			"total_time": 95
		}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	ev := decodeBody[tutor.Evaluation](t, rec)
	assert.Equal(t, "2/3", ev.CorrectRate)
	assert.Equal(t, "1m35s", ev.TotalTimeText)
	assert.Equal(t, tutor.Good, ev.Performance)
	assert.True(t, ev.Degraded)
	assert.NotEmpty(t, ev.Suggestions)
}

func TestChat_ServerSession(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Count the gaps."},
		llm.MockResponse{Text: "Then add one."},
	)
	h := newTestServer(mock)

	rec := do(t, h, http.MethodPost, "/api/chat", map[string]any{
		"message": "How many trees?",
		"interaction_state": map[string]any{
			"ground":    map[string]any{"length": 60, "interval": 5},
			"tree_mode": "both",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decodeBody[chatResponse](t, rec)
	assert.Equal(t, "Count the gaps.", first.Response)
	require.NotEmpty(t, first.SessionID)
	assert.Len(t, first.UpdatedHistory, 2)
	assert.Contains(t, mock.Calls[0].System, "60")

	rec = do(t, h, http.MethodPost, "/api/chat", map[string]any{
		"message":    "And then?",
		"session_id": first.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeBody[chatResponse](t, rec)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, second.UpdatedHistory, 4)

	msgs := mock.Calls[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "How many trees?", msgs[0].Content)
	assert.Equal(t, "And then?", msgs[2].Content)
}

func TestChat_ClientHistoryWins(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	h := newTestServer(mock)

	rec := do(t, h, http.MethodPost, "/api/practice/chat", map[string]any{
		"message":      "Hint please",
		"chat_history": []llm.Message{{Role: llm.RoleUser, Content: "earlier"}, {Role: llm.RoleAssistant, Content: "reply"}},
		"session_id":   "unknown",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unknown", decodeBody[chatResponse](t, rec).SessionID)
	require.Len(t, mock.Calls[0].Messages, 3)
	assert.Contains(t, mock.Calls[0].System, "Never state the final number of trees")
}

func TestChat_EmptyMessage(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/chat", map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_OfflineFallback(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/api/chat", map[string]any{
		"message":           "How many?",
		"interaction_state": map[string]any{"tree_mode": "circle"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[chatResponse](t, rec)
	assert.True(t, resp.Degraded)
	assert.NotEmpty(t, resp.Response)
}

func TestChatSessions_Expire(t *testing.T) {
	now := fixedNow
	c := newChatSessions(time.Minute, func() time.Time { return now })

	id := c.save("", []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Len(t, c.history(id), 1)

	now = now.Add(2 * time.Minute)
	assert.Nil(t, c.history(id))
	assert.Equal(t, 0, c.len())
}
