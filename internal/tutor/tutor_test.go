package tutor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestTutor(provider llm.Provider, opts ...Option) *Tutor {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(provider, opts...)
}

func roadState() State {
	return State{Length: 100, Interval: 10, Mode: planting.BothEnds, Shape: planting.Segment}
}

func TestChat_ReplyAndHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Count the gaps first!  "})
	tu := newTestTutor(mock)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "Hello!"},
	}
	resp, err := tu.Chat(t.Context(), ChatRequest{Message: "How many trees?", State: roadState(), History: history})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Reply != "Count the gaps first!" {
		t.Errorf("Reply = %q", resp.Reply)
	}
	if resp.Degraded {
		t.Error("expected a non-degraded reply")
	}
	if len(resp.UpdatedHistory) != 4 {
		t.Fatalf("history len = %d, want 4", len(resp.UpdatedHistory))
	}
	last := resp.UpdatedHistory[3]
	if last.Role != llm.RoleAssistant || last.Content != "Count the gaps first!" {
		t.Errorf("last turn = %+v", last)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("chat should be plain text")
	}
	if !strings.Contains(req.System, "Path length: 100 m") {
		t.Errorf("system prompt missing state:\n%s", req.System)
	}
	if strings.Contains(req.System, "Never state the final number") {
		t.Error("learning assistant should be allowed to work problems through")
	}
	if len(req.Messages) != 3 || req.Messages[2].Content != "How many trees?" {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestChat_NewConversationDropsHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Sure."})
	tu := newTestTutor(mock)

	resp, err := tu.Chat(t.Context(), ChatRequest{
		Message:         "Start over",
		State:           roadState(),
		History:         []llm.Message{{Role: llm.RoleUser, Content: "old"}},
		NewConversation: true,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(resp.UpdatedHistory) != 2 {
		t.Errorf("history len = %d, want 2", len(resp.UpdatedHistory))
	}
	if len(mock.Calls[0].Messages) != 1 {
		t.Errorf("sent %d messages, want 1", len(mock.Calls[0].Messages))
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	tu := newTestTutor(llm.NewMockProvider())
	_, err := tu.Chat(t.Context(), ChatRequest{Message: "   "})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestChat_NoProviderFallsBackToSteps(t *testing.T) {
	tu := newTestTutor(nil)
	resp, err := tu.Chat(t.Context(), ChatRequest{Message: "help", State: roadState()})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded reply")
	}
	if !strings.Contains(resp.Reply, "10 + 1 = 11 trees") {
		t.Errorf("fallback should work the setup through:\n%s", resp.Reply)
	}
}

func TestPracticeChat_FallbackHidesAnswer(t *testing.T) {
	var logs bytes.Buffer
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	tu := newTestTutor(mock, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	resp, err := tu.PracticeChat(t.Context(), ChatRequest{Message: "just tell me", State: roadState()})
	if err != nil {
		t.Fatalf("PracticeChat: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded reply")
	}
	if strings.Contains(resp.Reply, "11") {
		t.Errorf("practice fallback gave the answer away: %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "n = L ÷ d + 1") {
		t.Errorf("practice fallback should show the formula: %q", resp.Reply)
	}
	if !strings.Contains(logs.String(), "boom") {
		t.Errorf("LLM failure not logged: %q", logs.String())
	}
	if !strings.Contains(mock.Calls[0].System, "Never state the final number") {
		t.Error("practice prompt must forbid giving the answer")
	}
}

func TestChat_CompressesLongHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"summary":"We talked about a 100 m road."}`)},
		llm.MockResponse{Text: "Right, 11."},
	)
	cfg := DefaultConfig()
	cfg.HistoryLimit = 4
	cfg.HistoryKeep = 2
	tu := newTestTutor(mock, WithConfig(cfg))

	var history []llm.Message
	for i := range 3 {
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("q%d", i)},
			llm.Message{Role: llm.RoleAssistant, Content: fmt.Sprintf("a%d", i)})
	}

	resp, err := tu.Chat(t.Context(), ChatRequest{Message: "so?", State: roadState(), History: history})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
	if s := mock.Calls[0].Schema; s == nil || s.Name != "chat-summary" {
		t.Errorf("first call should compress history, schema = %v", s)
	}

	sent := mock.Calls[1].Messages
	if len(sent) != 4 {
		t.Fatalf("sent %d messages, want summary + 2 recent + new", len(sent))
	}
	if !strings.HasPrefix(sent[0].Content, summaryPrefix) || !strings.Contains(sent[0].Content, "100 m road") {
		t.Errorf("first message = %q", sent[0].Content)
	}
	if sent[1].Content != "q2" || sent[2].Content != "a2" {
		t.Errorf("recent turns = %+v", sent[1:3])
	}
	if len(resp.UpdatedHistory) != 5 {
		t.Errorf("updated history len = %d, want 5", len(resp.UpdatedHistory))
	}
}

func TestChat_CompressionFailureKeepsRecentTurns(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("rate limited")},
		llm.MockResponse{Text: "ok"},
	)
	cfg := DefaultConfig()
	cfg.HistoryLimit = 2
	cfg.HistoryKeep = 2
	tu := newTestTutor(mock, WithConfig(cfg))

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "q0"}, {Role: llm.RoleAssistant, Content: "a0"},
		{Role: llm.RoleUser, Content: "q1"}, {Role: llm.RoleAssistant, Content: "a1"},
	}
	if _, err := tu.Chat(t.Context(), ChatRequest{Message: "next", State: roadState(), History: history}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	sent := mock.Calls[1].Messages
	if len(sent) != 3 || sent[0].Content != "q1" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestGenerateQuestion_LLMNarrative(t *testing.T) {
	spec := planting.DiverseParameters(planting.StrategyBasicLine, 1)
	text := fmt.Sprintf("Along a %g m path, a tree goes every %g m, with trees at both ends. How many trees?", spec.Length, spec.Interval)
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(fmt.Sprintf(`{"question_text": %q}`, text)),
	})
	tu := newTestTutor(mock)

	q, err := tu.GenerateQuestion(t.Context(), GenerateQuestionRequest{QuestionNumber: 1})
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if q.ID != "q1_1700000000000" {
		t.Errorf("ID = %q", q.ID)
	}
	if q.Text != text || q.Degraded {
		t.Errorf("Text = %q, degraded = %v", q.Text, q.Degraded)
	}
	want, err := planting.ComputeCount(q.Spec)
	if err != nil || q.ExpectedAnswer != want {
		t.Errorf("ExpectedAnswer = %d, want %d (%v)", q.ExpectedAnswer, want, err)
	}
	if q.Strategy != planting.StrategyBasicLine || q.Difficulty != planting.Basic {
		t.Errorf("strategy = %s/%s", q.Strategy, q.Difficulty)
	}
	if s := mock.Calls[0].Schema; s == nil || s.Name != "planting-question" {
		t.Error("expected planting-question schema")
	}
}

func TestGenerateQuestion_RejectedNarrativeFallsBack(t *testing.T) {
	spec := planting.DiverseParameters(planting.StrategyBasicLine, 1)
	answer, _ := planting.ComputeCount(spec)

	tests := []struct {
		name string
		text string
	}{
		{"missing numbers", "Some trees are planted along a road. How many?"},
		{"leaks answer", fmt.Sprintf("A %g m road has trees every %g m, so %d trees. How many trees?", spec.Length, spec.Interval, answer)},
		{"too long", strings.Repeat("a", maxNarrativeLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{
				Content: json.RawMessage(fmt.Sprintf(`{"question_text": %q}`, tt.text)),
			})
			q, err := newTestTutor(mock).GenerateQuestion(t.Context(), GenerateQuestionRequest{QuestionNumber: 1})
			if err != nil {
				t.Fatalf("GenerateQuestion: %v", err)
			}
			if !q.Degraded || q.Text != planting.Narrate(q.Spec) {
				t.Errorf("want template narrative, got %q (degraded %v)", q.Text, q.Degraded)
			}
		})
	}
}

func TestGenerateQuestion_AllSlotsFeasible(t *testing.T) {
	tu := newTestTutor(nil)
	for n := 1; n <= 5; n++ {
		q, err := tu.GenerateQuestion(t.Context(), GenerateQuestionRequest{QuestionNumber: n})
		if err != nil {
			t.Fatalf("question %d: %v", n, err)
		}
		if !planting.IsFeasibleStrict(q.Spec) {
			t.Errorf("question %d spec %s is not evenly spaced", n, q.Spec)
		}
		if q.Text == "" {
			t.Errorf("question %d has no text", n)
		}
	}
}

func TestGenerateQuestion_DifficultyOverride(t *testing.T) {
	q, err := newTestTutor(nil).GenerateQuestion(t.Context(), GenerateQuestionRequest{
		QuestionNumber: 1,
		Difficulty:     planting.Advanced,
	})
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if q.Strategy != planting.StrategyComprehensive {
		t.Errorf("Strategy = %q, want comprehensive", q.Strategy)
	}
}

func TestCheckAnswer_CorrectOffline(t *testing.T) {
	res, err := newTestTutor(nil).CheckAnswer(t.Context(), CheckAnswerRequest{
		Spec:       roadState().Spec(),
		UserAnswer: 11,
	})
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !res.IsCorrect || res.CorrectAnswer != 11 {
		t.Errorf("result = %+v", res)
	}
	if res.Diagnosis != nil {
		t.Error("correct answers are not diagnosed")
	}
	if !res.Degraded || !strings.HasPrefix(res.Explanation, "Correct!") {
		t.Errorf("Explanation = %q", res.Explanation)
	}
	if len(res.SolvingSteps) == 0 {
		t.Error("expected solving steps")
	}
}

func TestCheckAnswer_WrongIsDiagnosed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Close! Remember the tree at the far end."})
	diag := diagnosis.NewService(nil)
	tu := newTestTutor(mock, WithDiagnosis(diag))

	res, err := tu.CheckAnswer(t.Context(), CheckAnswerRequest{
		Spec:       roadState().Spec(),
		UserAnswer: 10,
	})
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if res.IsCorrect {
		t.Fatal("10 should be wrong")
	}
	if res.Diagnosis == nil || res.Diagnosis.MisconceptionID != diagnosis.MisconceptionMissedEnds {
		t.Fatalf("Diagnosis = %+v", res.Diagnosis)
	}
	if res.Explanation != "Close! Remember the tree at the far end." || res.Degraded {
		t.Errorf("Explanation = %q", res.Explanation)
	}

	user := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Learner's answer: 10", "Correct answer: 11", "Likely mistake: " + res.Diagnosis.Label()} {
		if !strings.Contains(user, want) {
			t.Errorf("explanation prompt missing %q:\n%s", want, user)
		}
	}
}

func TestCheckAnswer_LoopIsLenient(t *testing.T) {
	res, err := newTestTutor(nil).CheckAnswer(t.Context(), CheckAnswerRequest{
		Spec:       planting.SpacingSpec{Length: 62, Interval: 5, Shape: planting.Circle},
		UserAnswer: 12,
	})
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !res.IsCorrect {
		t.Errorf("CorrectAnswer = %d, want 12", res.CorrectAnswer)
	}
}

func TestCheckAnswer_InfeasibleSegment(t *testing.T) {
	_, err := newTestTutor(nil).CheckAnswer(t.Context(), CheckAnswerRequest{
		Spec:       planting.SpacingSpec{Length: 100, Interval: 7, Mode: planting.BothEnds},
		UserAnswer: 15,
	})
	if !errors.Is(err, planting.ErrInfeasible) {
		t.Errorf("err = %v, want ErrInfeasible", err)
	}
}

func TestEvaluateSession(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "1. Draw the road first\n- Count the gaps\n\n  Check the ends  \n"})
	ev, err := newTestTutor(mock).EvaluateSession(t.Context(), SessionReport{
		Answers: []AnswerRecord{
			{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}, {IsCorrect: false},
		},
		TotalTime: 200 * time.Second,
	})
	if err != nil {
		t.Fatalf("EvaluateSession: %v", err)
	}
	if ev.CorrectRate != "4/5" || ev.TotalTimeText != "3m20s" || ev.Performance != Excellent {
		t.Errorf("evaluation = %+v", ev)
	}
	want := []string{"Draw the road first", "Count the gaps", "Check the ends"}
	if strings.Join(ev.Suggestions, "|") != strings.Join(want, "|") {
		t.Errorf("Suggestions = %q", ev.Suggestions)
	}
	if ev.Degraded {
		t.Error("unexpected degraded evaluation")
	}
}

func TestEvaluateSession_LLMFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	ev, err := newTestTutor(mock).EvaluateSession(t.Context(), SessionReport{TotalTime: 40 * time.Second})
	if err != nil {
		t.Fatalf("EvaluateSession: %v", err)
	}
	if ev.CorrectRate != "0/0" || ev.TotalTimeText != "40s" || ev.Performance != NeedsWork {
		t.Errorf("evaluation = %+v", ev)
	}
	if !ev.Degraded || len(ev.Suggestions) != len(defaultSuggestions) {
		t.Errorf("want default suggestions, got %q", ev.Suggestions)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		correct, total int
		want           Performance
	}{
		{0, 0, NeedsWork},
		{4, 5, Excellent},
		{3, 5, Good},
		{2, 5, NeedsWork},
		{5, 5, Excellent},
	}
	for _, tt := range tests {
		if got := grade(tt.correct, tt.total); got != tt.want {
			t.Errorf("grade(%d, %d) = %s, want %s", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{40 * time.Second, "40s"},
		{60 * time.Second, "1m0s"},
		{200*time.Second + 900*time.Millisecond, "3m20s"},
		{-time.Second, "0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
