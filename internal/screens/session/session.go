package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/chat"
	lessonscreen "github.com/abhisek/arbor/internal/screens/lessons"
	"github.com/abhisek/arbor/internal/screens/summary"
	sess "github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
)

// Config wires the session screen. Only Tutor is required; nil services
// switch their feature off.
type Config struct {
	Tutor      *tutor.Tutor
	Planner    sess.Planner
	Recorder   *sess.Recorder
	Diagnosis  *diagnosis.Service
	Lessons    *lessons.Service
	Compressor *lessons.Compressor
	Events     store.EventRepo
	Logger     *slog.Logger

	// BatchSize is the number of questions; sess.DefaultBatchSize when 0.
	BatchSize int
	// Seed fixes the booster questions; the clock is used when 0.
	Seed int64
}

// SessionScreen runs one practice batch.
type SessionScreen struct {
	cfg       Config
	generator *planting.Generator

	state  *sess.SessionState
	input  components.TextInput
	errMsg string

	// last is the answer the feedback is showing.
	last        *sess.AnswerResult
	explanation *tutor.CheckResult
	explaining  bool

	// nextOnResume asks for the next question once a covering screen pops.
	nextOnResume bool
	tickGen      int
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Resumer = (*SessionScreen)(nil)
var _ screen.BackInterceptor = (*SessionScreen)(nil)

// New creates a new SessionScreen.
func New(cfg Config) *SessionScreen {
	if cfg.Tutor == nil {
		cfg.Tutor = tutor.New(nil)
	}
	if cfg.Planner == nil {
		cfg.Planner = sess.NewPlanner(cfg.Events)
	}
	if cfg.Recorder == nil {
		cfg.Recorder = &sess.Recorder{Events: cfg.Events}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SessionScreen{
		cfg:       cfg,
		generator: planting.NewGenerator(planting.NewRand(seed)),
		input:     newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("How many trees?", true, 7)
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.initSession(),
		s.input.Init(),
	)
}

func (s *SessionScreen) Title() string {
	return "Practice"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.state == nil {
		return nil
	}
	if s.state.ShowingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.ShowingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "?", Description: "Hint"},
		{Key: "Esc", Description: "Quit"},
	}
}

// InterceptBack keeps Esc for the quit confirmation while a run is on.
func (s *SessionScreen) InterceptBack() bool {
	return s.errMsg == "" && s.state != nil && s.state.Phase != sess.PhaseEnding
}

// Resume restarts the clock and continues the batch after a lesson or
// hint screen pops.
func (s *SessionScreen) Resume() tea.Cmd {
	if s.state == nil || s.state.Phase == sess.PhaseEnding {
		return nil
	}
	s.tickGen++
	cmds := []tea.Cmd{s.tickCmd()}
	if s.nextOnResume {
		s.nextOnResume = false
		cmds = append(cmds, s.advance())
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width, height)
	}
	if s.state.ShowingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.state.ShowingFeedback {
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case explanationMsg:
		if s.last == nil || s.last.Question.ID != msg.QuestionID {
			return s, nil
		}
		s.explaining = false
		if msg.Err == nil {
			s.explanation = msg.Result
		}
		return s, nil

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) answering() bool {
	return s.state != nil && s.state.Phase == sess.PhaseActive &&
		s.state.CurrentQuestion != nil && !s.state.ShowingQuitConfirm
}

// initSession builds the plan and records the start.
func (s *SessionScreen) initSession() tea.Cmd {
	cfg := s.cfg
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := cfg.Planner.BuildPlan(ctx, cfg.BatchSize)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		if len(plan.Slots) == 0 {
			return sessionInitMsg{Err: errors.New("no questions planned")}
		}

		state := sess.NewSessionState(plan, uuid.New().String())
		if cfg.Diagnosis != nil {
			state.DiagnosisService = cfg.Diagnosis
		}
		state.LessonService = cfg.Lessons
		state.Compressor = cfg.Compressor
		state.EventRepo = cfg.Events

		if err := cfg.Recorder.Start(ctx, state); err != nil {
			cfg.Logger.Warn("record session start", "error", err)
		}
		return sessionInitMsg{State: state}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.tickGen++
	return s, tea.Batch(
		s.generateNextQuestion(),
		s.tickCmd(),
	)
}

func (s *SessionScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, nil
	}
	if msg.Err != nil {
		s.cfg.Logger.Warn("question generation failed", "slot", s.state.Index, "error", msg.Err)
		return s, s.advance()
	}

	s.state.CurrentQuestion = msg.Question
	s.state.QuestionStartTime = time.Now()
	s.state.Phase = sess.PhaseActive
	s.input = newAnswerInput()
	return s, s.input.Init()
}

func (s *SessionScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.tickGen || s.state == nil || s.state.Phase == sess.PhaseEnding {
		return s, nil
	}
	s.state.Elapsed = time.Since(s.state.StartTime)
	return s, s.tickCmd()
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, nil
	}
	s.state.ShowingFeedback = false
	s.last = nil
	s.explanation = nil

	if s.state.PendingLesson && s.cfg.Lessons != nil {
		if lesson, ok := s.cfg.Lessons.ConsumeLesson(); ok {
			s.state.PendingLesson = false
			s.state.WrongCountByMode[lesson.Mode] = 0
			s.nextOnResume = true
			return s, router.Push(lessonscreen.NewWithLesson(lesson, s.cfg.Events, s.state.SessionID))
		}
	}
	return s, s.advance()
}

// advance moves to the next slot, or ends the batch.
func (s *SessionScreen) advance() tea.Cmd {
	if !sess.Advance(s.state) {
		return func() tea.Msg { return sessionEndMsg{} }
	}
	s.state.Phase = sess.PhaseActive
	return s.generateNextQuestion()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, router.Pop
	}
	if s.state.Phase == sess.PhaseEnding {
		return s, nil
	}
	s.state.Phase = sess.PhaseEnding
	s.state.Elapsed = time.Since(s.state.StartTime)

	if err := s.cfg.Recorder.End(context.Background(), s.state); err != nil {
		s.cfg.Logger.Warn("record session end", "session", s.state.SessionID, "error", err)
	}

	return s, router.Replace(summary.New(
		sess.BuildSummary(s.state),
		sess.Report(s.state),
		s.cfg.Tutor,
	))
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.Pop
	}
	if s.state == nil || s.state.Phase == sess.PhaseEnding {
		return s, nil
	}

	if s.state.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			s.state.ShowingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.state.ShowingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.state.ShowingQuitConfirm = true
		return s, nil
	}

	if s.state.ShowingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if !s.answering() {
		return s, nil
	}
	switch key {
	case "enter":
		return s.submitAnswer()
	case "?":
		return s, s.openHint()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// openHint pushes the practice assistant for the current question.
func (s *SessionScreen) openHint() tea.Cmd {
	spec := s.state.CurrentQuestion.Spec
	return router.Push(chat.New(s.cfg.Tutor, chat.Practice, tutor.State{
		Length:   spec.Length,
		Interval: spec.Interval,
		Mode:     spec.Mode,
		Shape:    spec.Shape,
	}))
}

// submitAnswer marks the typed answer and shows the feedback.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	n, err := s.input.NumericValue()
	if err != nil {
		return s, nil
	}

	res := sess.HandleAnswer(s.state, n)
	if res == nil {
		return s, nil
	}
	if err := s.cfg.Recorder.Answer(context.Background(), s.state, res); err != nil {
		s.cfg.Logger.Warn("record answer", "question", res.Question.ID, "error", err)
	}

	s.last = res
	s.explanation = nil
	s.explaining = true
	s.state.ShowingFeedback = true
	s.state.Phase = sess.PhaseFeedback
	return s, s.explain(res)
}

// explain asks the tutor to explain res. Diagnosis already ran on the
// session state, so the tutor here is only asked for the wording.
func (s *SessionScreen) explain(res *sess.AnswerResult) tea.Cmd {
	t, id := s.cfg.Tutor, res.Question.ID
	req := tutor.CheckAnswerRequest{
		Spec:           res.Question.Spec,
		UserAnswer:     res.LearnerAnswer,
		QuestionText:   res.Question.Text,
		ResponseTimeMs: res.ResponseTimeMs,
	}
	return func() tea.Msg {
		r, err := t.CheckAnswer(context.Background(), req)
		return explanationMsg{QuestionID: id, Result: r, Err: err}
	}
}

// generateNextQuestion writes the question for the current slot.
func (s *SessionScreen) generateNextQuestion() tea.Cmd {
	slot := sess.CurrentSlot(s.state)
	if slot == nil {
		return func() tea.Msg { return sessionEndMsg{} }
	}
	sl := *slot
	src, gen := s.cfg.Tutor, s.generator
	return func() tea.Msg {
		q, err := sess.QuestionFor(context.Background(), sl, src, gen)
		return questionReadyMsg{Question: q, Err: err}
	}
}

func (s *SessionScreen) tickCmd() tea.Cmd {
	gen := s.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
