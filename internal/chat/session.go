// Package chat holds the conversation state and routes each input to the
// assistant's text path, its screen-analysis path or a command.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"ChartAI/internal/assistant"
	"ChartAI/internal/capture"
	"ChartAI/internal/model"
	"ChartAI/internal/recorder"
)

// State is the session's position in the request state machine.
type State string

const (
	StateIdle            State = "idle"
	StateAwaitingCapture State = "awaiting-capture"
	StateAnalyzing       State = "analyzing"
	StateAwaitingReply   State = "awaiting-reply"
)

// Fixed bot replies.
const (
	WelcomeText       = "Hi! Ask me about the market, or say \"analyze this chart\" and I'll look at the chart on screen. Type help for commands."
	BusyText          = "I'm still working on your previous request. Please wait for it to finish."
	CapturingText     = "Capturing the chart..."
	CaptureDeniedText = "Screen capture was denied or is unavailable, so I couldn't see the chart. Make sure the dashboard is open and try again."
	KeyUsageText      = "Usage: /apikey <your-key>"
	KeyUpdatedText    = "API key updated. Testing the connection..."
	TestingText       = "Testing the connection..."
	ConnectedText     = "Connection successful. The AI service is responding."
)

// Assistant is the subset of the assistant client the session uses.
type Assistant interface {
	Ask(ctx context.Context, question string) (string, error)
	AnalyzeImage(ctx context.Context, raw []byte) (*model.Analysis, error)
	SelfTest(ctx context.Context) error
	SetAPIKey(key string)
}

// Session is one conversation. It is safe for concurrent use; a new input
// arriving while a request is in flight is answered with BusyText.
type Session struct {
	assistant Assistant
	capturer  capture.Capturer
	recorder  recorder.Recorder

	mu       sync.Mutex
	state    State
	messages []model.ChatMessage
	now      func() time.Time
}

// NewSession creates a session seeded with the welcome message. A nil
// capturer disables the screen path; a nil recorder records nothing.
func NewSession(a Assistant, c capture.Capturer, r recorder.Recorder) *Session {
	if c == nil {
		c = capture.Disabled{}
	}
	if r == nil {
		r = recorder.NewNoopRecorder()
	}
	s := &Session{
		assistant: a,
		capturer:  c,
		recorder:  r,
		state:     StateIdle,
		now:       time.Now,
	}
	s.messages = append(s.messages, s.newMessage(model.KindBotInfo, WelcomeText))
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// HandleInput processes one user input and returns the messages it appended,
// starting with the user's own message. Blank input appends nothing.
func (s *Session) HandleInput(ctx context.Context, text string) []model.ChatMessage {
	cmd, arg := parse(text)
	if cmd == cmdAsk && arg == "" {
		return nil
	}

	tr := &transcript{session: s}
	next := StateAwaitingReply
	if cmd == cmdAnalyzeScreen {
		next = StateAwaitingCapture
	}

	s.mu.Lock()
	busy := s.state != StateIdle
	if !busy && cmd != cmdHelp {
		s.state = next
	}
	s.mu.Unlock()

	tr.add(model.KindUser, text)
	if busy {
		tr.add(model.KindBotInfo, BusyText)
		return tr.appended
	}

	if cmd == cmdHelp {
		tr.add(model.KindBotInfo, HelpText)
		return tr.appended
	}

	switch cmd {
	case cmdAPIKey:
		s.setKey(ctx, tr, arg)
	case cmdTest:
		tr.add(model.KindBotInfo, TestingText)
		s.selfTest(ctx, tr)
	case cmdAnalyzeScreen:
		s.analyzeScreen(ctx, tr)
	default:
		s.ask(ctx, tr, arg)
	}

	s.setState(StateIdle)
	return tr.appended
}

func (s *Session) setKey(ctx context.Context, tr *transcript, key string) {
	if key == "" {
		tr.add(model.KindBotError, KeyUsageText)
		return
	}
	s.assistant.SetAPIKey(key)
	log.Info().Msg("assistant api key replaced")
	tr.add(model.KindBotInfo, KeyUpdatedText)
	s.selfTest(ctx, tr)
}

func (s *Session) selfTest(ctx context.Context, tr *transcript) {
	start := s.now()
	err := s.assistant.SelfTest(ctx)
	s.record("selftest", err, start)
	if err != nil {
		tr.add(model.KindBotError, assistant.UserMessage(err))
		return
	}
	tr.add(model.KindBotInfo, ConnectedText)
}

func (s *Session) ask(ctx context.Context, tr *transcript, question string) {
	start := s.now()
	reply, err := s.assistant.Ask(ctx, question)
	s.record("text", err, start)
	if err != nil {
		log.Warn().Err(err).Msg("assistant text request failed")
		tr.add(model.KindBotError, assistant.UserMessage(err))
		return
	}
	tr.add(model.KindBotText, reply)
}

func (s *Session) analyzeScreen(ctx context.Context, tr *transcript) {
	tr.add(model.KindBotInfo, CapturingText)
	raw, err := s.capturer.Capture(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("chart capture failed")
		s.recordOutcome("image", "capture_denied", 0)
		tr.add(model.KindBotError, CaptureDeniedText)
		return
	}

	s.setState(StateAnalyzing)
	start := s.now()
	analysis, err := s.assistant.AnalyzeImage(ctx, raw)
	s.record("image", err, start)
	if err != nil {
		log.Warn().Err(err).Msg("assistant image request failed")
		tr.add(model.KindBotError, assistant.UserMessage(err))
		return
	}
	msg := s.newMessage(model.KindBotAnalysis, "")
	msg.Analysis = analysis
	tr.append(msg)
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) record(path string, err error, start time.Time) {
	s.recordOutcome(path, Outcome(err), s.now().Sub(start))
}

func (s *Session) recordOutcome(path, outcome string, latency time.Duration) {
	if err := s.recorder.RecordAssistant(&recorder.AssistantEvent{Path: path, Outcome: outcome, Latency: latency}); err != nil {
		log.Warn().Err(err).Msg("record assistant event failed")
	}
}

func (s *Session) newMessage(kind model.MessageKind, text string) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.New().String(),
		Kind:      kind,
		Text:      text,
		CreatedAt: s.now(),
	}
}

// Outcome classifies an assistant error for history records.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, assistant.ErrAuth):
		return "auth"
	case errors.Is(err, assistant.ErrRateLimit):
		return "rate_limit"
	case errors.Is(err, assistant.ErrEndpoint):
		return "endpoint"
	case errors.Is(err, assistant.ErrNetwork):
		return "network"
	case errors.Is(err, capture.ErrDenied):
		return "capture_denied"
	default:
		return "unknown"
	}
}

// transcript collects the messages appended while handling one input.
type transcript struct {
	session  *Session
	appended []model.ChatMessage
}

func (t *transcript) add(kind model.MessageKind, text string) {
	t.append(t.session.newMessage(kind, text))
}

func (t *transcript) append(msg model.ChatMessage) {
	t.session.mu.Lock()
	t.session.messages = append(t.session.messages, msg)
	t.session.mu.Unlock()
	t.appended = append(t.appended, msg)
}
