package quiz

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MinSourceLength is the shortest trimmed source text a quiz accepts.
const MinSourceLength = 200

var (
	ErrInsufficientText  = errors.New("source text too short for a quiz")
	ErrInvalidQuizLength = errors.New("quiz length must be a positive number")
	ErrAlreadyStarted    = errors.New("quiz already started")
	ErrNoPendingQuestion = errors.New("no question is awaiting an answer")
	ErrAlreadyAnswered   = errors.New("answer already submitted for this question")
)

type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// FinishReason says why a session reached StateFinished.
type FinishReason int

const (
	ReasonNone FinishReason = iota
	ReasonGoalReached
	ReasonContentExhausted
	ReasonUserEnded
)

func (r FinishReason) String() string {
	switch r {
	case ReasonGoalReached:
		return "goal_reached"
	case ReasonContentExhausted:
		return "content_exhausted"
	case ReasonUserEnded:
		return "user_ended"
	}
	return "none"
}

type EventType int

const (
	EventQuestionReady EventType = iota
	EventQuizFinished
)

// Event is what a session reports to its presentation layer: either the
// next question or the final summary.
type Event struct {
	Type     EventType
	Question Question
	Number   int // 1-based question number, set on EventQuestionReady
	Reason   FinishReason
	Score    int
	Asked    int
	Record   string // "score / asked", empty when nothing was answered
}

// Outcome is the result of one answer submission.
type Outcome struct {
	Correct bool
	Answer  string
}

type Config struct {
	TargetCount int
	SourceText  string
	// AdvanceDelay is the pause between an answer and the next
	// question. Zero or negative advances immediately.
	AdvanceDelay time.Duration
	Notify       func(Event)
}

// Session drives one quiz over a fixed source text: it pulls questions
// from the generator until the target count is reached, the content is
// exhausted, or the user ends it. At most one advance timer is pending
// at any time; scheduling a new one cancels the old.
type Session struct {
	id  string
	gen *Generator
	cfg Config

	mu       sync.Mutex
	state    State
	reason   FinishReason
	score    int
	asked    int
	current  *Question
	answered bool
	timer    *time.Timer
}

func NewSession(gen *Generator, cfg Config) *Session {
	return &Session{id: uuid.NewString(), gen: gen, cfg: cfg}
}

func (s *Session) ID() string { return s.id }

// Start validates the configuration, enters StateInProgress and
// produces the first question.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.state != StateNotStarted {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	if len(strings.TrimSpace(s.cfg.SourceText)) < MinSourceLength {
		s.mu.Unlock()
		return ErrInsufficientText
	}
	if s.cfg.TargetCount <= 0 {
		s.mu.Unlock()
		return ErrInvalidQuizLength
	}

	s.state = StateInProgress
	s.score = 0
	s.asked = 0
	events := s.advanceLocked()
	s.mu.Unlock()

	s.dispatch(events)
	return nil
}

// SubmitAnswer scores choice against the pending question. A second
// submission before the next question arrives is rejected with no
// scoring effect. On success the advance toward the next question is
// scheduled after the configured delay.
func (s *Session) SubmitAnswer(choice string) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateInProgress || s.current == nil {
		s.mu.Unlock()
		return Outcome{}, ErrNoPendingQuestion
	}
	if s.answered {
		s.mu.Unlock()
		return Outcome{}, ErrAlreadyAnswered
	}

	s.answered = true
	s.asked++
	outcome := Outcome{Correct: choice == s.current.Answer, Answer: s.current.Answer}
	if outcome.Correct {
		s.score++
	}

	var events []Event
	if s.cfg.AdvanceDelay <= 0 {
		events = s.advanceLocked()
	} else {
		s.stopTimerLocked()
		s.timer = time.AfterFunc(s.cfg.AdvanceDelay, s.advance)
	}
	s.mu.Unlock()

	s.dispatch(events)
	return outcome, nil
}

// End finishes the session immediately, cancelling any pending advance.
// Ending a finished or unstarted session is a no-op.
func (s *Session) End() {
	s.mu.Lock()
	var events []Event
	if s.state == StateInProgress {
		events = s.finishLocked(ReasonUserEnded)
	} else {
		s.stopTimerLocked()
	}
	s.mu.Unlock()

	s.dispatch(events)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Reason() FinishReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) QuestionsAsked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asked
}

func (s *Session) Target() int {
	return s.cfg.TargetCount
}

func (s *Session) advance() {
	s.mu.Lock()
	s.timer = nil
	events := s.advanceLocked()
	s.mu.Unlock()

	s.dispatch(events)
}

func (s *Session) advanceLocked() []Event {
	if s.state != StateInProgress {
		return nil
	}
	if s.asked >= s.cfg.TargetCount {
		return s.finishLocked(ReasonGoalReached)
	}

	question, err := s.gen.Generate(s.cfg.SourceText)
	if err != nil {
		if !errors.Is(err, ErrNotEnoughCandidates) {
			log.Printf("quiz %s: question generation failed: %v", s.id, err)
		}
		return s.finishLocked(ReasonContentExhausted)
	}

	s.current = &question
	s.answered = false
	return []Event{{Type: EventQuestionReady, Question: question, Number: s.asked + 1}}
}

func (s *Session) finishLocked(reason FinishReason) []Event {
	s.stopTimerLocked()
	s.state = StateFinished
	s.reason = reason
	s.current = nil

	event := Event{
		Type:   EventQuizFinished,
		Reason: reason,
		Score:  s.score,
		Asked:  s.asked,
	}
	if s.asked > 0 {
		event.Record = fmt.Sprintf("%d / %d", s.score, s.asked)
	}
	return []Event{event}
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) dispatch(events []Event) {
	if s.cfg.Notify == nil {
		return
	}
	for _, event := range events {
		s.cfg.Notify(event)
	}
}
