// Package rage implements the "broken by design" chat: it measures a user's
// mounting frustration across a session of prompts, answers every prompt
// unhelpfully, and scores the session when the user rage-quits.
package rage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoSession is returned when an operation needs a started session.
	ErrNoSession = errors.New("rage: session not started")

	// ErrNoAttempts is returned when quitting a session with no attempts.
	ErrNoAttempts = errors.New("rage: no attempts recorded in session")

	// ErrAlreadyQuit is returned by Process and RageQuit once the session
	// has ended. Start a new session to play again.
	ErrAlreadyQuit = errors.New("rage: session already ended")
)

// DefaultUserID is used when Start is given an empty user.
const DefaultUserID = "anonymous"

// Minimum attempts before a rage quit is offered, and the count after which
// it is always offered.
const (
	rageQuitMinAttempts    = 5
	rageQuitAlwaysAttempts = 15
)

// Manager owns one session at a time. It is not safe for concurrent use.
type Manager struct {
	classifiers []Classifier
	responder   *Responder
	now         func() time.Time
	session     *Session
}

// NewManager creates a Manager with the default cascade and a
// deterministic responder.
func NewManager() *Manager {
	return &Manager{
		classifiers: DefaultClassifiers(),
		responder:   NewResponder(nil),
		now:         time.Now,
	}
}

// WithClock overrides the time source.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// WithResponder overrides the reply generator.
func (m *Manager) WithResponder(r *Responder) *Manager {
	m.responder = r
	return m
}

// Start begins a fresh session, discarding any previous one.
func (m *Manager) Start(userID string) *Session {
	if userID == "" {
		userID = DefaultUserID
	}
	m.session = &Session{
		UserID:       userID,
		Start:        m.now(),
		CurrentState: StateOptimistic,
	}
	return m.session
}

// Session returns the active session, or nil.
func (m *Manager) Session() *Session {
	return m.session
}

// Process analyzes the prompt, generates a reply and records the attempt.
func (m *Manager) Process(prompt string) (string, EmotionalState, Attempt, error) {
	if m.session == nil {
		return "", "", Attempt{}, ErrNoSession
	}
	if m.session.HasRageQuit {
		return "", "", Attempt{}, ErrAlreadyQuit
	}

	reading := AnalyzeWith(m.classifiers, prompt, m.session.Attempts)
	number := len(m.session.Attempts) + 1
	response := m.responder.Respond(prompt, number)

	attempt := Attempt{
		Prompt:          prompt,
		Response:        response,
		Number:          number,
		Timestamp:       m.now(),
		State:           reading.State,
		Indicators:      reading.Indicators,
		ProfanityCount:  reading.ProfanityCount,
		CapsPercentage:  reading.CapsPercentage,
		PolitenessScore: reading.Politeness,
	}
	m.session.add(attempt)
	return response, reading.State, attempt, nil
}

// ShouldOfferRageQuit reports whether the quit option should be shown.
func (m *Manager) ShouldOfferRageQuit() bool {
	if m.session == nil || m.session.HasRageQuit {
		return false
	}
	n := len(m.session.Attempts)
	if n < rageQuitMinAttempts {
		return false
	}
	switch m.session.CurrentState {
	case StateAngry, StateEnraged, StateBroken:
		return true
	}
	return n >= rageQuitAlwaysAttempts
}

// Summary is a snapshot of the current session.
type Summary struct {
	Active            bool           `json:"active"`
	Message           string         `json:"message,omitempty"`
	UserID            string         `json:"user_id,omitempty"`
	AttemptCount      int            `json:"attempt_count"`
	DurationSeconds   float64        `json:"duration_seconds"`
	DurationDisplay   string         `json:"duration_display"`
	CurrentState      EmotionalState `json:"current_emotional_state"`
	PolitenessDecay   float64        `json:"politeness_decay"`
	ProfanityCount    int            `json:"profanity_count"`
	MaxCapsPercentage float64        `json:"max_caps_percentage"`
	RageQuitAvailable bool           `json:"rage_quit_available"`
}

// Summary reports the session's running statistics.
func (m *Manager) Summary() Summary {
	if m.session == nil {
		return Summary{Active: false, Message: "No session active"}
	}

	elapsed := m.now().Sub(m.session.Start)
	s := Summary{
		Active:            true,
		UserID:            m.session.UserID,
		AttemptCount:      len(m.session.Attempts),
		DurationSeconds:   elapsed.Seconds(),
		DurationDisplay:   FormatDuration(elapsed),
		CurrentState:      m.session.CurrentState,
		PolitenessDecay:   m.session.PolitenessDecay(),
		RageQuitAvailable: m.ShouldOfferRageQuit(),
	}
	for _, a := range m.session.Attempts {
		s.ProfanityCount += a.ProfanityCount
		s.MaxCapsPercentage = max(s.MaxCapsPercentage, a.CapsPercentage)
	}
	return s
}

// RageQuit ends the session and computes the final result. It succeeds
// once per session; the ended session stays readable until Reset or Start.
func (m *Manager) RageQuit() (*Result, error) {
	if m.session == nil {
		return nil, ErrNoSession
	}
	if m.session.HasRageQuit {
		return nil, ErrAlreadyQuit
	}
	if len(m.session.Attempts) == 0 {
		return nil, ErrNoAttempts
	}

	score := m.frustrationScore()
	if err := score.Validate(); err != nil {
		return nil, fmt.Errorf("frustration score: %w", err)
	}

	m.session.HasRageQuit = true
	final := m.session.CurrentState
	history := make([]Attempt, len(m.session.Attempts))
	copy(history, m.session.Attempts)

	return &Result{
		ID:          uuid.NewString(),
		UserID:      m.session.UserID,
		Score:       score,
		History:     history,
		FinalState:  final,
		QuitAt:      m.now(),
		Commentary:  Commentary(score),
		Achievement: Achievement(score),
	}, nil
}

// Reset discards the current session.
func (m *Manager) Reset() {
	m.session = nil
}

func (m *Manager) frustrationScore() FrustrationScore {
	attempts := m.session.Attempts

	maxState := attempts[0].State
	var prompts []string
	var capsEscalation, pleas int
	for _, a := range attempts {
		if a.State.Intensity() > maxState.Intensity() {
			maxState = a.State
		}
		if a.CapsPercentage > 50 {
			capsEscalation++
		}
		if a.HasIndicator(IndicatorPleading) {
			pleas++
		}
		prompts = append(prompts, a.Prompt)
	}

	var decay float64
	if len(attempts) >= 2 {
		decay = max(0, min(100, attempts[0].PolitenessScore-attempts[len(attempts)-1].PolitenessScore))
	}

	elapsed := m.now().Sub(m.session.Start)
	return FrustrationScore{
		TotalAttempts:       len(attempts),
		TimeElapsedSeconds:  float64(int64(max(0, elapsed.Seconds()))),
		MaxRageLevel:        maxState,
		PolitenessDecay:     decay,
		ProfanityCreativity: len(ProfaneWords(strings.Join(prompts, " "))),
		CapsEscalation:      capsEscalation,
		PleaCount:           pleas,
		PhilosophicalScore:  min(2.5*float64(len(attempts)), 100),
	}
}

// FormatDuration renders whole seconds as "N seconds", "Xm Ys" or "Xh Ym".
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%d seconds", secs)
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm %ds", mins, secs%60)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
