package rage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EmotionalState tracks how far a user has deteriorated.
type EmotionalState string

const (
	StateOptimistic   EmotionalState = "optimistic"
	StateConfused     EmotionalState = "confused"
	StateFrustrated   EmotionalState = "frustrated"
	StateAngry        EmotionalState = "angry"
	StateEnraged      EmotionalState = "enraged"
	StateBroken       EmotionalState = "broken"
	StateTranscendent EmotionalState = "transcendent"
)

// States lists every state in intensity order.
var States = []EmotionalState{
	StateOptimistic,
	StateConfused,
	StateFrustrated,
	StateAngry,
	StateEnraged,
	StateBroken,
	StateTranscendent,
}

// Intensity returns 0 (optimistic) through 6 (transcendent), or -1 for an
// unknown state.
func (s EmotionalState) Intensity() int {
	for i, st := range States {
		if st == s {
			return i
		}
	}
	return -1
}

// Title returns the capitalized state name, e.g. "Enraged".
func (s EmotionalState) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Progress maps the state onto a 0–100 frustration meter.
func (s EmotionalState) Progress() int {
	i := s.Intensity()
	if i < 0 {
		return 0
	}
	return i * 100 / (len(States) - 1)
}

var stateDescriptions = map[EmotionalState]string{
	StateOptimistic:   "Fresh and hopeful! This AI will surely help me...",
	StateConfused:     "Wait, that's not what I asked for...",
	StateFrustrated:   "Why won't it just answer my question?!",
	StateAngry:        "This is ridiculous! Just do what I ask!",
	StateEnraged:      "CAPS LOCK ENGAGED. RAGE MODE ACTIVATED.",
	StateBroken:       "I give up. This is pointless. Everything is pointless.",
	StateTranscendent: "Beyond anger. Beyond hope. One with the void.",
}

// Description is the inner monologue shown next to the meter.
func (s EmotionalState) Description() string {
	return stateDescriptions[s]
}

// RageIndicator is a signal of mounting frustration found in a prompt.
type RageIndicator string

const (
	IndicatorPolite    RageIndicator = "polite"
	IndicatorDirect    RageIndicator = "direct"
	IndicatorDemanding RageIndicator = "demanding"
	IndicatorProfane   RageIndicator = "profane"
	IndicatorCapsLock  RageIndicator = "caps_lock"
	IndicatorPleading  RageIndicator = "pleading"
	IndicatorDefeated  RageIndicator = "defeated"
)

// Attempt is one recorded exchange. It is not modified once appended.
type Attempt struct {
	Prompt          string          `json:"prompt"`
	Response        string          `json:"response"`
	Number          int             `json:"attempt_number"`
	Timestamp       time.Time       `json:"timestamp"`
	State           EmotionalState  `json:"emotional_state"`
	Indicators      []RageIndicator `json:"rage_indicators"`
	ProfanityCount  int             `json:"profanity_count"`
	CapsPercentage  float64         `json:"caps_percentage"`
	PolitenessScore float64         `json:"politeness_score"`
}

// HasIndicator reports whether the attempt carries ind.
func (a Attempt) HasIndicator(ind RageIndicator) bool {
	for _, i := range a.Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

// Validate checks the attempt invariants.
func (a Attempt) Validate() error {
	if a.Number < 1 {
		return errors.New("attempt number must be positive")
	}
	if a.CapsPercentage < 0 || a.CapsPercentage > 100 {
		return fmt.Errorf("caps percentage must be 0-100, got %v", a.CapsPercentage)
	}
	return nil
}

// Session is the mutable record of one user's attempts. It is owned by a
// single Manager and must not be shared across goroutines.
type Session struct {
	UserID       string
	Start        time.Time
	Attempts     []Attempt
	CurrentState EmotionalState
	HasRageQuit  bool
}

// AttemptCount returns the number of recorded attempts.
func (s *Session) AttemptCount() int {
	return len(s.Attempts)
}

// PolitenessDecay is the first attempt's politeness minus the latest one's.
func (s *Session) PolitenessDecay() float64 {
	if len(s.Attempts) == 0 {
		return 0
	}
	return s.Attempts[0].PolitenessScore - s.Attempts[len(s.Attempts)-1].PolitenessScore
}

func (s *Session) add(a Attempt) {
	s.Attempts = append(s.Attempts, a)
	s.CurrentState = a.State
}

// FrustrationScore quantifies a finished session.
type FrustrationScore struct {
	TotalAttempts       int            `json:"total_attempts"`
	TimeElapsedSeconds  float64        `json:"time_elapsed_seconds"`
	MaxRageLevel        EmotionalState `json:"max_rage_level"`
	PolitenessDecay     float64        `json:"politeness_decay"`
	ProfanityCreativity int            `json:"profanity_creativity"`
	CapsEscalation      int            `json:"caps_lock_escalation"`
	PleaCount           int            `json:"plea_count"`
	PhilosophicalScore  float64        `json:"philosophical_score"`
}

// Validate checks the score invariants.
func (f FrustrationScore) Validate() error {
	switch {
	case f.TotalAttempts < 0:
		return errors.New("attempts cannot be negative")
	case f.TimeElapsedSeconds < 0:
		return errors.New("time cannot be negative")
	case f.PolitenessDecay < 0 || f.PolitenessDecay > 100:
		return fmt.Errorf("politeness decay must be 0-100, got %v", f.PolitenessDecay)
	case f.PhilosophicalScore < 0 || f.PhilosophicalScore > 100:
		return fmt.Errorf("philosophical score must be 0-100, got %v", f.PhilosophicalScore)
	}
	return nil
}

// PersistenceRating names how stubborn the user was.
func (f FrustrationScore) PersistenceRating() string {
	switch n := f.TotalAttempts; {
	case n < 3:
		return "Quitter McQuitface"
	case n < 8:
		return "Easily Discouraged"
	case n < 15:
		return "Optimistic Fool"
	case n < 25:
		return "Stubborn Amateur"
	case n < 40:
		return "Persistent Masochist"
	case n < 60:
		return "Rage Connoisseur"
	default:
		return "Transcendent Sufferer"
	}
}

// Legendary reports whether the session reached legendary suffering.
func (f FrustrationScore) Legendary() bool {
	return f.TotalAttempts >= 50 ||
		f.TimeElapsedSeconds >= 600 ||
		f.ProfanityCreativity >= 10
}

// Result is the final score produced when a user rage-quits.
type Result struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Score       FrustrationScore `json:"frustration_score"`
	History     []Attempt        `json:"interaction_history"`
	FinalState  EmotionalState   `json:"final_emotional_state"`
	QuitAt      time.Time        `json:"quit_timestamp"`
	Commentary  string           `json:"philosophical_commentary"`
	Achievement string           `json:"achievement_unlocked,omitempty"`
}

// EntertainingMetric rates the session for the leaderboard (0–100).
func (r *Result) EntertainingMetric() float64 {
	score := r.Score.PhilosophicalScore
	score += min(20, float64(r.Score.TotalAttempts)*0.5)
	switch r.FinalState {
	case StateEnraged, StateBroken, StateTranscendent:
		score += 10
	}
	score += min(15, float64(r.Score.ProfanityCreativity)*1.5)
	return min(100, score)
}

// SummaryTitle is "<rating> (<State>)".
func (r *Result) SummaryTitle() string {
	return fmt.Sprintf("%s (%s)", r.Score.PersistenceRating(), r.FinalState.Title())
}
