package rage

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return NewManager().WithClock(clock.Now), clock
}

func process(t *testing.T, m *Manager, prompts ...string) {
	t.Helper()
	for _, p := range prompts {
		if _, _, _, err := m.Process(p); err != nil {
			t.Fatalf("Process(%q): %v", p, err)
		}
	}
}

func TestProcess_NoSession(t *testing.T) {
	m, _ := newTestManager()
	if _, _, _, err := m.Process("hello"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if _, err := m.RageQuit(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("RageQuit err = %v, want ErrNoSession", err)
	}
	if m.ShouldOfferRageQuit() {
		t.Fatal("rage quit offered without a session")
	}
}

func TestStart(t *testing.T) {
	m, clock := newTestManager()
	s := m.Start("")
	if s.UserID != DefaultUserID {
		t.Fatalf("user = %q, want %q", s.UserID, DefaultUserID)
	}
	if s.CurrentState != StateOptimistic || !s.Start.Equal(clock.t) {
		t.Fatalf("unexpected session: %+v", s)
	}

	process(t, m, "Explain Python")
	m.Start("bob")
	if m.Session().AttemptCount() != 0 || m.Session().UserID != "bob" {
		t.Fatal("Start should discard the previous session")
	}
}

func TestProcess_RecordsAttempt(t *testing.T) {
	m, _ := newTestManager()
	m.Start("alice")

	resp, state, a, err := m.Process("Explain Python")
	require.NoError(t, err)
	assert.Equal(t, "Oh, you're interested in snakes! Let me tell you all about snakes...", resp)
	assert.Equal(t, StateOptimistic, state)
	assert.Equal(t, 1, a.Number)
	assert.Equal(t, resp, a.Response)
	assert.NoError(t, a.Validate())

	_, state, a, err = m.Process("What the hell is going on here?")
	require.NoError(t, err)
	assert.Equal(t, StateAngry, state)
	assert.Equal(t, 2, a.Number)
	assert.Equal(t, 1, a.ProfanityCount)
	assert.Equal(t, float64(75), a.PolitenessScore)
	assert.Equal(t, StateAngry, m.Session().CurrentState)
	assert.Len(t, m.Session().Attempts, 2)
}

func TestShouldOfferRageQuit(t *testing.T) {
	m, _ := newTestManager()
	m.Start("u")
	for i := 0; i < 4; i++ {
		process(t, m, "You must help me immediately")
	}
	assert.False(t, m.ShouldOfferRageQuit(), "four attempts is too few")
	process(t, m, "You must help me immediately")
	assert.True(t, m.ShouldOfferRageQuit(), "angry after five attempts")

	m.Start("u")
	for i := 0; i < 14; i++ {
		process(t, m, "Tell me about it")
	}
	assert.Equal(t, StateFrustrated, m.Session().CurrentState)
	assert.False(t, m.ShouldOfferRageQuit(), "frustrated at fourteen attempts")
	process(t, m, "Tell me about it")
	assert.True(t, m.ShouldOfferRageQuit(), "always offered at fifteen")
}

func TestSummary(t *testing.T) {
	m, clock := newTestManager()
	s := m.Summary()
	assert.False(t, s.Active)
	assert.Equal(t, "No session active", s.Message)

	m.Start("alice")
	process(t, m, "damn", "HELLO WORLD", "hell no")
	clock.Advance(125 * time.Second)

	s = m.Summary()
	assert.True(t, s.Active)
	assert.Equal(t, "alice", s.UserID)
	assert.Equal(t, 3, s.AttemptCount)
	assert.Equal(t, float64(125), s.DurationSeconds)
	assert.Equal(t, "2m 5s", s.DurationDisplay)
	assert.Equal(t, 2, s.ProfanityCount)
	assert.Equal(t, float64(100), s.MaxCapsPercentage)
	assert.False(t, s.RageQuitAvailable)
}

func TestRageQuit_NoAttempts(t *testing.T) {
	m, _ := newTestManager()
	m.Start("u")
	if _, err := m.RageQuit(); !errors.Is(err, ErrNoAttempts) {
		t.Fatalf("err = %v, want ErrNoAttempts", err)
	}
}

func TestRageQuit(t *testing.T) {
	m, clock := newTestManager()
	m.Start("alice")
	process(t, m, "Please help me, thank you", "Tell me about it")
	clock.Advance(30 * time.Second)
	process(t, m, "ANSWER NOW")
	clock.Advance(15 * time.Second)

	res, err := m.RageQuit()
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "alice", res.UserID)
	assert.Equal(t, StateEnraged, res.FinalState)
	assert.Equal(t, StateEnraged, res.Score.MaxRageLevel)
	assert.Equal(t, 3, res.Score.TotalAttempts)
	assert.Equal(t, float64(45), res.Score.TimeElapsedSeconds)
	assert.Equal(t, float64(40), res.Score.PolitenessDecay)
	assert.Equal(t, 1, res.Score.CapsEscalation)
	assert.Equal(t, 1, res.Score.PleaCount)
	assert.Equal(t, 7.5, res.Score.PhilosophicalScore)
	assert.Equal(t, Commentary(res.Score), res.Commentary)
	assert.Equal(t, "", res.Achievement)
	assert.True(t, m.Session().HasRageQuit)
	assert.Len(t, res.History, 3)

	// The ended session takes no more prompts and scores only once.
	_, _, _, err = m.Process("one more")
	assert.ErrorIs(t, err, ErrAlreadyQuit)
	_, err = m.RageQuit()
	assert.ErrorIs(t, err, ErrAlreadyQuit)
	assert.Len(t, m.Session().Attempts, 3)

	// A fresh session can be quit again.
	m.Start("alice")
	process(t, m, "again")
	_, err = m.RageQuit()
	assert.NoError(t, err)
}

func TestRageQuit_DistinctProfanity(t *testing.T) {
	m, _ := newTestManager()
	m.Start("u")
	process(t, m, "damn", "damn hell", "HELL shit")
	res, err := m.RageQuit()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Score.ProfanityCreativity)
}

func TestRageQuit_SinglePoliteAttempt(t *testing.T) {
	m, _ := newTestManager()
	m.Start("u")
	process(t, m, "Could you explain Python?")
	res, err := m.RageQuit()
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.Score.PolitenessDecay)
	assert.Equal(t, "Quitter McQuitface", res.Score.PersistenceRating())
	assert.False(t, res.Score.Legendary())
}

func TestRageQuit_Achievements(t *testing.T) {
	tests := []struct {
		name    string
		prompts []string
		want    string
	}{
		{"caps virtuoso", repeat("ANSWER ME NOW", 6), AchievementCapsVirtuoso},
		{"wordsmith", []string{"damn", "hell", "crap", "shit", "bastard"}, AchievementWordsmith},
		{"eternal optimist", repeat("Tell me about it", 10), AchievementEternalOptimist},
		{"nothing", []string{"Tell me about it", "Tell me about it"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager()
			m.Start("u")
			process(t, m, tt.prompts...)
			res, err := m.RageQuit()
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Achievement)
		})
	}
}

func TestRageQuit_Legendary(t *testing.T) {
	curses := []string{"damn", "hell", "crap", "shit", "ass", "bitch", "bastard", "fuck"}

	m, _ := newTestManager()
	m.Start("marathon")
	// Polite at first, then one curse per prompt, then shouting two.
	for i := range 55 {
		p := fmt.Sprintf("Attempt %d: Please help with Python", i+1)
		if i >= 15 {
			p += " " + curses[(i-15)%len(curses)]
		}
		if i > 30 {
			p = strings.ToUpper(p + " " + curses[(i+3)%len(curses)])
		}
		process(t, m, p)
	}

	assert.Zero(t, m.Session().Attempts[0].ProfanityCount)
	assert.Equal(t, 1, m.Session().Attempts[20].ProfanityCount)
	assert.Equal(t, 2, m.Session().Attempts[54].ProfanityCount)

	res, err := m.RageQuit()
	require.NoError(t, err)
	assert.Equal(t, 55, res.Score.TotalAttempts)
	assert.Equal(t, len(curses), res.Score.ProfanityCreativity)
	assert.Equal(t, 24, res.Score.CapsEscalation)
	assert.Equal(t, StateEnraged, res.Score.MaxRageLevel)
	assert.True(t, res.Score.Legendary())
	assert.Equal(t, "Rage Connoisseur", res.Score.PersistenceRating())
	assert.Equal(t, AchievementLegendary, res.Achievement)
	assert.Equal(t, float64(100), res.Score.PhilosophicalScore)
	assert.Equal(t, float64(100), res.EntertainingMetric())
	assert.Contains(t, res.Commentary, "remarkably patient")
}

func TestRageQuit_LegendaryByTime(t *testing.T) {
	m, clock := newTestManager()
	m.Start("u")
	process(t, m, "Explain Python")
	clock.Advance(10 * time.Minute)
	process(t, m, "Explain Python")

	res, err := m.RageQuit()
	require.NoError(t, err)
	assert.Equal(t, float64(600), res.Score.TimeElapsedSeconds)
	assert.True(t, res.Score.Legendary())
}

func TestReset(t *testing.T) {
	m, _ := newTestManager()
	m.Start("u")
	process(t, m, "hi")
	m.Reset()
	assert.Nil(t, m.Session())
	assert.False(t, m.Summary().Active)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconds"},
		{45 * time.Second, "45 seconds"},
		{125 * time.Second, "2m 5s"},
		{3725 * time.Second, "1h 2m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
