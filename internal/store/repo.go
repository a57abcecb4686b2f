package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// EvaluationData captures one scored prompt.
type EvaluationData struct {
	UserID      string
	Prompt      string
	Intent      string
	Total       float64
	Learning    float64
	Specificity float64
	Engagement  float64
	Passing     bool
	LessonID    string
	ExerciseID  string
}

// Evaluation is a persisted prompt evaluation.
type Evaluation struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	EvaluationData
}

// EvaluationStats summarizes a user's evaluation history.
type EvaluationStats struct {
	Total    int
	Passing  int
	AvgScore float64
	ByIntent map[string]int
}

// EvaluationRepo stores the prompt evaluation history.
type EvaluationRepo interface {
	AppendEvaluation(ctx context.Context, data EvaluationData) error

	// QueryEvaluations returns a user's evaluations newest first.
	// An empty userID matches every user.
	QueryEvaluations(ctx context.Context, userID string, opts QueryOpts) ([]Evaluation, error)

	EvaluationStats(ctx context.Context, userID string) (*EvaluationStats, error)
}

// RageResultData captures a finished rage-quit session.
type RageResultData struct {
	ID                  string
	UserID              string
	TotalAttempts       int
	TimeElapsedSeconds  int
	MaxRageLevel        string
	FinalState          string
	PolitenessDecay     float64
	ProfanityCreativity int
	CapsEscalation      int
	PleaCount           int
	PhilosophicalScore  float64
	EntertainingMetric  float64
	PersistenceRating   string
	Legendary           bool
	Achievement         string
	Commentary          string
}

// RageResult is a persisted rage-quit result.
type RageResult struct {
	Sequence  int64
	Timestamp time.Time
	RageResultData
}

// RageStats aggregates all stored rage-quit results.
type RageStats struct {
	Sessions       int
	TotalAttempts  int
	Legendary      int
	AvgEntertained float64
	ByFinalState   map[string]int
}

// ResultRepo stores rage-quit results for the leaderboard.
type ResultRepo interface {
	SaveResult(ctx context.Context, data RageResultData) error

	// GetResult returns ErrNotFound when id is unknown.
	GetResult(ctx context.Context, id string) (*RageResult, error)

	// Leaderboard returns results ordered by entertaining metric, best first.
	Leaderboard(ctx context.Context, limit int) ([]RageResult, error)

	Stats(ctx context.Context) (*RageStats, error)
}

// SnapshotData captures the learner's lesson progress at a point in time.
type SnapshotData struct {
	Version          int      `json:"version"`
	SkillLevel       int      `json:"skill_level"`
	CurrentLesson    int      `json:"current_lesson"`
	CompletedLessons []string `json:"completed_lessons,omitempty"`
	TotalPrompts     int      `json:"total_prompts"`
	GoodPrompts      int      `json:"good_prompts"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	UserID    string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled from the
	// global counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the user's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, userID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of a user.
	Prune(ctx context.Context, userID string, keep int) error
}
