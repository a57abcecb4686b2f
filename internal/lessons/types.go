package lessons

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/promptcoach/internal/scoring"
)

// ErrNotFound is returned when a lesson or exercise id is unknown.
var ErrNotFound = errors.New("lessons: not found")

// Difficulty and skill level bounds.
const (
	MinLevel = 1
	MaxLevel = 5
)

// Exercise is a practice task inside a lesson.
type Exercise struct {
	ID             string         `yaml:"id" json:"id"`
	Prompt         string         `yaml:"prompt" json:"prompt"`
	ExpectedIntent scoring.Intent `yaml:"expected_intent" json:"expected_intent"`
	Hints          []string       `yaml:"hints" json:"hints"`
	GoodExample    string         `yaml:"good_example" json:"good_example"`
	BadExample     string         `yaml:"bad_example" json:"bad_example"`
}

// Lesson is one unit of the prompting curriculum.
type Lesson struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Objectives  []string   `yaml:"learning_objectives" json:"learning_objectives"`
	Difficulty  int        `yaml:"difficulty" json:"difficulty"`
	Content     string     `yaml:"content" json:"content"`
	Exercises   []Exercise `yaml:"exercises" json:"exercises"`
}

// Validate checks the lesson id, difficulty and exercise intents.
func (l Lesson) Validate() error {
	if l.ID == "" {
		return errors.New("lesson id is required")
	}
	if l.Difficulty < MinLevel || l.Difficulty > MaxLevel {
		return fmt.Errorf("lesson %s: difficulty must be between %d and %d, got %d",
			l.ID, MinLevel, MaxLevel, l.Difficulty)
	}
	for _, ex := range l.Exercises {
		if ex.ID == "" {
			return fmt.Errorf("lesson %s: exercise id is required", l.ID)
		}
		if _, ok := scoring.ParseIntent(string(ex.ExpectedIntent)); !ok {
			return fmt.Errorf("lesson %s: exercise %s: unknown intent %q", l.ID, ex.ID, ex.ExpectedIntent)
		}
	}
	return nil
}

// Exercise returns the exercise with the given id.
func (l Lesson) Exercise(id string) (Exercise, error) {
	for _, ex := range l.Exercises {
		if ex.ID == id {
			return ex, nil
		}
	}
	return Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
}

// UserProgress tracks a learner through the catalog.
type UserProgress struct {
	UserID           string   `json:"user_id"`
	CurrentLesson    int      `json:"current_lesson"`
	CompletedLessons []string `json:"completed_lessons"`
	SkillLevel       int      `json:"skill_level"`
	TotalPrompts     int      `json:"total_prompts"`
	GoodPrompts      int      `json:"good_prompts"`
}

// NewProgress returns a validated progress record for a new learner.
func NewProgress(userID string, skillLevel int) (*UserProgress, error) {
	p := &UserProgress{UserID: userID, SkillLevel: skillLevel}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the skill level.
func (p *UserProgress) Validate() error {
	if p.SkillLevel < MinLevel || p.SkillLevel > MaxLevel {
		return fmt.Errorf("skill level must be between %d and %d, got %d",
			MinLevel, MaxLevel, p.SkillLevel)
	}
	return nil
}

// SuccessRate is the percentage of passing prompts, or 0 before any.
func (p *UserProgress) SuccessRate() float64 {
	if p.TotalPrompts == 0 {
		return 0
	}
	return float64(p.GoodPrompts) / float64(p.TotalPrompts) * 100
}

// RecordPrompt counts one scored prompt.
func (p *UserProgress) RecordPrompt(s scoring.Score) {
	p.TotalPrompts++
	if s.Passing() {
		p.GoodPrompts++
	}
}

// Completed reports whether the lesson was finished.
func (p *UserProgress) Completed(lessonID string) bool {
	return slices.Contains(p.CompletedLessons, lessonID)
}

// Complete marks a lesson finished. Repeats are ignored.
func (p *UserProgress) Complete(lessonID string) {
	if p.Completed(lessonID) {
		return
	}
	p.CompletedLessons = append(p.CompletedLessons, lessonID)
	p.CurrentLesson = len(p.CompletedLessons)
}
