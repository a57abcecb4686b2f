// Package lessons holds the prompting curriculum: the lesson catalog,
// exercise checking, learner progress and LLM-written coaching tips.
package lessons

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/promptcoach/internal/scoring"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is an in-memory, ordered lesson lookup. It is safe for
// concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Lesson
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]Lesson)}
}

// DefaultCatalog returns the built-in five-lesson curriculum.
func DefaultCatalog() (*Catalog, error) {
	c := NewCatalog()
	if err := c.load(defaultCatalog); err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return c, nil
}

// MustDefault is DefaultCatalog for callers that treat a broken embedded
// catalog as a programming error.
func MustDefault() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile adds every lesson in a YAML file to the catalog.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lessons: %w", err)
	}
	if err := c.load(data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) load(data []byte) error {
	var lessons []Lesson
	if err := yaml.Unmarshal(data, &lessons); err != nil {
		return fmt.Errorf("parse lessons: %w", err)
	}
	for _, l := range lessons {
		if err := c.Add(l); err != nil {
			return err
		}
	}
	return nil
}

// Add inserts a lesson or replaces the one with the same id, keeping its
// position.
func (c *Catalog) Add(l Lesson) error {
	if err := l.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[l.ID]; !ok {
		c.order = append(c.order, l.ID)
	}
	c.byID[l.ID] = l
	return nil
}

// Get returns the lesson with the given id.
func (c *Catalog) Get(id string) (Lesson, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// All returns every lesson in catalog order.
func (c *Catalog) All() []Lesson {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Lesson, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByLevel returns the lessons of one difficulty in catalog order.
func (c *Catalog) ByLevel(difficulty int) []Lesson {
	var out []Lesson
	for _, l := range c.All() {
		if l.Difficulty == difficulty {
			out = append(out, l)
		}
	}
	return out
}

// Next recommends the first uncompleted lesson at the learner's level,
// then at the level above. ok is false when nothing fits.
func (c *Catalog) Next(p *UserProgress) (Lesson, bool) {
	if l, ok := c.firstOpen(p, p.SkillLevel); ok {
		return l, true
	}
	if p.SkillLevel < MaxLevel {
		return c.firstOpen(p, p.SkillLevel+1)
	}
	return Lesson{}, false
}

// LevelUp raises the learner's skill level once every lesson at the
// current level is completed. It reports whether the level changed.
func (c *Catalog) LevelUp(p *UserProgress) bool {
	if p.SkillLevel >= MaxLevel {
		return false
	}
	if _, open := c.firstOpen(p, p.SkillLevel); open {
		return false
	}
	p.SkillLevel++
	return true
}

func (c *Catalog) firstOpen(p *UserProgress, level int) (Lesson, bool) {
	for _, l := range c.ByLevel(level) {
		if !p.Completed(l.ID) {
			return l, true
		}
	}
	return Lesson{}, false
}

// FindExercise looks an exercise up across every lesson.
func (c *Catalog) FindExercise(id string) (Lesson, Exercise, error) {
	for _, l := range c.All() {
		if ex, err := l.Exercise(id); err == nil {
			return l, ex, nil
		}
	}
	return Lesson{}, Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
}

// ExerciseResult is the outcome of one exercise attempt.
type ExerciseResult struct {
	ExerciseID  string        `json:"exercise_id"`
	Score       scoring.Score `json:"score"`
	IntentMatch bool          `json:"intent_match"`
	Passed      bool          `json:"passed"`
}

// CheckExercise scores an attempt. It passes when the intent matches and
// the score passes. A nil scorer uses the default rubric.
func CheckExercise(ctx context.Context, scorer scoring.Scorer, ex Exercise, prompt string) ExerciseResult {
	if scorer == nil {
		scorer = scoring.DefaultRubric()
	}
	return Judge(ex, scorer.Score(ctx, prompt))
}

// Judge grades an already computed score against an exercise.
func Judge(ex Exercise, s scoring.Score) ExerciseResult {
	match := s.Intent == ex.ExpectedIntent
	return ExerciseResult{
		ExerciseID:  ex.ID,
		Score:       s,
		IntentMatch: match,
		Passed:      match && s.Passing(),
	}
}
