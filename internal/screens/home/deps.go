package home

import (
	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/demo"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/store"
)

// Deps are the services the TUI screens run on. The repos may be nil, in
// which case nothing is persisted and the history screens are disabled.
type Deps struct {
	UserID      string
	Coach       *coach.Service
	Demo        *demo.Demonstrator
	Catalog     *lessons.Catalog
	Tutor       *lessons.Tutor // nil without an AI collaborator
	Progress    *lessons.UserProgress
	AutoAdvance bool
	NewManager  func() *rage.Manager

	Evals     store.EvaluationRepo
	Results   store.ResultRepo
	Snapshots store.SnapshotRepo
}
