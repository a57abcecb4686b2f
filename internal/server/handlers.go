package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/feedback"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/rage"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

type scoreRequest struct {
	Prompt     string `json:"prompt"`
	Style      string `json:"style"`
	UserID     string `json:"user_id"`
	LessonID   string `json:"lesson_id"`
	ExerciseID string `json:"exercise_id"`
}

type scoreResponse struct {
	coach.Result
	Exercise *lessons.ExerciseResult `json:"exercise,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	var ex *lessons.Exercise
	if req.ExerciseID != "" {
		lesson, found, err := s.deps.Catalog.FindExercise(req.ExerciseID)
		if err != nil {
			writeError(w, http.StatusNotFound, "exercise not found")
			return
		}
		ex = &found
		req.LessonID = lesson.ID
	}

	res, err := s.deps.Coach.Evaluate(r.Context(), coach.Request{
		UserID:     req.UserID,
		Prompt:     req.Prompt,
		Style:      feedback.Style(req.Style),
		LessonID:   req.LessonID,
		ExerciseID: req.ExerciseID,
	})
	if err != nil {
		s.log.Warn("evaluation not recorded", "error", err)
	}

	resp := scoreResponse{Result: res}
	if ex != nil {
		exRes := lessons.Judge(*ex, res.Analysis.Score)
		resp.Exercise = &exRes
	}
	writeJSON(w, http.StatusOK, resp)
}

type demoRequest struct {
	Prompt   string `json:"prompt"`
	Improved string `json:"improved"`
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	var req demoRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Demo.Demonstrate(r.Context(), req.Prompt, req.Improved))
}

func (s *Server) handleListLessons(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"lessons": s.deps.Catalog.All()})
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.Catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, lessons.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

type nextLessonRequest struct {
	SkillLevel int      `json:"skill_level"`
	Completed  []string `json:"completed"`
}

func (s *Server) handleNextLesson(w http.ResponseWriter, r *http.Request) {
	var req nextLessonRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SkillLevel == 0 {
		req.SkillLevel = lessons.MinLevel
	}
	p, err := lessons.NewProgress("", req.SkillLevel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.CompletedLessons = req.Completed

	l, ok := s.deps.Catalog.Next(p)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"lesson": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lesson": l})
}

type startSessionRequest struct {
	UserID string `json:"user_id"`
}

type startSessionResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, sess := s.sessions.create(req.UserID)
	writeJSON(w, http.StatusCreated, startSessionResponse{
		SessionID: id,
		UserID:    sess.UserID,
		StartedAt: sess.Start,
	})
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type meter struct {
	Progress    int    `json:"progress"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type promptResponse struct {
	Response          string              `json:"response"`
	EmotionalState    rage.EmotionalState `json:"emotional_state"`
	Attempt           rage.Attempt        `json:"attempt"`
	Meter             meter               `json:"meter"`
	RageQuitAvailable bool                `json:"rage_quit_available"`
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	var resp promptResponse
	err := s.sessions.with(chi.URLParam(r, "id"), func(m *rage.Manager) error {
		reply, state, attempt, err := m.Process(req.Prompt)
		if err != nil {
			return err
		}
		resp = promptResponse{
			Response:       reply,
			EmotionalState: state,
			Attempt:        attempt,
			Meter: meter{
				Progress:    state.Progress(),
				Title:       state.Title(),
				Description: state.Description(),
			},
			RageQuitAvailable: m.ShouldOfferRageQuit(),
		}
		return nil
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	var sum rage.Summary
	err := s.sessions.with(chi.URLParam(r, "id"), func(m *rage.Manager) error {
		sum = m.Summary()
		return nil
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type quitResponse struct {
	*rage.Result
	EntertainingMetric float64 `json:"entertaining_metric"`
	PersistenceRating  string  `json:"persistence_rating"`
	Legendary          bool    `json:"legendary"`
	SummaryTitle       string  `json:"summary_title"`
	Saved              bool    `json:"saved"`
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	var res *rage.Result
	err := s.sessions.with(chi.URLParam(r, "id"), func(m *rage.Manager) error {
		var err error
		res, err = m.RageQuit()
		return err
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}

	saved := false
	if s.deps.Results != nil {
		if err := rage.Save(r.Context(), s.deps.Results, res); err != nil {
			s.log.Error("rage result not saved", "id", res.ID, "error", err)
		} else {
			saved = true
		}
	}

	writeJSON(w, http.StatusOK, quitResponse{
		Result:             res,
		EntertainingMetric: res.EntertainingMetric(),
		PersistenceRating:  res.Score.PersistenceRating(),
		Legendary:          res.Score.Legendary(),
		SummaryTitle:       res.SummaryTitle(),
		Saved:              saved,
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, errSessionNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type leaderboardEntry struct {
	Rank               int       `json:"rank"`
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	PersistenceRating  string    `json:"persistence_rating"`
	FinalState         string    `json:"final_state"`
	TotalAttempts      int       `json:"total_attempts"`
	TimeElapsedSeconds int       `json:"time_elapsed_seconds"`
	EntertainingMetric float64   `json:"entertaining_metric"`
	Legendary          bool      `json:"legendary"`
	Achievement        string    `json:"achievement,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.LeaderboardSize
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries := []leaderboardEntry{}
	if s.deps.Results != nil {
		rows, err := s.deps.Results.Leaderboard(r.Context(), limit)
		if err != nil {
			s.log.Error("leaderboard query failed", "error", err)
			writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
			return
		}
		for i, row := range rows {
			entries = append(entries, leaderboardEntry{
				Rank:               i + 1,
				ID:                 row.ID,
				UserID:             row.UserID,
				PersistenceRating:  row.PersistenceRating,
				FinalState:         row.FinalState,
				TotalAttempts:      row.TotalAttempts,
				TimeElapsedSeconds: row.TimeElapsedSeconds,
				EntertainingMetric: row.EntertainingMetric,
				Legendary:          row.Legendary,
				Achievement:        row.Achievement,
				CreatedAt:          row.Timestamp,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// sessionError maps rage and registry errors onto status codes.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errSessionNotFound), errors.Is(err, rage.ErrNoSession):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, rage.ErrNoAttempts):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, rage.ErrAlreadyQuit):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("rage session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
