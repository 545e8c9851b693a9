package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-navigator/internal/render"
	"github.com/jonathan/career-navigator/internal/server/middleware"
	"github.com/jonathan/career-navigator/internal/session"
	"github.com/jonathan/career-navigator/internal/types"
)

// View names served under /me/views/{name}.
const (
	ViewSkills       = "skills"
	ViewCareerPaths  = "career-paths"
	ViewLearningPlan = "learning-plan"
)

// loadSession resolves the caller and rebuilds their session. It writes the
// error response itself and returns nil on failure.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) *session.Session {
	userID, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	sess, err := s.navigator.Load(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return nil
	}
	return sess
}

// decode reads a JSON body and runs its validation. It writes a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{ Validate() error }) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := dst.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess := s.loadSession(w, r); sess != nil {
		s.jsonResponse(w, http.StatusOK, sess)
	}
}

// handleSubmitProfile runs skill extraction and returns the updated session.
func (s *Server) handleSubmitProfile(w http.ResponseWriter, r *http.Request) {
	var req types.ProfileRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	err := s.navigator.SubmitProfile(r.Context(), sess, session.ProfileInput{
		CurrentRole:     req.CurrentRole,
		YearsExperience: req.YearsExperience,
		ProfileText:     req.ProfileText,
		ProfileURL:      req.ProfileURL,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if profile == nil {
		s.failure(w, r, &ErrNotGenerated{What: "profile"})
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleGenerateCareerPaths(w http.ResponseWriter, r *http.Request) {
	var req types.CareerPathsRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	if err := s.navigator.GenerateCareerPaths(r.Context(), sess, session.CareerGoals{TargetIndustry: req.TargetIndustry}); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleGetCareerPaths(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	paths, err := s.db.GetCareerPaths(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if paths == nil {
		s.failure(w, r, &ErrNotGenerated{What: "career paths"})
		return
	}
	s.jsonResponse(w, http.StatusOK, paths)
}

func (s *Server) handleGenerateLearningPlan(w http.ResponseWriter, r *http.Request) {
	var req types.LearningPlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	if err := s.navigator.GenerateLearningPlan(r.Context(), sess, session.CareerGoals{TargetRole: req.TargetRole}); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleGetLearningPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	plan, err := s.db.GetLearningPlan(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if plan == nil {
		s.failure(w, r, &ErrNotGenerated{What: "learning plan"})
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

// handleSubmitCareerGoals generates career paths and then the learning plan.
func (s *Server) handleSubmitCareerGoals(w http.ResponseWriter, r *http.Request) {
	var req types.CareerGoalsRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	err := s.navigator.SubmitCareerGoals(r.Context(), sess, session.CareerGoals{
		TargetIndustry: req.TargetIndustry,
		TargetRole:     req.TargetRole,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

// handleGetView renders one stored result. Missing results render as a
// notice rather than an error.
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var draw func(render.Target, any)
	var input func(*session.Session) any
	switch name {
	case ViewSkills:
		draw, input = render.SkillsRadar, func(sess *session.Session) any { return sess.Skills }
	case ViewCareerPaths:
		draw, input = render.CareerPathTimeline, func(sess *session.Session) any { return sess.CareerPaths }
	case ViewLearningPlan:
		draw, input = render.LearningPath, func(sess *session.Session) any { return sess.LearningPlan }
	default:
		s.errorResponse(w, http.StatusNotFound, "unknown view: "+name)
		return
	}

	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	view := render.NewView()
	draw(view, input(sess))
	s.jsonResponse(w, http.StatusOK, view)
}
