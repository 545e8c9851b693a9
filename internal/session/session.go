// Package session drives the three-step career wizard for one user: submit a
// profile, then generate career paths and a learning plan. State lives in an
// explicit Session value; nothing is shared between requests except the store.
package session

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-navigator/internal/render"
	"github.com/jonathan/career-navigator/internal/shape"
	"github.com/jonathan/career-navigator/internal/types"
)

// ErrProfileRequired is returned by generation steps before a profile exists.
var ErrProfileRequired = errors.New("submit your profile before generating career guidance")

// InputError reports a user input that cannot be processed.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Notice is a non-blocking message for the user.
type Notice struct {
	Level   render.Level `json:"level"`
	Message string       `json:"message"`
}

// Session holds one user's wizard state.
type Session struct {
	UserID string `json:"user_id"`

	ProfileSubmitted  bool `json:"profile_submitted"`
	CareerPathsReady  bool `json:"career_paths_ready"`
	LearningPlanReady bool `json:"learning_plan_ready"`

	CurrentRole     string `json:"current_role,omitempty"`
	YearsExperience int    `json:"years_experience"`

	Skills       shape.Value `json:"skills"`
	CareerPaths  shape.Value `json:"career_paths"`
	LearningPlan shape.Value `json:"learning_plan"`

	Notices []Notice `json:"notices,omitempty"`
}

// New returns an empty session for userID.
func New(userID string) *Session {
	return &Session{UserID: userID}
}

// CareerGoalsSubmitted reports whether both generation steps have completed.
func (s *Session) CareerGoalsSubmitted() bool {
	return s.CareerPathsReady && s.LearningPlanReady
}

func (s *Session) notify(level render.Level, msg string) {
	s.Notices = append(s.Notices, Notice{Level: level, Message: msg})
}

// ProfileInput is the profile form.
type ProfileInput struct {
	CurrentRole     string
	YearsExperience int
	ProfileText     string
	ProfileURL      string // used when ProfileText is empty
}

func (in ProfileInput) validate() error {
	switch {
	case in.CurrentRole == "":
		return &InputError{Field: "current_role", Message: "is required"}
	case in.YearsExperience < 0 || in.YearsExperience > types.MaxYearsExperience:
		return &InputError{Field: "years_experience", Message: fmt.Sprintf("must be between 0 and %d", types.MaxYearsExperience)}
	case in.ProfileText == "" && in.ProfileURL == "":
		return &InputError{Field: "profile_text", Message: "is required"}
	}
	return nil
}

// CareerGoals is the goals form. TargetIndustry is optional.
type CareerGoals struct {
	TargetIndustry string
	TargetRole     string
}
