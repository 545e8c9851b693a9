package db

import (
	"time"

	"github.com/jonathan/career-navigator/internal/shape"
	"github.com/jonathan/career-navigator/internal/storage"
)

// Profile is the stored result of a profile submission.
type Profile struct {
	UserID          string      `json:"user_id"`
	CurrentRole     string      `json:"current_role"`
	YearsExperience int         `json:"years_experience"`
	ProfileText     string      `json:"profile_text"`
	ExtractedSkills shape.Value `json:"extracted_skills"`
}

// CareerPaths is the stored career path document.
type CareerPaths struct {
	UserID string      `json:"user_id"`
	Paths  shape.Value `json:"paths"`
}

// LearningPlan is the stored learning plan document.
type LearningPlan struct {
	UserID          string      `json:"user_id"`
	Recommendations shape.Value `json:"recommendations"`
}

// AuthUser is an account in auth_users, keyed by email.
type AuthUser struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
}

func profileFromDocument(doc storage.Document) *Profile {
	p := &Profile{
		ExtractedSkills: shape.FromAny(doc[FieldExtractedSkills]),
	}
	p.UserID, _ = doc[FieldUserID].(string)
	p.CurrentRole, _ = doc[FieldCurrentRole].(string)
	p.ProfileText, _ = doc[FieldProfileText].(string)
	if years, ok := doc[FieldYearsExperience].(float64); ok {
		p.YearsExperience = int(years)
	}
	return p
}
