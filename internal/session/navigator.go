package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/guidance"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/logger"
	"github.com/jonathan/career-navigator/internal/render"
	"github.com/jonathan/career-navigator/internal/shape"
)

// Navigator runs wizard steps against the LLM and the store. Each step either
// completes (persisted, then reflected in the Session) or returns an error and
// leaves both untouched.
type Navigator struct {
	extractor *guidance.ProfileExtractor
	paths     *guidance.CareerPathGenerator
	advisor   *guidance.LearningPathAdvisor
	db        *db.DB
	log       *logger.Logger
}

// NewNavigator wires the generation services to client and persists through database.
func NewNavigator(client llm.Client, database *db.DB, log *logger.Logger) *Navigator {
	if log == nil {
		log = logger.Nop()
	}
	return &Navigator{
		extractor: guidance.NewProfileExtractor(client),
		paths:     guidance.NewCareerPathGenerator(client),
		advisor:   guidance.NewLearningPathAdvisor(client),
		db:        database,
		log:       log,
	}
}

// Load rebuilds a user's session from stored documents. Missing documents
// are a normal partial state.
func (n *Navigator) Load(ctx context.Context, userID string) (*Session, error) {
	sess := New(userID)

	profile, err := n.db.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		sess.ProfileSubmitted = true
		sess.CurrentRole = profile.CurrentRole
		sess.YearsExperience = profile.YearsExperience
		sess.Skills = profile.ExtractedSkills
	}

	paths, err := n.db.GetCareerPaths(ctx, userID)
	if err != nil {
		return nil, err
	}
	if paths != nil {
		sess.CareerPathsReady = true
		sess.CareerPaths = paths.Paths
	}

	plan, err := n.db.GetLearningPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		sess.LearningPlanReady = true
		sess.LearningPlan = plan.Recommendations
	}

	return sess, nil
}

// SubmitProfile extracts skills from the profile, stores them and marks the
// profile step done. An unparseable response is stored as a raw fallback and
// reported as a notice.
func (n *Navigator) SubmitProfile(ctx context.Context, sess *Session, in ProfileInput) error {
	in.CurrentRole = strings.TrimSpace(in.CurrentRole)
	// The text is stored as submitted; only the prompt gets the cleaned copy.
	submitted := in.ProfileText
	in.ProfileText = ingestion.CleanText(submitted)
	if err := in.validate(); err != nil {
		return err
	}

	prompt := in.ProfileText
	if prompt == "" {
		imported, src, err := ingestion.FromURL(ctx, in.ProfileURL, nil)
		if err != nil {
			return fmt.Errorf("failed to import profile: %w", err)
		}
		n.log.Info("imported profile", "user_id", sess.UserID, "platform", src.Platform, "chars", src.Chars)
		prompt, submitted = imported, imported
	}

	raw, err := n.extractor.Generate(ctx, guidance.ProfileParams{ProfileText: prompt})
	if err != nil {
		n.log.Warn("profile extraction failed", "user_id", sess.UserID, "error", err)
		return err
	}
	skills := shape.Normalize(raw)

	err = n.db.UpsertProfile(ctx, &db.Profile{
		UserID:          sess.UserID,
		CurrentRole:     in.CurrentRole,
		YearsExperience: in.YearsExperience,
		ProfileText:     submitted,
		ExtractedSkills: skills,
	})
	if err != nil {
		n.log.Error("failed to store profile", "user_id", sess.UserID, "error", err)
		return err
	}

	sess.ProfileSubmitted = true
	sess.CurrentRole = in.CurrentRole
	sess.YearsExperience = in.YearsExperience
	sess.Skills = skills
	if skills.IsRaw() {
		sess.notify(render.LevelWarning, "We could not read the skills analysis as structured data. The raw response was saved.")
	}
	n.log.Info("profile submitted", "user_id", sess.UserID, "skills_shape", skills.Kind().String())
	return nil
}

// GenerateCareerPaths asks for career paths from the stored role and skills.
func (n *Navigator) GenerateCareerPaths(ctx context.Context, sess *Session, goals CareerGoals) error {
	if !sess.ProfileSubmitted {
		return ErrProfileRequired
	}

	raw, err := n.paths.Generate(ctx, guidance.CareerPathParams{
		CurrentRole:    sess.CurrentRole,
		Skills:         sess.Skills.String(),
		TargetIndustry: goals.TargetIndustry,
	})
	if err != nil {
		n.log.Warn("career path generation failed", "user_id", sess.UserID, "error", err)
		return err
	}
	paths := shape.Normalize(raw)

	if err := n.db.UpsertCareerPaths(ctx, sess.UserID, paths); err != nil {
		n.log.Error("failed to store career paths", "user_id", sess.UserID, "error", err)
		return err
	}

	sess.CareerPaths = paths
	sess.CareerPathsReady = true
	n.log.Info("career paths generated", "user_id", sess.UserID, "shape", paths.Kind().String())
	return nil
}

// GenerateLearningPlan asks for a learning plan toward goals.TargetRole.
func (n *Navigator) GenerateLearningPlan(ctx context.Context, sess *Session, goals CareerGoals) error {
	if !sess.ProfileSubmitted {
		return ErrProfileRequired
	}
	target := strings.TrimSpace(goals.TargetRole)
	if target == "" {
		return &InputError{Field: "target_role", Message: "is required"}
	}

	raw, err := n.advisor.Generate(ctx, guidance.LearningPathParams{
		CurrentSkills: sess.Skills.String(),
		TargetRole:    target,
	})
	if err != nil {
		n.log.Warn("learning plan generation failed", "user_id", sess.UserID, "error", err)
		return err
	}
	plan := shape.Normalize(raw)

	if err := n.db.UpsertLearningPlan(ctx, sess.UserID, plan); err != nil {
		n.log.Error("failed to store learning plan", "user_id", sess.UserID, "error", err)
		return err
	}

	sess.LearningPlan = plan
	sess.LearningPlanReady = true
	n.log.Info("learning plan generated", "user_id", sess.UserID, "shape", plan.Kind().String())
	return nil
}

// SubmitCareerGoals generates career paths and then the learning plan. If the
// first step fails the second is not attempted.
func (n *Navigator) SubmitCareerGoals(ctx context.Context, sess *Session, goals CareerGoals) error {
	if strings.TrimSpace(goals.TargetRole) == "" {
		return &InputError{Field: "target_role", Message: "is required"}
	}
	if err := n.GenerateCareerPaths(ctx, sess, goals); err != nil {
		return err
	}
	return n.GenerateLearningPlan(ctx, sess, goals)
}
