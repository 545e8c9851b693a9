// Package guidance builds the three career-guidance prompts and sends them to
// the LLM. Responses are returned verbatim; interpreting them is the job of
// the shape package and the renderers.
package guidance

import (
	"context"
	"strings"

	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/prompts"
)

// Step names used in errors and logs.
const (
	StepProfile      = "profile_extraction"
	StepCareerPaths  = "career_paths"
	StepLearningPath = "learning_path"
)

// ProfileParams is the input to skill extraction.
type ProfileParams struct {
	ProfileText string
}

// CareerPathParams is the input to career path generation.
type CareerPathParams struct {
	CurrentRole    string
	Skills         string
	TargetIndustry string // optional
}

// LearningPathParams is the input to learning plan generation.
type LearningPathParams struct {
	CurrentSkills string
	TargetRole    string
}

// ProfileExtractor extracts categorized skills from free-text profiles.
type ProfileExtractor struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewProfileExtractor creates a ProfileExtractor backed by client.
func NewProfileExtractor(client llm.Client) *ProfileExtractor {
	return &ProfileExtractor{client: client, tier: llm.TierStandard}
}

// Generate returns the LLM's raw answer for the profile.
func (p *ProfileExtractor) Generate(ctx context.Context, params ProfileParams) (string, error) {
	return call(ctx, p.client, StepProfile, BuildProfilePrompt(params), p.tier)
}

// CareerPathGenerator proposes career paths for a role and skill set.
type CareerPathGenerator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewCareerPathGenerator creates a CareerPathGenerator backed by client.
func NewCareerPathGenerator(client llm.Client) *CareerPathGenerator {
	return &CareerPathGenerator{client: client, tier: llm.TierStandard}
}

// Generate returns the LLM's raw answer for the career path request.
func (g *CareerPathGenerator) Generate(ctx context.Context, params CareerPathParams) (string, error) {
	return call(ctx, g.client, StepCareerPaths, BuildCareerPathPrompt(params), g.tier)
}

// LearningPathAdvisor recommends a sequenced learning plan.
type LearningPathAdvisor struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLearningPathAdvisor creates a LearningPathAdvisor backed by client.
func NewLearningPathAdvisor(client llm.Client) *LearningPathAdvisor {
	return &LearningPathAdvisor{client: client, tier: llm.TierStandard}
}

// Generate returns the LLM's raw answer for the learning plan request.
func (a *LearningPathAdvisor) Generate(ctx context.Context, params LearningPathParams) (string, error) {
	return call(ctx, a.client, StepLearningPath, BuildLearningPathPrompt(params), a.tier)
}

// BuildProfilePrompt renders the skill extraction prompt.
func BuildProfilePrompt(params ProfileParams) string {
	template := prompts.MustGet(prompts.CareerFile, prompts.KeyExtractSkills)
	return prompts.Format(template, map[string]string{
		"ProfileText": params.ProfileText,
	})
}

// BuildCareerPathPrompt renders the career path prompt. The industry clause is
// dropped entirely when no target industry is given.
func BuildCareerPathPrompt(params CareerPathParams) string {
	industryClause := ""
	if industry := strings.TrimSpace(params.TargetIndustry); industry != "" {
		industryClause = " in the " + industry
	}

	template := prompts.MustGet(prompts.CareerFile, prompts.KeyCareerPaths)
	return prompts.Format(template, map[string]string{
		"CurrentRole":    params.CurrentRole,
		"Skills":         params.Skills,
		"IndustryClause": industryClause,
	})
}

// BuildLearningPathPrompt renders the learning plan prompt.
func BuildLearningPathPrompt(params LearningPathParams) string {
	template := prompts.MustGet(prompts.CareerFile, prompts.KeyLearningPath)
	return prompts.Format(template, map[string]string{
		"CurrentSkills": params.CurrentSkills,
		"TargetRole":    params.TargetRole,
	})
}

func call(ctx context.Context, client llm.Client, step, prompt string, tier llm.ModelTier) (string, error) {
	if client == nil {
		return "", &APICallError{Step: step, Message: "LLM client is not configured"}
	}

	text, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", &APICallError{
			Step:    step,
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}
	return text, nil
}
