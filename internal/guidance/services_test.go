package guidance

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (c *recordingClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *recordingClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.prompts = append(c.prompts, prompt)
	c.tiers = append(c.tiers, tier)
	return c.response, c.err
}

func (c *recordingClient) GetModel(llm.ModelTier) string { return "fake" }
func (c *recordingClient) Close() error                  { return nil }

func TestBuildProfilePrompt(t *testing.T) {
	prompt := BuildProfilePrompt(ProfileParams{ProfileText: "Senior backend engineer, 8 years, Go and Kubernetes"})

	assert.Contains(t, prompt, "Senior backend engineer, 8 years, Go and Kubernetes")
	assert.Contains(t, prompt, "Technical skills")
	assert.Contains(t, prompt, "technical_skills")
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildCareerPathPrompt(t *testing.T) {
	t.Run("with industry", func(t *testing.T) {
		prompt := BuildCareerPathPrompt(CareerPathParams{
			CurrentRole:    "Backend Engineer",
			Skills:         `{"technical_skills": ["Go"]}`,
			TargetIndustry: "fintech",
		})
		assert.Contains(t, prompt, "current role as Backend Engineer")
		assert.Contains(t, prompt, `{"technical_skills": ["Go"]}`)
		assert.Contains(t, prompt, "could pursue in the fintech.")
	})

	t.Run("without industry", func(t *testing.T) {
		prompt := BuildCareerPathPrompt(CareerPathParams{CurrentRole: "Backend Engineer", TargetIndustry: "   "})
		assert.Contains(t, prompt, "could pursue.")
		assert.NotContains(t, prompt, "in the ")
		assert.NotContains(t, prompt, "{{.")
	})
}

func TestBuildLearningPathPrompt(t *testing.T) {
	prompt := BuildLearningPathPrompt(LearningPathParams{CurrentSkills: "Go, SQL", TargetRole: "Staff Engineer"})
	assert.Contains(t, prompt, "Go, SQL")
	assert.Contains(t, prompt, "Who wants to become a Staff Engineer.")
}

func TestPromptsAreDeterministic(t *testing.T) {
	params := CareerPathParams{CurrentRole: "SRE", Skills: "Linux", TargetIndustry: "gaming"}
	assert.Equal(t, BuildCareerPathPrompt(params), BuildCareerPathPrompt(params))
}

func TestGenerate_ReturnsRawText(t *testing.T) {
	client := &recordingClient{response: "not json, just prose"}
	ctx := context.Background()

	text, err := NewProfileExtractor(client).Generate(ctx, ProfileParams{ProfileText: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not json, just prose", text)

	text, err = NewCareerPathGenerator(client).Generate(ctx, CareerPathParams{CurrentRole: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not json, just prose", text)

	text, err = NewLearningPathAdvisor(client).Generate(ctx, LearningPathParams{TargetRole: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not json, just prose", text)

	assert.Len(t, client.prompts, 3)
	assert.Equal(t, []llm.ModelTier{llm.TierStandard, llm.TierStandard, llm.TierStandard}, client.tiers)
}

func TestGenerate_PropagatesTransportFailure(t *testing.T) {
	cause := errors.New("connection reset")
	client := &recordingClient{err: cause}

	_, err := NewCareerPathGenerator(client).Generate(context.Background(), CareerPathParams{})
	require.Error(t, err)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, StepCareerPaths, apiErr.Step)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, client.prompts, 1, "no retries")
}

func TestGenerate_NilClient(t *testing.T) {
	_, err := NewLearningPathAdvisor(nil).Generate(context.Background(), LearningPathParams{})
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Nil(t, apiErr.Cause)
}
