package types

// MaxYearsExperience bounds the years-of-experience input.
const MaxYearsExperience = 50

// ProfileRequest submits a profile for skill extraction. Either ProfileText
// or ProfileURL must be set; when both are, the text wins.
type ProfileRequest struct {
	CurrentRole     string `json:"current_role" validate:"required"`
	YearsExperience int    `json:"years_experience" validate:"min=0,max=50"`
	ProfileText     string `json:"profile_text" validate:"required_without=ProfileURL"`
	ProfileURL      string `json:"profile_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the ProfileRequest using the validator.
func (r *ProfileRequest) Validate() error {
	return validate.Struct(r)
}

// CareerGoalsRequest drives career path and learning plan generation.
// TargetIndustry is optional; TargetRole is required for a learning plan.
type CareerGoalsRequest struct {
	TargetIndustry string `json:"target_industry,omitempty"`
	TargetRole     string `json:"target_role" validate:"required"`
}

// Validate validates the CareerGoalsRequest using the validator.
func (r *CareerGoalsRequest) Validate() error {
	return validate.Struct(r)
}

// CareerPathsRequest generates career paths only.
type CareerPathsRequest struct {
	TargetIndustry string `json:"target_industry,omitempty"`
}

// Validate validates the CareerPathsRequest using the validator.
func (r *CareerPathsRequest) Validate() error {
	return validate.Struct(r)
}

// LearningPlanRequest generates a learning plan only.
type LearningPlanRequest struct {
	TargetRole string `json:"target_role" validate:"required"`
}

// Validate validates the LearningPlanRequest using the validator.
func (r *LearningPlanRequest) Validate() error {
	return validate.Struct(r)
}
