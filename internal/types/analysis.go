// Package types provides type definitions for structured data used throughout the portfolio evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EvaluationMode is reported with every result so consumers know which rubric produced it.
const EvaluationMode = "STRICT_JD_BASED_RECRUITER"

// PortfolioSnapshot is what the renderer saw on the candidate's site.
// Text is raw when produced by a renderer; the pipeline collapses and truncates it.
type PortfolioSnapshot struct {
	URL   string
	Text  string
	HTML  string
	Links []string
}

// BuildType labels the technical build of a portfolio site.
type BuildType string

const (
	// BuildStaticHTML is a server-rendered or hand-written static site
	BuildStaticHTML BuildType = "Static HTML"
	// BuildReactSPA is a client-rendered single-page application
	BuildReactSPA BuildType = "React / SPA"
)

// BuildClassification is the heuristic verdict on how a portfolio was built.
// Confidence is a fixed heuristic score, not a measured probability.
type BuildClassification struct {
	BuildType  BuildType `json:"build_type"`
	Confidence float64   `json:"confidence"`
	Heuristic  bool      `json:"heuristic"`
}

// JobDescriptor is the minimal hiring data pulled out of a job description.
type JobDescriptor struct {
	JobTitle    string   `json:"job_title"`
	ATSKeywords []string `json:"ats_keywords"`
}

// KeywordMatch partitions ATS keywords by presence in the portfolio text.
type KeywordMatch struct {
	Matched []string
	Missing []string
	Score   int
}

// HiringDecision is the recruiter verdict.
type HiringDecision string

const (
	// DecisionShortlist moves the candidate forward
	DecisionShortlist HiringDecision = "Shortlist"
	// DecisionHold parks the candidate pending other applicants
	DecisionHold HiringDecision = "Hold"
	// DecisionReject ends the candidate's process for this role
	DecisionReject HiringDecision = "Reject"
)

// HiringDecisions lists the permitted decisions in display order.
func HiringDecisions() []HiringDecision {
	return []HiringDecision{DecisionShortlist, DecisionHold, DecisionReject}
}

// FitAssessment is the recruiter-style judgment returned by the completion service.
type FitAssessment struct {
	StrongMatches  []string       `json:"strong_matches"`
	PartialMatches []string       `json:"partial_matches"`
	MissingSkills  []string       `json:"missing_skills"`
	FitScore       int            `json:"jd_fit_score" validate:"min=0,max=100"`
	Decision       HiringDecision `json:"hiring_decision" validate:"required,oneof=Shortlist Hold Reject"`
	Reason         string         `json:"decision_reason"`
}

// ATSMatch is the serialized keyword coverage block.
type ATSMatch struct {
	Score        int `json:"ats_keyword_score"`
	MatchedCount int `json:"matched_keyword_count"`
	MissingCount int `json:"missing_keyword_count"`
}

// SkillEvidence is the serialized fit-assessment evidence block.
type SkillEvidence struct {
	StrongMatchCount  int      `json:"strong_match_count"`
	PartialMatchCount int      `json:"partial_match_count"`
	MissingSkillCount int      `json:"missing_skill_count"`
	PartialMatches    []string `json:"partial_matches"`
	MissingSkills     []string `json:"missing_skills"`
}

// AnalysisResult is the complete, immutable report for one analysis request.
type AnalysisResult struct {
	PortfolioURL   string              `json:"portfolio_url"`
	JobTitle       string              `json:"job_title"`
	EvaluationMode string              `json:"evaluation_mode"`
	PortfolioBuild BuildClassification `json:"portfolio_build"`
	ATSMatch       ATSMatch            `json:"ats_match"`
	SkillEvidence  SkillEvidence       `json:"skill_evidence"`
	FitScore       int                 `json:"jd_fit_score"`
	HiringDecision HiringDecision      `json:"hiring_decision"`
	DecisionReason string              `json:"decision_reason"`
}
