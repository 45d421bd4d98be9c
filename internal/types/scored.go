package types

// Band is a coarse classification of an overall score.
type Band string

// Band values, highest first.
const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// ScoredCandidate is a candidate annotated with its score breakdown for one set of criteria.
// It is recomputed on every request and never stored.
type ScoredCandidate struct {
	CandidateRecord

	SkillMatchScore int      `json:"skill_match_score"`
	ExperienceScore int      `json:"experience_score"`
	OverallScore    int      `json:"overall_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Band            Band     `json:"band"`
	Summary         string   `json:"summary"`

	// DownloadURL is filled in by the presentation layer, never by the ranking engine.
	DownloadURL string `json:"download_url,omitempty"`
}

// RankedCandidates is the result of one ranking request.
type RankedCandidates struct {
	Criteria   FilterCriteria    `json:"criteria"`
	Candidates []ScoredCandidate `json:"candidates"`
	Total      int               `json:"total"`
}
