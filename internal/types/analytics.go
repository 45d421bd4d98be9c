package types

// PoolStats summarises the candidate pool for the dashboard header.
type PoolStats struct {
	TotalCandidates      int          `json:"total_candidates"`
	TotalJobDescriptions int          `json:"total_job_descriptions"`
	AverageExperience    float64      `json:"average_experience"`
	UniqueSkills         int          `json:"unique_skills"`
	TopSkills            []SkillCount `json:"top_skills"`
}

// SkillCount is the number of candidates listing a (lower-cased) skill.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
