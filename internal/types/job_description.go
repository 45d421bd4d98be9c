package types

import (
	"time"

	"github.com/google/uuid"
)

// JobDescription is a parsed job description row.
type JobDescription struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Location           string    `json:"location,omitempty"`
	EmploymentType     string    `json:"employment_type,omitempty"`
	MinExperienceYears Years     `json:"min_experience_years"`
	MaxExperienceYears *float64  `json:"max_experience_years,omitempty"`
	DescriptionSummary string    `json:"description_summary,omitempty"`
	RequiredSkills     []string  `json:"required_skills"`
	JDURL              string    `json:"jd_url,omitempty"`
	FileName           string    `json:"file_name,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// JobShortlist holds the top candidates for a single job description.
type JobShortlist struct {
	JobDescription JobDescription    `json:"job_description"`
	Candidates     []ScoredCandidate `json:"candidates"`
	PoolSize       int               `json:"pool_size"`
}
