// Package types provides type definitions for structured data used throughout the candidate ranker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CandidateRecord is a parsed résumé row as it arrives from the candidate store.
// The ranker never mutates it.
type CandidateRecord struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	CurrentCompany       string     `json:"current_company"`
	TotalYearsExperience Years      `json:"total_years_experience"`
	Skills               []string   `json:"skills"`
	ResumeURL            string     `json:"resume_url,omitempty"`
	FileName             string     `json:"file_name,omitempty"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
}

// CandidatePool is the file representation of a candidate pool.
// Job descriptions are optional and let a file stand in for the store.
type CandidatePool struct {
	Candidates      []CandidateRecord `json:"candidates"`
	JobDescriptions []JobDescription  `json:"job_descriptions,omitempty"`
}

// Years is a non-negative number of years of experience.
// Decoding is lenient: null, missing, non-numeric, negative and non-finite values become 0.
type Years float64

// NewYears converts a nullable numeric column into Years.
func NewYears(v *float64) Years {
	if v == nil {
		return 0
	}
	return sanitizeYears(*v)
}

// Float returns the value as a float64.
func (y Years) Float() float64 {
	return float64(y)
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}

	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			*y = 0
			return nil
		}
	} else {
		s = string(data)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*y = 0
		return nil
	}
	*y = sanitizeYears(f)
	return nil
}

func sanitizeYears(f float64) Years {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return Years(f)
}
