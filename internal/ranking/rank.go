package ranking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Score computes the score breakdown of one candidate for the given criteria.
// It is a pure function of its arguments.
func Score(record types.CandidateRecord, criteria types.FilterCriteria) types.ScoredCandidate {
	candidateSkills := skills.NewSet(record.Skills)

	skillScore, matched, missing := computeSkillMatch(candidateSkills, criteria.RequiredSkills)
	experienceScore := computeExperienceScore(record.TotalYearsExperience, criteria)
	overall := computeOverallScore(skillScore, experienceScore)

	scored := types.ScoredCandidate{
		CandidateRecord: record,
		SkillMatchScore: skillScore,
		ExperienceScore: experienceScore,
		OverallScore:    overall,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Band:            classifyBand(overall),
	}
	scored.Summary = generateSummary(&scored, criteria)

	return scored
}

// Rank scores every candidate of the pool and orders them by overall score, highest first.
// Candidates with equal scores keep their pool order. The pool is not modified.
func Rank(pool []types.CandidateRecord, criteria types.FilterCriteria) *types.RankedCandidates {
	scored := make([]types.ScoredCandidate, 0, len(pool))
	for _, record := range pool {
		scored = append(scored, Score(record, criteria))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})

	return &types.RankedCandidates{
		Criteria:   criteria,
		Candidates: scored,
		Total:      len(scored),
	}
}

// Top returns at most n of the highest ranked candidates. n <= 0 returns all of them.
func Top(ranked *types.RankedCandidates, n int) []types.ScoredCandidate {
	if ranked == nil {
		return []types.ScoredCandidate{}
	}
	if n <= 0 || n >= len(ranked.Candidates) {
		return ranked.Candidates
	}
	return ranked.Candidates[:n]
}

// generateSummary creates a one-line explanation of the score.
func generateSummary(scored *types.ScoredCandidate, criteria types.FilterCriteria) string {
	var parts []string

	required := len(criteria.RequiredSkills)
	switch {
	case required == 0:
		parts = append(parts, "No required skills")
	case len(scored.MatchedSkills) == required:
		parts = append(parts, fmt.Sprintf("All %d required skills", required))
	case len(scored.MatchedSkills) == 0:
		parts = append(parts, fmt.Sprintf("None of %d required skills", required))
	default:
		parts = append(parts, fmt.Sprintf("%d of %d required skills (missing %s)",
			len(scored.MatchedSkills), required, strings.Join(scored.MissingSkills, ", ")))
	}

	if criteria.HasMinExperience() {
		years := formatYears(scored.TotalYearsExperience.Float())
		minYears := formatYears(*criteria.MinExperienceYears)
		if scored.ExperienceScore == maxScore {
			parts = append(parts, fmt.Sprintf("%s years meets the %s year minimum", years, minYears))
		} else {
			parts = append(parts, fmt.Sprintf("%s of %s required years", years, minYears))
		}
	}

	return strings.Join(parts, ". ")
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
