package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/candidate-ranker/internal/filtering"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Methods
// -----------------------------------------------------------------------------

const candidateColumns = `id::text, COALESCE(name, ''), COALESCE(current_company, ''),
		        total_years_experience::float8, skills,
		        COALESCE(resume_url, ''), COALESCE(file_name, ''), created_at`

// buildCandidateQuery renders the store pre-filter as SQL. Text search is an
// ILIKE on name OR company; the skill filter keeps rows whose lower-cased
// skills overlap the required set.
func buildCandidateQuery(q filtering.StoreQuery) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if q.NamePattern != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(name ILIKE $%d ESCAPE '\' OR current_company ILIKE $%d ESCAPE '\')`,
			argIndex, argIndex))
		args = append(args, q.NamePattern)
		argIndex++
	}

	if len(q.SkillsAny) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM unnest(skills) AS s WHERE lower(btrim(s)) = ANY($%d))`,
			argIndex))
		args = append(args, q.SkillsAny)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "\n\t\t WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(
		`SELECT %s
		 FROM resumes%s
		 ORDER BY created_at DESC NULLS LAST, id`,
		candidateColumns, whereClause,
	)
	return query, args
}

// ListCandidates returns candidate records narrowed by the store query,
// newest first.
func (db *DB) ListCandidates(ctx context.Context, q filtering.StoreQuery) ([]types.CandidateRecord, error) {
	query, args := buildCandidateQuery(q)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []types.CandidateRecord{}
	for rows.Next() {
		var c types.CandidateRecord
		var years *float64
		var createdAt *time.Time

		if err := rows.Scan(&c.ID, &c.Name, &c.CurrentCompany, &years, &c.Skills,
			&c.ResumeURL, &c.FileName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.TotalYearsExperience = types.NewYears(years)
		c.CreatedAt = createdAt
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}
