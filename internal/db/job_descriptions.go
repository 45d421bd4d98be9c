package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Job Description Methods
// -----------------------------------------------------------------------------

const jobDescriptionColumns = `id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
		        COALESCE(employment_type, ''), min_experience_years::float8,
		        max_experience_years::float8, COALESCE(description_summary, ''),
		        required_skills, COALESCE(jd_url, ''), COALESCE(file_name, ''), created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobDescription(row rowScanner) (*types.JobDescription, error) {
	var jd types.JobDescription
	var minYears *float64

	err := row.Scan(&jd.ID, &jd.Title, &jd.Company, &jd.Location, &jd.EmploymentType,
		&minYears, &jd.MaxExperienceYears, &jd.DescriptionSummary, &jd.RequiredSkills,
		&jd.JDURL, &jd.FileName, &jd.CreatedAt)
	if err != nil {
		return nil, err
	}
	jd.MinExperienceYears = types.NewYears(minYears)
	if jd.RequiredSkills == nil {
		jd.RequiredSkills = []string{}
	}
	return &jd, nil
}

// GetJobDescription retrieves a job description by ID. It returns nil, nil
// when no row matches.
func (db *DB) GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobDescriptionColumns+`
		 FROM job_descriptions WHERE id = $1`,
		id,
	)
	jd, err := scanJobDescription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return jd, nil
}

// ListJobDescriptions lists job descriptions newest first, with the total count.
func (db *DB) ListJobDescriptions(ctx context.Context, page types.Page) ([]types.JobDescription, int, error) {
	page = page.Normalize()

	total, err := db.CountJobDescriptions(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobDescriptionColumns+`
		 FROM job_descriptions
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobDescription{}
	for rows.Next() {
		jd, err := scanJobDescription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job description: %w", err)
		}
		jobs = append(jobs, *jd)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate job descriptions: %w", err)
	}

	return jobs, total, nil
}

// CountJobDescriptions returns the number of stored job descriptions.
func (db *DB) CountJobDescriptions(ctx context.Context) (int, error) {
	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_descriptions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count job descriptions: %w", err)
	}
	return total, nil
}
