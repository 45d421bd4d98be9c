// Package pool serves candidates and job descriptions from a JSON pool file,
// an offline stand-in for the Postgres store.
package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/filtering"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
	schemafiles "github.com/jonathan/candidate-ranker/schemas"
)

// File is an in-memory candidate pool loaded from disk. It is read-only
// after loading and safe for concurrent use.
type File struct {
	path       string
	candidates []types.CandidateRecord
	jobs       []types.JobDescription
	jobsByID   map[uuid.UUID]*types.JobDescription
}

// LoadFile reads and validates a pool file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool file %s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// Parse validates data against the candidate pool schema and decodes it.
func Parse(data []byte) (*File, error) {
	if err := schemas.ValidateDocument(schemafiles.CandidatePool, data); err != nil {
		return nil, err
	}

	var doc types.CandidatePool
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool: %w", err)
	}

	return New(doc.Candidates, doc.JobDescriptions), nil
}

// New builds a pool from already decoded records. Job descriptions are kept
// newest first.
func New(candidates []types.CandidateRecord, jobs []types.JobDescription) *File {
	f := &File{
		candidates: candidates,
		jobs:       append([]types.JobDescription(nil), jobs...),
		jobsByID:   make(map[uuid.UUID]*types.JobDescription, len(jobs)),
	}
	if f.candidates == nil {
		f.candidates = []types.CandidateRecord{}
	}

	sort.SliceStable(f.jobs, func(i, j int) bool {
		return f.jobs[i].CreatedAt.After(f.jobs[j].CreatedAt)
	})
	for i := range f.jobs {
		if f.jobs[i].RequiredSkills == nil {
			f.jobs[i].RequiredSkills = []string{}
		}
		f.jobsByID[f.jobs[i].ID] = &f.jobs[i]
	}
	return f
}

// Path returns the file the pool was loaded from, if any.
func (f *File) Path() string {
	return f.path
}

// Ping always succeeds; the pool is already in memory.
func (f *File) Ping(context.Context) error {
	return nil
}

// ListCandidates applies q in memory, keeping file order.
func (f *File) ListCandidates(ctx context.Context, q filtering.StoreQuery) ([]types.CandidateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := filtering.Apply(q, f.candidates)
	return append([]types.CandidateRecord{}, matched...), nil
}

// GetJobDescription returns nil, nil when id is unknown.
func (f *File) GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	jd, ok := f.jobsByID[id]
	if !ok {
		return nil, nil
	}
	out := *jd
	return &out, nil
}

// ListJobDescriptions returns one page of job descriptions and the total count.
func (f *File) ListJobDescriptions(ctx context.Context, page types.Page) ([]types.JobDescription, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	page = page.Normalize()
	total := len(f.jobs)

	if page.Offset >= total {
		return []types.JobDescription{}, total, nil
	}
	end := page.Offset + page.Limit
	if end > total {
		end = total
	}
	return append([]types.JobDescription{}, f.jobs[page.Offset:end]...), total, nil
}

// CountJobDescriptions returns the number of job descriptions in the file.
func (f *File) CountJobDescriptions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(f.jobs), nil
}
