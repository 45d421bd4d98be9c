// Package screening fetches candidate pools and runs them through the ranking engine.
package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/filtering"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// ErrJobNotFound is returned when a job description id has no record.
var ErrJobNotFound = errors.New("job description not found")

// maxShortlistConcurrency bounds concurrent pool fetches for one shortlist.
const maxShortlistConcurrency = 4

// CandidateSource returns candidate records narrowed by a store query.
type CandidateSource interface {
	ListCandidates(ctx context.Context, q filtering.StoreQuery) ([]types.CandidateRecord, error)
}

// JobSource reads job descriptions.
type JobSource interface {
	GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error)
	ListJobDescriptions(ctx context.Context, page types.Page) ([]types.JobDescription, int, error)
	CountJobDescriptions(ctx context.Context) (int, error)
}

// Store is a full read-only backing store, implemented by *db.DB and *pool.File.
type Store interface {
	CandidateSource
	JobSource
	Ping(ctx context.Context) error
}

// Linker produces download links for résumé URLs.
type Linker interface {
	DownloadURL(ctx context.Context, resumeURL string) (string, error)
}

// Service ranks candidate pools fetched from a Store.
type Service struct {
	store  Store
	links  Linker
	logger *zap.Logger
}

// NewService creates a Service. links may be nil, in which case no download
// links are attached.
func NewService(store Store, links Linker, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		links:  links,
		logger: logger.OrNop(log),
	}
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Screen ranks the pool against raw dashboard criteria.
func (s *Service) Screen(ctx context.Context, raw types.RawCriteria) (*types.RankedCandidates, error) {
	return s.Rank(ctx, filtering.FromRaw(raw))
}

// Rank fetches the pool narrowed by criteria and ranks it. A fetch failure
// is returned without invoking the engine.
func (s *Service) Rank(ctx context.Context, criteria types.FilterCriteria) (*types.RankedCandidates, error) {
	start := time.Now()

	pool, err := s.store.ListCandidates(ctx, filtering.Query(criteria))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	ranked := ranking.Rank(pool, criteria)
	s.attachDownloadLinks(ctx, ranked.Candidates)

	s.logger.Debug("ranked candidate pool",
		append(logger.CriteriaFields(criteria.SearchTerm, criteria.RequiredSkills, criteria.MinExperienceYears),
			zap.Int("pool_size", len(pool)),
			zap.Duration("duration", time.Since(start)))...)

	return ranked, nil
}

// GetJobDescription returns ErrJobNotFound for unknown ids.
func (s *Service) GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error) {
	jd, err := s.store.GetJobDescription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job description: %w", err)
	}
	if jd == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return jd, nil
}

// ListJobDescriptions returns one page of job descriptions, newest first.
func (s *Service) ListJobDescriptions(ctx context.Context, page types.Page) ([]types.JobDescription, int, error) {
	jobs, total, err := s.store.ListJobDescriptions(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch job descriptions: %w", err)
	}
	return jobs, total, nil
}

// ScreenForJob ranks the pool against a job description's required skills and
// minimum years. limit > 0 keeps only the top limit candidates.
func (s *Service) ScreenForJob(ctx context.Context, id uuid.UUID, limit int) (*types.JobShortlist, error) {
	jd, err := s.GetJobDescription(ctx, id)
	if err != nil {
		return nil, err
	}

	ranked, err := s.Rank(ctx, filtering.ForJobDescription(jd))
	if err != nil {
		return nil, err
	}

	return &types.JobShortlist{
		JobDescription: *jd,
		Candidates:     ranking.Top(ranked, limit),
		PoolSize:       ranked.Total,
	}, nil
}

// Shortlist screens the pool against several job descriptions concurrently.
// Results follow the order of ids; the first failure cancels the rest.
func (s *Service) Shortlist(ctx context.Context, ids []uuid.UUID, limit int) ([]types.JobShortlist, error) {
	results := make([]types.JobShortlist, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxShortlistConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			shortlist, err := s.ScreenForJob(gctx, id, limit)
			if err != nil {
				return err
			}
			results[i] = *shortlist
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("built shortlists", zap.Int("job_descriptions", len(ids)), zap.Int("limit", limit))
	return results, nil
}

func (s *Service) attachDownloadLinks(ctx context.Context, candidates []types.ScoredCandidate) {
	if s.links == nil {
		return
	}
	for i := range candidates {
		link, err := s.links.DownloadURL(ctx, candidates[i].ResumeURL)
		if err != nil {
			s.logger.Warn("could not build download link",
				zap.String("candidate_id", candidates[i].ID), zap.Error(err))
			continue
		}
		candidates[i].DownloadURL = link
	}
}
