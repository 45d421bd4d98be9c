// Package analytics summarises the candidate pool for the dashboard.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/filtering"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// DefaultTopSkills is the number of skills reported when no limit is given.
const DefaultTopSkills = 10

// ComputePoolStats derives dashboard statistics from a candidate pool.
// Average experience is rounded to one decimal; skills are counted once per
// candidate, case-insensitively.
func ComputePoolStats(candidates []types.CandidateRecord, totalJobDescriptions, topN int) types.PoolStats {
	stats := types.PoolStats{
		TotalCandidates:      len(candidates),
		TotalJobDescriptions: totalJobDescriptions,
		TopSkills:            []types.SkillCount{},
	}
	if len(candidates) == 0 {
		return stats
	}

	var totalYears float64
	counts := make(map[string]int)
	for _, c := range candidates {
		totalYears += c.TotalYearsExperience.Float()
		for skill := range skills.NewSet(c.Skills) {
			counts[skill]++
		}
	}

	stats.AverageExperience = math.Round(totalYears/float64(len(candidates))*10) / 10
	stats.UniqueSkills = len(counts)
	stats.TopSkills = topSkills(counts, topN)
	return stats
}

func topSkills(counts map[string]int, n int) []types.SkillCount {
	if n <= 0 {
		n = DefaultTopSkills
	}

	ranked := make([]types.SkillCount, 0, len(counts))
	for skill, count := range counts {
		ranked = append(ranked, types.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Skill < ranked[j].Skill
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Source is the read access analytics needs.
type Source interface {
	ListCandidates(ctx context.Context, q filtering.StoreQuery) ([]types.CandidateRecord, error)
	CountJobDescriptions(ctx context.Context) (int, error)
}

// Service computes pool statistics from a Source.
type Service struct {
	source Source
	logger *zap.Logger
}

// NewService creates an analytics Service.
func NewService(source Source, log *zap.Logger) *Service {
	return &Service{source: source, logger: logger.OrNop(log)}
}

// Dashboard fetches the whole pool and the job description count concurrently
// and summarises them.
func (s *Service) Dashboard(ctx context.Context, topN int) (*types.PoolStats, error) {
	var (
		candidates []types.CandidateRecord
		jobCount   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.source.ListCandidates(gctx, filtering.StoreQuery{})
		if err != nil {
			return fmt.Errorf("failed to fetch candidates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobCount, err = s.source.CountJobDescriptions(gctx)
		if err != nil {
			return fmt.Errorf("failed to count job descriptions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := ComputePoolStats(candidates, jobCount, topN)
	s.logger.Debug("computed pool stats",
		zap.Int("candidates", stats.TotalCandidates),
		zap.Int("job_descriptions", stats.TotalJobDescriptions))
	return &stats, nil
}
