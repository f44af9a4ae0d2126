// Package scorer ranks the versions of a duplicated package and selects the one to consolidate on.
package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	stableBonus   = 1000
	yankPenalty   = 10000
	freshDays     = 14
	freshPenalty  = 5
	staleDays     = 365
	staleDivisor  = 30
	downloadBoost = 10
)

// Engine scores candidate versions using their semantic structure and registry metadata.
//
// Registry calls share one limit across every Score call on the same engine, so scoring
// many packages in parallel never has more than the configured number of calls in flight.
type Engine struct {
	gateway     ports.RegistryGateway
	timeout     time.Duration
	concurrency int
	sem         *semaphore.Weighted
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each registry call. A timed out call counts as unavailable metadata.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithConcurrency limits the number of registry calls in flight across the engine.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithClock overrides the time source used for age calculations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithGateway replaces the registry gateway.
func WithGateway(g ports.RegistryGateway) Option {
	return func(e *Engine) {
		if g != nil {
			e.gateway = g
		}
	}
}

// New creates a new Engine backed by the given gateway.
func New(gateway ports.RegistryGateway, opts ...Option) *Engine {
	e := &Engine{
		gateway:     gateway,
		timeout:     domain.DefaultTimeout,
		concurrency: domain.DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(int64(e.concurrency))
	return e
}

// With returns a copy of the engine with the options applied.
// The copy keeps sharing the call limit of e unless the concurrency changes.
func (e *Engine) With(opts ...Option) *Engine {
	clone := *e
	for _, opt := range opts {
		opt(&clone)
	}
	if clone.concurrency != e.concurrency {
		clone.sem = semaphore.NewWeighted(int64(clone.concurrency))
	}
	return &clone
}

type candidate struct {
	raw     string
	version *semver.Version
	meta    *domain.VersionMetadata
}

// SelectBest returns the top ranked version, or false when no candidate is a valid semantic version.
func (e *Engine) SelectBest(ctx context.Context, name string, versions []string) (string, bool) {
	ranked := e.Score(ctx, name, versions)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Version, true
}

// Score returns every parsable candidate ranked from best to worst.
//
// Ties on total score go to the higher semantic version, then to the candidate seen first.
// Registry errors are absorbed and only remove the metadata contribution of that candidate.
func (e *Engine) Score(ctx context.Context, name string, versions []string) []domain.Candidate {
	candidates := parseCandidates(versions)
	if len(candidates) == 0 {
		return nil
	}

	e.fetchAll(ctx, name, candidates)

	now := e.now()
	scored := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		scored[i] = domain.Candidate{
			Version:   c.raw,
			Intrinsic: IntrinsicScore(c.version),
		}
		if c.meta != nil {
			scored[i].MetadataAvailable = true
			scored[i].Yanked = c.meta.IsYanked
			scored[i].MetadataScore = MetadataScore(c.version, *c.meta, now)
		}
		scored[i].Total = scored[i].Intrinsic + scored[i].MetadataScore
	}

	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if scored[a].Total != scored[b].Total {
			if scored[a].Total > scored[b].Total {
				return -1
			}
			return 1
		}
		return candidates[b].version.Compare(candidates[a].version)
	})

	ranked := make([]domain.Candidate, len(order))
	for i, idx := range order {
		ranked[i] = scored[idx]
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		for _, c := range ranked {
			v.Log(domain.LogLevelInfo, fmt.Sprintf("%s %s: %.2f", name, c.Version, c.Total))
		}
	}

	return ranked
}

func parseCandidates(versions []string) []candidate {
	seen := make(map[string]struct{}, len(versions))
	candidates := make([]candidate, 0, len(versions))
	for _, raw := range versions {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		v, err := domain.ParseVersion(raw)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{raw: raw, version: v})
	}
	return candidates
}

// fetchAll fills in metadata for each candidate. Every goroutine writes only its own slot.
func (e *Engine) fetchAll(ctx context.Context, name string, candidates []candidate) {
	vertex, hasVertex := ports.VertexFromContext(ctx)

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i := range candidates {
		g.Go(func() error {
			meta, err := e.fetch(ctx, name, candidates[i].raw)
			if err != nil || meta == nil {
				if hasVertex && err != nil {
					level := domain.LogLevelWarn
					if errors.Is(err, domain.ErrOffline) {
						level = domain.LogLevelInfo
					}
					vertex.Log(level, fmt.Sprintf("metadata unavailable for %s %s: %v", name, candidates[i].raw, err))
				}
				return nil
			}
			candidates[i].meta = meta
			return nil
		})
	}

	_ = g.Wait()
}

// fetch waits for a free call slot, then asks the gateway with the per-call timeout.
func (e *Engine) fetch(ctx context.Context, name, version string) (*domain.VersionMetadata, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.gateway.Fetch(callCtx, name, version)
}

// IntrinsicScore scores a version by its structure alone.
// Stable releases get a fixed bonus over pre-releases.
func IntrinsicScore(v *semver.Version) float64 {
	score := float64(v.Major())*10000 + float64(v.Minor())*100 + float64(v.Patch())
	if v.Prerelease() == "" {
		score += stableBonus
	}
	return score
}

// MetadataScore scores a version from its registry metadata.
//
// Releases younger than two weeks are penalized by five points per missing day and
// releases older than a year lose one point per thirty days. Downloads add a
// logarithmic boost; zero downloads add nothing. A yanked release loses 10000 points.
func MetadataScore(v *semver.Version, meta domain.VersionMetadata, now time.Time) float64 {
	score := float64(v.Major())*1000 + float64(v.Minor())*10 + float64(v.Patch())

	age := float64(meta.AgeInDays(now))
	if age < freshDays {
		score -= (freshDays - age) * freshPenalty
	}
	if age > staleDays {
		score -= (age - staleDays) / staleDivisor
	}

	if meta.DownloadCount > 0 {
		score += math.Log10(float64(meta.DownloadCount)) * downloadBoost
	}

	if meta.IsYanked {
		score -= yankPenalty
	}
	return score
}
