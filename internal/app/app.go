// Package app implements the application layer for depclean.
package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
	"go.trai.ch/depclean/internal/engine/scorer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// FixNotice is logged when --fix is requested.
const FixNotice = "--fix is not supported: depclean is read-only and never modifies the lockfile"

// UseConfigured marks an integer option that falls back to the configured setting.
const UseConfigured = -1

// AnalyzeOptions configures a single analysis run.
type AnalyzeOptions struct {
	// Lockfile is the path to Cargo.lock. Empty means domain.DefaultLockfilePath.
	Lockfile string
	Format   domain.ReportFormat
	// Offline disables registry lookups; candidates are ranked on their intrinsic score.
	Offline bool
	// Concurrency limits how many duplicate sets are scored at once and how many registry
	// calls are in flight in total. UseConfigured or 0 reads settings.
	Concurrency int
	// UnitCost is the estimated size in KB of one redundant version. UseConfigured reads settings.
	UnitCost int
	Fix      bool
}

// App represents the main application logic.
type App struct {
	lockfiles ports.LockfileLoader
	scorer    *scorer.Engine
	offline   ports.RegistryGateway
	renderer  ports.ReportRenderer
	telemetry ports.Telemetry
	logger    ports.Logger
	settings  domain.Settings
}

// New creates a new App instance.
func New(
	lockfiles ports.LockfileLoader,
	engine *scorer.Engine,
	offline ports.RegistryGateway,
	renderer ports.ReportRenderer,
	telemetry ports.Telemetry,
	logger ports.Logger,
	settings domain.Settings,
) *App {
	return &App{
		lockfiles: lockfiles,
		scorer:    engine,
		offline:   offline,
		renderer:  renderer,
		telemetry: telemetry,
		logger:    logger,
		settings:  settings,
	}
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// SetLogLevel changes the minimum level of log lines when the logger supports it.
func (a *App) SetLogLevel(level domain.LogLevel) {
	if l, ok := a.logger.(interface{ SetLevel(domain.LogLevel) }); ok {
		l.SetLevel(level)
	}
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Analyze loads the lockfile, finds duplicated packages, recommends a version for each
// and writes the report to w.
func (a *App) Analyze(ctx context.Context, w io.Writer, opts AnalyzeOptions) (*domain.Report, error) {
	if opts.Fix {
		a.logger.Warn(FixNotice)
	}

	format, err := domain.ParseReportFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	path := opts.Lockfile
	if path == "" {
		path = domain.DefaultLockfilePath
	}

	unitCost := a.settings.UnitCost
	if opts.UnitCost != UseConfigured {
		unitCost = opts.UnitCost
	}
	if unitCost < 0 {
		return nil, zerr.With(domain.ErrInvalidSetting, "unit_cost", unitCost)
	}

	limit := a.settings.Concurrency
	if opts.Concurrency > 0 {
		limit = opts.Concurrency
	}
	if limit < 1 {
		limit = domain.DefaultConcurrency
	}

	a.logger.Debug(fmt.Sprintf("analyzing %s (format=%s offline=%t concurrency=%d unit_cost=%d)",
		path, format, opts.Offline, limit, unitCost))

	// 1. Load and build the graph
	lf, err := a.lockfiles.Load(path)
	if err != nil {
		return nil, err
	}

	graph := domain.BuildGraph(lf.Packages)
	for _, key := range graph.ShadowedKeys() {
		a.logger.Warn(fmt.Sprintf("package %q is listed more than once in %s; the last entry wins", key, path))
	}

	// 2. Detect duplicates
	sets := domain.DetectDuplicates(graph)
	a.logger.Info(fmt.Sprintf("found %d duplicated packages among %d packages in %s",
		len(sets), graph.NodeCount(), path))

	// 3. Score every set
	engine := a.scorer
	if opts.Offline {
		engine = engine.With(scorer.WithGateway(a.offline))
	}
	// The engine limit bounds registry calls across all sets; the set limit only bounds open vertices.
	engine = engine.With(scorer.WithConcurrency(limit))

	rows := a.scoreSets(ctx, engine, sets, limit)
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "analysis interrupted")
	}

	// 4. Estimate impact
	estimates := domain.EstimateImpact(sets, unitCost)
	for i := range rows {
		rows[i].Savings = estimates[i].PotentialSavings
	}

	report := &domain.Report{
		Lockfile:        path,
		Checksum:        fmt.Sprintf("%016x", graph.Checksum()),
		PackageCount:    graph.NodeCount(),
		DependencyEdges: graph.EdgeCount(),
		Rows:            rows,
		TotalSavings:    domain.TotalSavings(estimates),
	}

	// 5. Render
	if err := a.renderer.Render(w, report, format); err != nil {
		return nil, err
	}
	return report, nil
}

// scoreSets ranks the candidates of every set. Rows keep the order of sets.
func (a *App) scoreSets(ctx context.Context, engine *scorer.Engine, sets []domain.DuplicateSet, limit int) []domain.ReportRow {
	rows := make([]domain.ReportRow, len(sets))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, set := range sets {
		g.Go(func() error {
			vctx, vertex := a.telemetry.Record(ctx, "score "+set.Name)

			ranked := engine.Score(vctx, set.Name, set.Versions)
			row := domain.ReportRow{
				Name:       set.Name,
				Versions:   set.Versions,
				Candidates: ranked,
				PURL:       domain.CargoPURL(set.Name, ""),
			}
			if len(ranked) > 0 {
				row.Recommended = ranked[0].Version
				row.PURL = domain.CargoPURL(set.Name, row.Recommended)
			}
			rows[i] = row

			vertex.Complete(ctx.Err())
			return nil
		})
	}

	_ = g.Wait()
	return rows
}
