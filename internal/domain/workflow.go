package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/morph/internal/adapter"
	"gooze.dev/pkg/morph/internal/controller"
	"gooze.dev/pkg/morph/internal/domain/mutagens"
	m "gooze.dev/pkg/morph/internal/model"
	pkg "gooze.dev/pkg/morph/pkg"
)

// EstimateArgs selects the sources and operators of a run.
type EstimateArgs struct {
	Paths     []m.Path
	Exclude   []string
	Operators []string
}

// MutateArgs contains the arguments for printing mutants without testing them.
type MutateArgs struct {
	EstimateArgs
}

// TestArgs contains the arguments for running mutation tests.
type TestArgs struct {
	EstimateArgs
	Reports         m.Path
	Threads         int
	ShardIndex      int
	TotalShardCount int
	MutationTimeout time.Duration
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs contains the arguments for merging sharded reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow defines the mutation testing commands.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	Test(ctx context.Context, args TestArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	Orchestrator
	Mutagen
	newDriver adapter.DriverFactory
	spillDir  string
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithSpillDir places the temporary report spill files in dir.
func WithSpillDir(dir string) WorkflowOption {
	return func(w *workflow) {
		w.spillDir = dir
	}
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
	mutagen Mutagen,
	newDriver adapter.DriverFactory,
	options ...WorkflowOption,
) Workflow {
	w := &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Orchestrator:    orchestrator,
		Mutagen:         mutagen,
		newDriver:       newDriver,
		spillDir:        pkg.DefaultSpillDir,
	}

	for _, option := range options {
		option(w)
	}

	return w
}

// Estimate lists the number of mutations per source file.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	mutations, err := w.collectMutations(ctx, args)
	if err != nil {
		slog.Error("Failed to generate mutations", "error", err)
		_ = w.DisplayEstimation(ctx, nil, err)

		return fmt.Errorf("generate mutations: %w", err)
	}

	if err := w.DisplayEstimation(ctx, mutations, nil); err != nil {
		slog.Error("Failed to display estimation", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) collectMutations(ctx context.Context, args EstimateArgs) ([]m.Mutation, error) {
	sources, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	operators, err := mutagens.Resolve(args.Operators...)
	if err != nil {
		return nil, err
	}

	mutations := make([]m.Mutation, 0)

	for _, source := range sources {
		generated, err := w.GenerateMutations(ctx, source, operators...)
		if err != nil {
			return nil, err
		}

		mutations = append(mutations, generated...)
	}

	return mutations, nil
}

// Mutate prints every mutant of every source for each selected operator.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	sources, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	operators, err := mutagens.Resolve(args.Operators...)
	if err != nil {
		return err
	}

	paths := make([]m.Path, 0, len(sources))
	for _, source := range sources {
		paths = append(paths, source.Origin.FullPath)
	}

	builder := NewBuilder(w.newDriver())
	driver := w.newDriver()

	for _, op := range operators {
		rule, err := CompileOperator(ctx, builder, op)
		if err != nil {
			return err
		}

		_, err = NewMutator(rule, driver, w.SourceFSAdapter).MutateFiles(ctx, paths, func(path m.Path, mutants []string, sites []m.Site) {
			slog.Debug("Mutated file", "operator", op.Name, "path", path, "mutants", len(mutants))
			w.DisplayMutants(ctx, op.Name, path, zipMutants(mutants, sites))
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func zipMutants(codes []string, sites []m.Site) []m.Mutant {
	mutants := make([]m.Mutant, 0, len(codes))
	for i := range min(len(codes), len(sites)) {
		mutants = append(mutants, m.Mutant{Code: codes[i], Site: sites[i]})
	}

	return mutants
}

// Test generates the mutations of this shard, tests them in parallel and
// saves the reports.
func (w *workflow) Test(ctx context.Context, args TestArgs) error {
	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	threads := max(1, args.Threads)
	totalShards := max(1, args.TotalShardCount)

	operators, err := mutagens.Resolve(args.Operators...)
	if err != nil {
		return err
	}

	sources, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	mutations, err := w.shardedMutations(ctx, sources, operators, threads, args.ShardIndex, totalShards)
	if err != nil {
		return fmt.Errorf("generate mutations: %w", err)
	}

	w.DisplayConcurrencyInfo(ctx, threads, args.ShardIndex, totalShards)
	w.DisplayUpcomingTestsInfo(ctx, len(mutations))

	reports, err := pkg.NewFileSpillIn[m.Report](w.spillDir)
	if err != nil {
		return fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := reports.Remove(); err != nil {
			slog.Warn("Failed to remove report spill", "path", reports.Path(), "error", err)
		}
	}()

	if err := w.testMutations(ctx, mutations, threads, args.MutationTimeout, reports); err != nil {
		return fmt.Errorf("run mutation tests: %w", err)
	}

	reportsDir := args.Reports
	if args.TotalShardCount > 1 {
		reportsDir = adapter.ShardDir(args.Reports, args.ShardIndex)
	}

	if err := w.SaveReports(ctx, reportsDir, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	score, err := mutationScoreFromReports(reports)
	if err != nil {
		return fmt.Errorf("score reports: %w", err)
	}

	w.DisplayMutationScore(ctx, score)

	return nil
}

func (w *workflow) shardedMutations(ctx context.Context, sources []m.Source, operators []mutagens.Operator, threads, shardIndex, totalShards int) ([]m.Mutation, error) {
	// Stops the feeder when the stream ends early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sourceCh := make(chan m.Source)

	go func() {
		defer close(sourceCh)

		for _, source := range sources {
			select {
			case <-ctx.Done():
				return
			case sourceCh <- source:
			}
		}
	}()

	mutationCh, errCh := w.StreamMutations(ctx, sourceCh, threads, operators...)

	// Round-robin over the deterministic generation order.
	index := 0
	mutations := make([]m.Mutation, 0)

	for mutation := range mutationCh {
		if index%totalShards == shardIndex {
			mutations = append(mutations, mutation)
		}

		index++
	}

	if err := <-errCh; err != nil {
		return nil, err
	}

	return mutations, nil
}

func (w *workflow) testMutations(ctx context.Context, mutations []m.Mutation, threads int, timeout time.Duration, reports pkg.FileSpill[m.Report]) error {
	workers := make(chan int, threads)
	for id := range threads {
		workers <- id
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, mutation := range mutations {
		group.Go(func() error {
			threadID := <-workers
			defer func() { workers <- threadID }()

			w.DisplayStartingTestInfo(groupCtx, mutation, threadID)

			report := w.testMutation(groupCtx, mutation, timeout)

			if err := reports.Append(report); err != nil {
				return fmt.Errorf("store report %s: %w", mutation.ID, err)
			}

			w.DisplayCompletedTestInfo(groupCtx, mutation, report)

			return nil
		})
	}

	return group.Wait()
}

func (w *workflow) testMutation(ctx context.Context, mutation m.Mutation, timeout time.Duration) m.Report {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report, err := w.TestMutation(ctx, mutation)
	if err != nil {
		slog.Error("Failed to test mutation", "mutation", mutation.ID, "error", err)

		report = reportFor(mutation, m.Error, "")
		report.Err = err.Error()
	}

	return report
}

// View displays saved reports and their mutation score.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if len(reports) == 0 {
		return errors.New("no reports found in " + string(args.Reports))
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.DisplayMutationScore(ctx, mutationScore(reports))
	w.Wait(ctx)

	return nil
}

// Merge combines shard reports into the reports directory.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	count, err := w.MergeReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("merge reports: %w", err)
	}

	slog.Info("Merged shard reports", "dir", args.Reports, "count", count)

	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	w.DisplayMutationScore(ctx, mutationScore(reports))

	return nil
}
