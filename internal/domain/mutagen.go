// Package domain contains the rewriting engine and the mutation testing workflow built on it.
package domain

import (
	"context"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/morph/internal/adapter"
	"gooze.dev/pkg/morph/internal/domain/mutagens"
	m "gooze.dev/pkg/morph/internal/model"
)

// Mutagen defines the interface for mutation generation.
type Mutagen interface {
	GenerateMutations(ctx context.Context, source m.Source, operators ...mutagens.Operator) ([]m.Mutation, error)
	StreamMutations(ctx context.Context, sources <-chan m.Source, threads int, operators ...mutagens.Operator) (<-chan m.Mutation, <-chan error)
}

// mutagen handles pure mutation generation logic.
type mutagen struct {
	newDriver adapter.DriverFactory
	adapter.SourceFSAdapter
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(newDriver adapter.DriverFactory, sourceFSAdapter adapter.SourceFSAdapter) Mutagen {
	return &mutagen{
		newDriver:       newDriver,
		SourceFSAdapter: sourceFSAdapter,
	}
}

// CompileOperator builds the rewrite rule of a catalogue operator.
func CompileOperator(ctx context.Context, builder *Builder, op mutagens.Operator) (*Rule, error) {
	pattern, err := builder.BuildPattern(ctx, op.Pattern)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", op.Name, err)
	}

	replacement, err := builder.Build(ctx, op.Replacements...)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", op.Name, err)
	}

	rule, err := NewRule(pattern, replacement)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", op.Name, err)
	}

	return rule, nil
}

func (mg *mutagen) GenerateMutations(ctx context.Context, source m.Source, operators ...mutagens.Operator) ([]m.Mutation, error) {
	if err := validateSource(source); err != nil {
		return nil, err
	}

	if err := validateAdapters(mg); err != nil {
		return nil, err
	}

	if len(operators) == 0 {
		operators = mutagens.All()
	}

	content, err := mg.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source.Origin.FullPath, err)
	}

	builder := NewBuilder(mg.newDriver())
	driver := mg.newDriver()
	checker := mg.newDriver()
	mutations := make([]m.Mutation, 0)

	for _, op := range operators {
		rule, err := CompileOperator(ctx, builder, op)
		if err != nil {
			return nil, err
		}

		mutants, err := NewMutator(rule, driver, mg.SourceFSAdapter).Mutants(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", source.Origin.FullPath, err)
		}

		for index, mutant := range mutants {
			mutation, err := newMutation(ctx, checker, source, op.Name, index, content, mutant)
			if err != nil {
				return nil, err
			}

			mutations = append(mutations, mutation)
		}
	}

	return mutations, nil
}

func validateSource(source m.Source) error {
	if source.Origin == nil || source.Origin.FullPath == "" {
		return fmt.Errorf("missing source origin")
	}

	return nil
}

func validateAdapters(mg *mutagen) error {
	if mg.SourceFSAdapter == nil || mg.newDriver == nil {
		return fmt.Errorf("missing adapters")
	}

	return nil
}

type mutationKey struct {
	Path     string
	Hash     string
	Operator string
	Index    int
	Start    int
	End      int
	Mutated  string
}

func newMutation(ctx context.Context, checker adapter.SnippetDriver, source m.Source, operator string, index int, content []byte, mutant m.Mutant) (m.Mutation, error) {
	id, err := structhash.Hash(mutationKey{
		Path:     string(source.Origin.ShortPath),
		Hash:     source.Origin.Hash,
		Operator: operator,
		Index:    index,
		Start:    mutant.Site.Position.Start,
		End:      mutant.Site.Position.End,
		Mutated:  mutant.Site.Mutated,
	}, 1)
	if err != nil {
		return m.Mutation{}, fmt.Errorf("hash mutation: %w", err)
	}

	mutated := mutatedSource(ctx, checker, content, mutant)

	diff, err := unifiedDiff(source.Origin.ShortPath, content, mutated)
	if err != nil {
		return m.Mutation{}, err
	}

	return m.Mutation{
		ID:          operator + "_" + id,
		Source:      source,
		Operator:    operator,
		Site:        mutant.Site,
		MutatedCode: mutated,
		DiffCode:    diff,
	}, nil
}

// mutatedSource splices the mutated site into the original text, keeping the
// formatting of the rest of the file. When the splice would parse differently
// from the mutant, the canonical mutant text is used instead.
func mutatedSource(ctx context.Context, checker adapter.SnippetDriver, content []byte, mutant m.Mutant) []byte {
	position := mutant.Site.Position

	spliced := make([]byte, 0, len(content)-position.Len()+len(mutant.Site.Mutated))
	spliced = append(spliced, content[:position.Start]...)
	spliced = append(spliced, mutant.Site.Mutated...)
	spliced = append(spliced, content[position.End:]...)

	splicedTree, err := checker.Parse(ctx, spliced)
	if err != nil {
		return []byte(mutant.Code)
	}

	canonicalTree, err := checker.Parse(ctx, []byte(mutant.Code))
	if err != nil {
		return []byte(mutant.Code)
	}

	if !m.Equal(checker.Simplify(splicedTree), checker.Simplify(canonicalTree)) {
		return []byte(mutant.Code)
	}

	return spliced
}

func unifiedDiff(path m.Path, original, mutated []byte) ([]byte, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  3,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	return []byte(diff), nil
}

// StreamMutations generates the mutations of sources received from a channel
// on up to threads workers. Mutations are emitted in source order, so the
// stream is the same for any number of workers. The error channel receives at
// most one error and is closed with the mutation channel.
func (mg *mutagen) StreamMutations(ctx context.Context, sources <-chan m.Source, threads int, operators ...mutagens.Operator) (<-chan m.Mutation, <-chan error) {
	workers := max(1, threads)

	mutationCh := make(chan m.Mutation, workers)
	errCh := make(chan error, 1)

	go func() {
		defer close(mutationCh)
		defer close(errCh)

		if err := validateAdapters(mg); err != nil {
			errCh <- err
			return
		}

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(workers)

		results := make(chan chan []m.Mutation, workers)

		go func() {
			defer close(results)

			for {
				var source m.Source

				select {
				case <-groupCtx.Done():
					return
				case next, ok := <-sources:
					if !ok {
						return
					}

					source = next
				}

				result := make(chan []m.Mutation, 1)

				select {
				case <-groupCtx.Done():
					return
				case results <- result:
				}

				group.Go(func() error {
					mutations, err := mg.GenerateMutations(groupCtx, source, operators...)
					if err != nil {
						return err
					}

					result <- mutations

					return nil
				})
			}
		}()

		emitErr := emitInOrder(groupCtx, results, mutationCh)

		// The feeder stops once groupCtx is done; wait for it before Wait.
		for range results {
		}

		if err := group.Wait(); err != nil {
			errCh <- err
			return
		}

		if emitErr == nil {
			emitErr = ctx.Err()
		}

		if emitErr != nil {
			errCh <- emitErr
		}
	}()

	return mutationCh, errCh
}

// emitInOrder forwards each result, in the order the results were queued.
func emitInOrder(ctx context.Context, results <-chan chan []m.Mutation, mutationCh chan<- m.Mutation) error {
	for result := range results {
		var mutations []m.Mutation

		select {
		case <-ctx.Done():
			return ctx.Err()
		case mutations = <-result:
		}

		for _, mutation := range mutations {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case mutationCh <- mutation:
			}
		}
	}

	return nil
}
