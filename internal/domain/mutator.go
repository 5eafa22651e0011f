package domain

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"gooze.dev/pkg/morph/internal/adapter"
	m "gooze.dev/pkg/morph/internal/model"
)

// SiteObserver receives the Site of every mutant, in emission order.
type SiteObserver func(site m.Site)

// FileObserver receives the mutants of one file and their Sites.
type FileObserver func(path m.Path, mutants []string, sites []m.Site)

// Mutator produces independent single-site mutants of source text with a Rule.
type Mutator struct {
	rule   *Rule
	driver adapter.Driver
	fs     adapter.SourceFSAdapter
}

// NewMutator creates a Mutator. The filesystem adapter is only needed by
// MutateFile and MutateFiles.
func NewMutator(rule *Rule, driver adapter.Driver, fs adapter.SourceFSAdapter) *Mutator {
	return &Mutator{rule: rule, driver: driver, fs: fs}
}

// Mutants parses src and returns one mutant per match and replacement
// alternative, ordered by match in traversal order and then by alternative.
// Every mutant is a single edit of the pristine tree.
func (mu *Mutator) Mutants(ctx context.Context, src []byte) ([]m.Mutant, error) {
	tree, err := mu.driver.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	mutants := make([]m.Mutant, 0)

	for match := range mu.rule.Matches(tree) {
		position, err := mu.driver.SourceLocation(match.Root)
		if err != nil {
			return nil, fmt.Errorf("locate %s: %w", match.Root, err)
		}

		if position.Start < 0 || position.End > len(src) || position.Start > position.End {
			return nil, fmt.Errorf("location %s of %s is outside the source", position, match.Root)
		}

		rewritten, err := Substitute(mu.rule.Replacement(), match.Substitution)
		if err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", match.Root, err)
		}

		alternatives := []m.Term{rewritten}
		if set, ok := rewritten.(*m.TermSet); ok {
			alternatives = set.Terms()
		}

		original := string(src[position.Start:position.End])

		for _, alternative := range alternatives {
			code, err := mu.driver.Unparse(ctx, Replace(tree, match.Path, alternative))
			if err != nil {
				return nil, fmt.Errorf("unparse mutant: %w", err)
			}

			mutated, err := mu.driver.Unparse(ctx, alternative)
			if err != nil {
				return nil, fmt.Errorf("unparse %s: %w", alternative, err)
			}

			mutants = append(mutants, m.Mutant{
				Code: code,
				Site: m.Site{Position: position, Original: original, Mutated: mutated},
			})
		}
	}

	return mutants, nil
}

// Mutate returns the mutant source strings of src. Observers are called once
// per Site in the same order.
func (mu *Mutator) Mutate(ctx context.Context, src []byte, observers ...SiteObserver) ([]string, error) {
	mutants, err := mu.Mutants(ctx, src)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(mutants))

	for _, mutant := range mutants {
		for _, observe := range observers {
			observe(mutant.Site)
		}

		codes = append(codes, mutant.Code)
	}

	return codes, nil
}

// MutateFile reads path and mutates its content.
func (mu *Mutator) MutateFile(ctx context.Context, path m.Path, observers ...SiteObserver) ([]string, error) {
	content, err := mu.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mutants, err := mu.Mutate(ctx, content, observers...)
	if err != nil {
		return nil, fmt.Errorf("mutate %s: %w", path, err)
	}

	return mutants, nil
}

// MutateFiles mutates every path independently. The result maps each path to
// its mutant strings in input order. Observers are called once per file.
func (mu *Mutator) MutateFiles(ctx context.Context, paths []m.Path, observers ...FileObserver) (*linkedhashmap.Map, error) {
	results := linkedhashmap.New()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var sites []m.Site

		mutants, err := mu.MutateFile(ctx, path, func(site m.Site) {
			sites = append(sites, site)
		})
		if err != nil {
			return nil, err
		}

		results.Put(path, mutants)

		for _, observe := range observers {
			observe(path, mutants, sites)
		}
	}

	return results, nil
}
