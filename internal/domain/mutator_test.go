package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/morph/internal/adapter"
	m "gooze.dev/pkg/morph/internal/model"
)

func newScriptMutator(t *testing.T, pattern string, replacements ...string) *Mutator {
	t.Helper()

	ctx := context.Background()
	driver := adapter.NewScriptDriver()
	builder := NewBuilder(adapter.NewScriptDriver())

	p, err := builder.BuildPattern(ctx, pattern)
	require.NoError(t, err)

	r, err := builder.Build(ctx, replacements...)
	require.NoError(t, err)

	rule, err := NewRule(p, r)
	require.NoError(t, err)

	return NewMutator(rule, driver, adapter.NewLocalSourceFSAdapter())
}

func TestMutator_Mutants(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A <= B")

	mutants, err := mutator.Mutants(context.Background(), []byte("if(4 < 5) 4; else 5;"))
	require.NoError(t, err)
	require.Len(t, mutants, 1)

	assert.Equal(t, "if(4 <= 5) 4; else 5;", mutants[0].Code)
	assert.Equal(t, m.Site{
		Position: m.Span{Start: 3, End: 8},
		Original: "4 < 5",
		Mutated:  "4 <= 5",
	}, mutants[0].Site)
}

func TestMutator_Mutate(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B", "A == B", "A != B")

	var sites []m.Site

	mutants, err := mutator.Mutate(context.Background(), []byte("if(foo < bar) 4; else 5;"), func(site m.Site) {
		sites = append(sites, site)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"if(foo > bar) 4; else 5;",
		"if(foo == bar) 4; else 5;",
		"if(foo != bar) 4; else 5;",
	}, mutants)

	require.Len(t, sites, 3)
	for _, site := range sites {
		assert.Equal(t, "foo < bar", site.Original)
	}

	assert.Equal(t, "foo != bar", sites[2].Mutated)
}

func TestMutator_MutantsAreIndependent(t *testing.T) {
	mutator := newScriptMutator(t, "A + B", "A - B")

	mutants, err := mutator.Mutate(context.Background(), []byte("var x = 1 + 2;\nvar y = 3 + 4;"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"var x = 1 - 2;\nvar y = 3 + 4;",
		"var x = 1 + 2;\nvar y = 3 - 4;",
	}, mutants)
}

func TestMutator_NoMatch(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B")
	called := false

	mutants, err := mutator.Mutate(context.Background(), []byte("foo == bar;"), func(m.Site) { called = true })
	require.NoError(t, err)

	assert.Empty(t, mutants)
	assert.False(t, called)
}

func TestMutator_ParseError(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B")

	_, err := mutator.Mutate(context.Background(), []byte("if(foo < ) 4;"))
	require.ErrorIs(t, err, m.ErrParse)
}

func TestMutator_MutateFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.js")
	second := filepath.Join(dir, "second.js")

	require.NoError(t, os.WriteFile(first, []byte("var a = b < c;"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("var a = 1;"), 0o600))

	mutator := newScriptMutator(t, "A < B", "A > B", "A >= B")

	observed := map[m.Path]int{}

	results, err := mutator.MutateFiles(context.Background(), []m.Path{m.Path(first), m.Path(second)}, func(path m.Path, mutants []string, sites []m.Site) {
		assert.Len(t, sites, len(mutants))
		observed[path] = len(mutants)
	})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{m.Path(first), m.Path(second)}, results.Keys())

	value, ok := results.Get(m.Path(first))
	require.True(t, ok)
	assert.Equal(t, []string{"var a = b > c;", "var a = b >= c;"}, value)

	value, ok = results.Get(m.Path(second))
	require.True(t, ok)
	assert.Empty(t, value)

	assert.Equal(t, map[m.Path]int{m.Path(first): 2, m.Path(second): 0}, observed)
}

func TestMutator_MutateFileMissing(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B")

	_, err := mutator.MutateFile(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing.js")))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMutator_EmptyCollectionsSurvive(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B", "A == B", "A != B")

	src := "var a = 1 < 2;\nvar b = [];\nvar c = {};\nif(x < y) {\n  f();\n}"

	mutants, err := mutator.Mutate(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, mutants, 6)

	assert.Equal(t, "var a = 1 > 2;\nvar b = [];\nvar c = {};\nif(x < y) {\n  f();\n}", mutants[0])

	for _, mutant := range mutants {
		assert.Contains(t, mutant, "var b = [];")
		assert.Contains(t, mutant, "var c = {};")
	}
}

func TestMutatedSource_KeepsCommentsAndEmptyArrays(t *testing.T) {
	mutator := newScriptMutator(t, "A < B", "A > B")
	content := []byte("// keep\nvar a = 1 < 2;\nvar b = [];\n")

	mutants, err := mutator.Mutants(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, mutants, 1)

	got := mutatedSource(context.Background(), adapter.NewScriptDriver(), content, mutants[0])
	assert.Equal(t, "// keep\nvar a = 1 > 2;\nvar b = [];\n", string(got))
}
