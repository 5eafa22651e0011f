package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/morph/internal/adapter"
	m "gooze.dev/pkg/morph/internal/model"
)

func newScriptBuilder() *Builder {
	return NewBuilder(adapter.NewScriptDriver())
}

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name     string
		snippets []string
		want     string
	}{
		{"binary placeholders", []string{"A + B"}, "Add(Name(A), Name(B))"},
		{"concrete code", []string{"x < 4"}, "Less(Name(x), Number(4))"},
		{"greedy arguments", []string{"foo(ARGS_)"}, "Call(Name(foo), Arguments(ARGS_))"},
		{"several snippets", []string{"A - B", "A * B"}, "either(Subtract(Name(A), Name(B)), Multiply(Name(A), Name(B)))"},
		{"keyword literal", []string{"true"}, "True(true)"},
		{"assignment target", []string{"A += B"}, "OpPlusEqual(Target(A), Name(B))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newScriptBuilder().Build(context.Background(), tt.snippets...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuilder_BuildVariables(t *testing.T) {
	got, err := newScriptBuilder().Build(context.Background(), "LEFT + ARGS_")
	require.NoError(t, err)

	add, ok := got.(*m.Literal)
	require.True(t, ok)

	left, ok := add.Child(0).(*m.Literal).Child(0).(*m.Variable)
	require.True(t, ok)
	assert.Equal(t, "left", left.Name())
	assert.False(t, left.IsGreedy())

	args, ok := add.Child(1).(*m.Variable)
	require.True(t, ok, "a greedy placeholder replaces its identifier node")
	assert.Equal(t, "args", args.Name())
	assert.True(t, args.IsGreedy())
}

func TestBuilder_BuildErrors(t *testing.T) {
	_, err := newScriptBuilder().Build(context.Background())
	require.Error(t, err)

	_, err = newScriptBuilder().Build(context.Background(), "A +")
	require.ErrorIs(t, err, m.ErrParse)

	var parseErr *m.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestBuilder_BuildPattern(t *testing.T) {
	got, err := newScriptBuilder().BuildPattern(context.Background(), "-A")
	require.NoError(t, err)

	assert.Equal(t,
		"Negate(either(Number(A), String(A), Name(A), True(A), False(A), Null(A), This(A)))",
		got.String(),
	)

	plain, err := newScriptBuilder().BuildPattern(context.Background(), "foo(ARGS_)")
	require.NoError(t, err)
	assert.Equal(t, "Call(Name(foo), Arguments(ARGS_))", plain.String(), "only variable leaves are expanded")
}

func TestBuilder_PatternMatchesParsedCode(t *testing.T) {
	ctx := context.Background()
	driver := adapter.NewScriptDriver()

	pattern, err := NewBuilder(driver).BuildPattern(ctx, "A + B")
	require.NoError(t, err)

	tree, err := driver.Parse(ctx, []byte(`var total = price + "eur";`))
	require.NoError(t, err)

	rule, err := NewRule(pattern, pattern)
	require.NoError(t, err)

	var matches []m.Match
	for match := range rule.Matches(tree) {
		matches = append(matches, match)
	}

	require.Len(t, matches, 1)
	assert.Equal(t, "price", matches[0].Substitution["a"].Term().String())
	assert.Equal(t, `"eur"`, matches[0].Substitution["b"].Term().String())
}

func TestVariableName(t *testing.T) {
	assert.Equal(t, "left", VariableName("LEFT"))
	assert.Equal(t, "args", VariableName("ARGS_"))
	assert.Equal(t, "x1", VariableName("X1"))
}

func TestEnsuring(t *testing.T) {
	ctx := context.Background()
	driver := adapter.NewScriptDriver()

	pattern, err := NewBuilder(driver).BuildPattern(ctx, "A + B")
	require.NoError(t, err)

	pattern = Ensuring(pattern, "A", isLeaf("1"))

	for _, tt := range []struct {
		code string
		want bool
	}{
		{"1 + 2;", true},
		{"3 + 2;", false},
	} {
		tree, err := driver.Parse(ctx, []byte(tt.code))
		require.NoError(t, err)

		_, ok := Match(pattern, driver.Simplify(tree))
		assert.Equal(t, tt.want, ok, tt.code)
	}
}

func TestDeriving(t *testing.T) {
	ctx := context.Background()
	driver := adapter.NewScriptDriver()
	builder := NewBuilder(driver)

	pattern, err := builder.BuildPattern(ctx, "f(A)")
	require.NoError(t, err)

	replacement, err := builder.Build(ctx, "f(B)")
	require.NoError(t, err)

	replacement, err = Deriving(replacement, "B", func(terms []m.Term) (m.Term, error) {
		return m.NewLiteral(adapter.KindNegate, m.NewLiteral(adapter.KindNumber, terms[0])), nil
	}, "A")
	require.NoError(t, err)

	rule, err := NewRule(pattern, replacement)
	require.NoError(t, err)

	mutants, err := NewMutator(rule, driver, nil).Mutate(ctx, []byte("f(3);"))
	require.NoError(t, err)
	assert.Equal(t, []string{"f(-3);"}, mutants)

	_, err = Deriving(replacement, "B", nil, "A", "C")
	require.Error(t, err)
}

func TestBuilder_NegationRule(t *testing.T) {
	ctx := context.Background()
	driver := adapter.NewScriptDriver()
	builder := NewBuilder(driver)

	pattern, err := builder.BuildPattern(ctx, "A")
	require.NoError(t, err)

	replacement, err := builder.Build(ctx, "-A")
	require.NoError(t, err)

	rule, err := NewRule(pattern, replacement)
	require.NoError(t, err)

	mutants, err := NewMutator(rule, driver, nil).Mutate(ctx, []byte("x = 1;"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x = -1;"}, mutants)
}
