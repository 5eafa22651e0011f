package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/morph/internal/model"
)

func TestSubstitute(t *testing.T) {
	substitution := m.Substitution{
		"a":    m.Bind(num("1")),
		"b":    m.Bind(name("x")),
		"args": m.BindAll([]m.Term{num("1"), num("2")}),
	}

	negate, err := m.NewDerived(func(terms []m.Term) (m.Term, error) {
		return lit("Negate", terms[0]), nil
	}, "a")
	require.NoError(t, err)

	tests := []struct {
		name     string
		template m.Term
		want     string
	}{
		{"literal is copied", num("7"), "Number(7)"},
		{"variable", lit("Greater", variable("a"), variable("b")), "Greater(Number(1), Name(x))"},
		{"repeated variable", lit("Add", variable("b"), variable("b")), "Add(Name(x), Name(x))"},
		{"greedy splice", lit("Arguments", variable("args", m.Greedy())), "Arguments(Number(1), Number(2))"},
		{"greedy splice among siblings", lit("Arguments", num("0"), variable("args", m.Greedy()), num("3")), "Arguments(Number(0), Number(1), Number(2), Number(3))"},
		{"term set", m.NewTermSet(lit("Less", variable("a"), variable("b")), lit("Greater", variable("a"), variable("b"))), "either(Less(Number(1), Name(x)), Greater(Number(1), Name(x)))"},
		{"derived", lit("ExprStmt", negate), "ExprStmt(Negate(Number(1)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.template, substitution)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSubstitute_Errors(t *testing.T) {
	substitution := m.Substitution{
		"args": m.BindAll([]m.Term{num("1"), num("2")}),
	}

	missing, err := m.NewDerived(nil, "missing")
	require.NoError(t, err)

	tests := []struct {
		name     string
		template m.Term
	}{
		{"unbound variable", lit("Add", variable("a"), num("1"))},
		{"unbound derived base", missing},
		{"sequence at the root", variable("args")},
		{"sequence in a term set", m.NewTermSet(variable("args"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Substitute(tt.template, substitution)
			require.ErrorIs(t, err, m.ErrSubstitution)
		})
	}
}

func TestSubstitute_UnboundNameIsReported(t *testing.T) {
	_, err := Substitute(variable("left"), m.Substitution{})

	var substErr *m.SubstitutionError
	require.ErrorAs(t, err, &substErr)
	assert.Equal(t, "left", substErr.Name)
}
