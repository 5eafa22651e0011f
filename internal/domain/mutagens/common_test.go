package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	operators := All()
	require.Len(t, operators, 12)

	assert.Equal(t, "AOR", operators[0].Name)
	assert.Equal(t, "UAOI", operators[len(operators)-1].Name)

	for _, op := range operators {
		assert.NotEmpty(t, op.Pattern, op.Name)
		assert.NotEmpty(t, op.Replacements, op.Name)
		assert.NotEmpty(t, op.Description, op.Name)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"AOR", "COD", "COI", "COR", "LOD", "LOI", "LOR", "RER", "ROR", "SAOR", "UAOD", "UAOI",
	}, Names())
}

func TestLookup(t *testing.T) {
	op, ok := Lookup("ror")
	require.True(t, ok)
	assert.Equal(t, RelationalOperatorReplacement, op)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	all, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, All(), all)

	selected, err := Resolve("COR", "aor")
	require.NoError(t, err)
	assert.Equal(t, []Operator{ConditionalOperatorReplacement, ArithmeticOperatorReplacement}, selected)

	_, err = Resolve("AOR", "XYZ")
	require.EqualError(t, err, "unsupported mutation operator: XYZ")
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "LOR: A & B => A | B | A ^ B", LogicalOperatorReplacement.String())
}
