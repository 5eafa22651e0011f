package mutagens_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/morph/internal/adapter"
	"gooze.dev/pkg/morph/internal/domain"
	"gooze.dev/pkg/morph/internal/domain/mutagens"
)

func TestCatalogue(t *testing.T) {
	tests := []struct {
		operator mutagens.Operator
		code     string
		want     []string
	}{
		{mutagens.ArithmeticOperatorReplacement, "var x = 2 + 2;", []string{"var x = 2 - 2;", "var x = 2 * 2;", "var x = 2 / 2;"}},
		{mutagens.ConditionalOperatorDeletion, "var a = !b;", []string{"var a = b;"}},
		{mutagens.ConditionalOperatorInsertion, "var a = b;", []string{"var a = !b;"}},
		{mutagens.ConditionalOperatorReplacement, "if(x || y) 4; else 5;", []string{"if(x && y) 4; else 5;"}},
		{mutagens.LogicalOperatorDeletion, "var x = ~b;", []string{"var x = b;"}},
		{mutagens.LogicalOperatorInsertion, "var x = b;", []string{"var x = ~b;"}},
		{mutagens.LogicalOperatorReplacement, "var x = 5 & 1;", []string{"var x = 5 | 1;", "var x = 5 ^ 1;"}},
		{mutagens.RelationalExpressionReplacement, "if(4 < 5) 4; else 5;", []string{"if(true) 4; else 5;", "if(false) 4; else 5;"}},
		{mutagens.RelationalOperatorReplacement, "if(4 < 5) 4; else 5;", []string{
			"if(4 <= 5) 4; else 5;",
			"if(4 == 5) 4; else 5;",
			"if(4 != 5) 4; else 5;",
			"if(4 >= 5) 4; else 5;",
			"if(4 > 5) 4; else 5;",
		}},
		{mutagens.ShortcutAssignmentOperatorReplacement, "x += 1;", []string{
			"x -= 1;", "x *= 1;", "x /= 1;", "x %= 1;", "x &= 1;",
			"x |= 1;", "x ^= 1;", "x <<= 1;", "x >>= 1;",
		}},
		{mutagens.UnaryArithmeticOperatorDeletion, "x = -1;", []string{"x = 1;"}},
		{mutagens.UnaryArithmeticOperatorInsertion, "x = 1;", []string{"x = -1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.operator.Name, func(t *testing.T) {
			ctx := context.Background()
			driver := adapter.NewScriptDriver()

			rule, err := domain.CompileOperator(ctx, domain.NewBuilder(adapter.NewScriptDriver()), tt.operator)
			require.NoError(t, err)

			got, err := domain.NewMutator(rule, driver, nil).Mutate(ctx, []byte(tt.code))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogue_Compiles(t *testing.T) {
	builder := domain.NewBuilder(adapter.NewScriptDriver())

	for _, op := range mutagens.All() {
		_, err := domain.CompileOperator(context.Background(), builder, op)
		require.NoError(t, err, op.Name)
	}
}
