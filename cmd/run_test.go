package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/morph/internal/domain"
	m "gooze.dev/pkg/morph/internal/model"
)

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.Threads == 1 &&
			args.ShardIndex == 0 &&
			args.TotalShardCount == 1 &&
			args.Reports == m.Path(".morph-reports") &&
			args.MutationTimeout == 120*time.Second &&
			len(args.Paths) == 1 && args.Paths[0] == m.Path("./...") &&
			len(args.Operators) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_ParallelAndTimeout(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.Threads == 4 && args.MutationTimeout == 5*time.Second
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--parallel", "4", "--mutation-timeout", "5", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithSharding(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.ShardIndex == 1 && args.TotalShardCount == 3
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--shard", "1/3", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return len(args.Paths) == 3 &&
			args.Paths[0] == m.Path("./lib") &&
			args.Paths[1] == m.Path("./src") &&
			args.Paths[2] == m.Path("./index.js")
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./lib", "./src", "./index.js"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithExcludePatternsAndOperators(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return assert.ObjectsAreEqual([]string{"^generated_", "\\.min\\.js$"}, args.Exclude) &&
			assert.ObjectsAreEqual([]string{"AOR", "ROR"}, args.Operators)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-x", "^generated_", "-x", "\\.min\\.js$", "--operators", "AOR,ROR", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, newRunCmd)

	mockWorkflow.EXPECT().Test(mock.Anything, mock.Anything).Return(assert.AnError)

	cmd.SetArgs([]string{"run"})
	require.ErrorIs(t, cmd.Execute(), assert.AnError)
}

func TestNewRunCmd(t *testing.T) {
	resetConfig(t)

	cmd := newRunCmd()

	assert.Equal(t, "run [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("parallel"))
	assert.NotNil(t, cmd.Flags().Lookup("shard"))
	assert.NotNil(t, cmd.Flags().Lookup("mutation-timeout"))
}
