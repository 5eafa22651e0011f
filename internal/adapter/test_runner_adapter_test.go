package adapter

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTestRunnerAdapter_Command(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		testFile string
		want     []string
	}{
		{
			name:     "default command",
			command:  "",
			testFile: "src/math.test.js",
			want:     []string{"node", "--test", "src/math.test.js"},
		},
		{
			name:     "custom command with placeholder",
			command:  "npx jest {test} --silent",
			testFile: "a.spec.js",
			want:     []string{"npx", "jest", "a.spec.js", "--silent"},
		},
		{
			name:     "command without placeholder",
			command:  "npm test",
			testFile: "ignored.test.js",
			want:     []string{"npm", "test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewLocalTestRunnerAdapter(tt.command, 0)
			assert.Equal(t, tt.want, runner.Command(tt.testFile))
		})
	}
}

func TestLocalTestRunnerAdapter_RunTests_Success(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runner := NewLocalTestRunnerAdapter("sh -c {test}", time.Second)

	out, err := runner.RunTests(context.Background(), t.TempDir(), "echo ok")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestLocalTestRunnerAdapter_RunTests_Failure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runner := NewLocalTestRunnerAdapter("sh -c {test}", time.Second)

	out, err := runner.RunTests(context.Background(), t.TempDir(), "echo failing >&2; exit 1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTestTimeout))
	assert.Contains(t, out, "failing")
}

func TestLocalTestRunnerAdapter_RunTests_Timeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	runner := NewLocalTestRunnerAdapter("sleep {test}", 50*time.Millisecond)

	_, err := runner.RunTests(context.Background(), t.TempDir(), "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTestTimeout)
}
