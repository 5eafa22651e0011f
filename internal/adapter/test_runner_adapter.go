package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// TestFilePlaceholder is replaced by the test file path in a test command.
const TestFilePlaceholder = "{test}"

// DefaultTestCommand runs the test file with the built-in node test runner.
const DefaultTestCommand = "node --test " + TestFilePlaceholder

// DefaultTestTimeout bounds a single test run.
const DefaultTestTimeout = 30 * time.Second

// ErrTestTimeout is returned when a test run exceeds its timeout.
var ErrTestTimeout = errors.New("test run timed out")

// TestRunnerAdapter abstracts test execution operations for mutation testing.
type TestRunnerAdapter interface {
	// RunTests runs the configured test command for one test file in the
	// given directory. Returns the combined stdout/stderr output and any error.
	RunTests(ctx context.Context, workDir, testFile string) (output string, err error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	command []string
	timeout time.Duration
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter. An empty
// command or a non-positive timeout selects the defaults.
func NewLocalTestRunnerAdapter(command string, timeout time.Duration) *LocalTestRunnerAdapter {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultTestCommand)
	}

	if timeout <= 0 {
		timeout = DefaultTestTimeout
	}

	return &LocalTestRunnerAdapter{command: fields, timeout: timeout}
}

// Command returns the argv that would run testFile.
func (a *LocalTestRunnerAdapter) Command(testFile string) []string {
	argv := make([]string, 0, len(a.command))
	for _, field := range a.command {
		argv = append(argv, strings.ReplaceAll(field, TestFilePlaceholder, testFile))
	}

	return argv
}

// RunTests runs the test command for testFile with workDir as working directory.
func (a *LocalTestRunnerAdapter) RunTests(ctx context.Context, workDir, testFile string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	argv := a.Command(testFile)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%w after %s", ErrTestTimeout, a.timeout)
	}

	return output, err
}
