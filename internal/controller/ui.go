// Package controller provides output adapters for displaying mutation testing results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "gooze.dev/pkg/morph/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeTest
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithTestMode sets the UI to test execution mode.
func WithTestMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTest
	}
}

// WithViewMode sets the UI to report browsing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func resolveStartConfig(options []StartOption) StartConfig {
	config := StartConfig{mode: ModeEstimate}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for displaying mutation testing progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, mutations []m.Mutation, err error) error
	DisplayMutants(ctx context.Context, operator string, path m.Path, mutants []m.Mutant)
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int)
	DisplayUpcomingTestsInfo(ctx context.Context, count int)
	DisplayStartingTestInfo(ctx context.Context, currentMutation m.Mutation, threadID int)
	DisplayCompletedTestInfo(ctx context.Context, currentMutation m.Mutation, report m.Report)
	DisplayMutationScore(ctx context.Context, score float64)
	DisplayReports(ctx context.Context, reports []m.Report) error
}

// NewUI selects the interactive TUI on terminals and the plain UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

func shortID(id string) string {
	const size = 12
	if len(id) <= size {
		return id
	}

	return id[:size]
}

func sourcePath(source m.Source) string {
	if source.Origin == nil {
		return ""
	}

	return string(source.Origin.ShortPath)
}
