package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gooze.dev/pkg/morph/internal/adapter"
	m "gooze.dev/pkg/morph/internal/model"
)

// maxReportOutput bounds the test output kept in a report.
const maxReportOutput = 4096

// Orchestrator coordinates applying a mutation to a temporary copy of
// the project and running the corresponding tests to determine whether the
// mutation is killed or survives.
type Orchestrator interface {
	TestMutation(ctx context.Context, mutation m.Mutation) (m.Report, error)
}

type orchestrator struct {
	fsAdapter   adapter.SourceFSAdapter
	testAdapter adapter.TestRunnerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and test runner adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, testAdapter adapter.TestRunnerAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter:   fsAdapter,
		testAdapter: testAdapter,
	}
}

func (to *orchestrator) TestMutation(ctx context.Context, mutation m.Mutation) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return reportFor(mutation, m.Timeout, ""), nil
	}

	if err := to.validateMutation(mutation); err != nil {
		return m.Report{}, err
	}

	if mutation.Source.Test == nil {
		return reportFor(mutation, m.Survived, ""), nil
	}

	projectRoot, tmpDir, err := to.prepareWorkspace(ctx, mutation.Source.Origin.FullPath)
	if tmpDir != "" {
		defer to.cleanupTempDir(ctx, tmpDir)
	}

	if err != nil {
		return m.Report{}, err
	}

	tmpSourcePath, err := to.tempPath(ctx, projectRoot, tmpDir, mutation.Source.Origin.FullPath)
	if err != nil {
		return m.Report{}, err
	}

	if err := to.writeMutatedFile(ctx, tmpSourcePath, mutation.MutatedCode); err != nil {
		return m.Report{}, err
	}

	tmpTestPath, err := to.tempPath(ctx, projectRoot, tmpDir, mutation.Source.Test.FullPath)
	if err != nil {
		return m.Report{}, err
	}

	status, output := to.runTests(ctx, tmpDir, tmpTestPath)

	return reportFor(mutation, status, output), nil
}

func (to *orchestrator) validateMutation(mutation m.Mutation) error {
	if mutation.Source.Origin == nil {
		return fmt.Errorf("source origin is nil")
	}

	return nil
}

func reportFor(mutation m.Mutation, status m.TestStatus, output string) m.Report {
	if len(output) > maxReportOutput {
		output = output[len(output)-maxReportOutput:]
	}

	return m.Report{
		MutationID: mutation.ID,
		Source:     mutation.Source,
		Operator:   mutation.Operator,
		Site:       mutation.Site,
		Status:     status,
		Diff:       string(mutation.DiffCode),
		Output:     output,
	}
}

func (to *orchestrator) prepareWorkspace(ctx context.Context, sourcePath m.Path) (m.Path, m.Path, error) {
	projectRoot, err := to.fsAdapter.FindProjectRoot(ctx, sourcePath)
	if err != nil {
		slog.Error("Failed to find project root", "sourcePath", sourcePath, "error", err)
		return "", "", fmt.Errorf("failed to find project root: %w", err)
	}

	tmpDir, err := to.fsAdapter.CreateTempDir(ctx, "morph-mutation-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		return "", "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	if err := to.fsAdapter.CopyDir(ctx, projectRoot, tmpDir); err != nil {
		slog.Error("Failed to copy project to temp dir", "projectRoot", projectRoot, "tmpDir", tmpDir, "error", err)
		return projectRoot, tmpDir, fmt.Errorf("failed to copy project: %w", err)
	}

	return projectRoot, tmpDir, nil
}

// tempPath maps a path inside the project to the same path in the copy.
func (to *orchestrator) tempPath(ctx context.Context, projectRoot, tmpDir, path m.Path) (m.Path, error) {
	rel, err := to.fsAdapter.RelPath(ctx, projectRoot, path)
	if err != nil {
		slog.Error("Failed to get relative path", "projectRoot", projectRoot, "path", path, "error", err)
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}

	return to.fsAdapter.JoinPath(ctx, string(tmpDir), string(rel)), nil
}

func (to *orchestrator) writeMutatedFile(ctx context.Context, path m.Path, content []byte) error {
	if err := to.fsAdapter.WriteFile(ctx, path, content, 0o600); err != nil {
		slog.Error("Failed to write mutated file", "path", path, "error", err)
		return fmt.Errorf("failed to write mutated file: %w", err)
	}

	return nil
}

func (to *orchestrator) runTests(ctx context.Context, tmpDir, testPath m.Path) (m.TestStatus, string) {
	if err := ctx.Err(); err != nil {
		return m.Timeout, ""
	}

	output, testErr := to.testAdapter.RunTests(ctx, string(tmpDir), string(testPath))
	if testErr != nil {
		if ctx.Err() != nil || errors.Is(testErr, adapter.ErrTestTimeout) {
			return m.Timeout, output
		}

		return m.Killed, output
	}

	return m.Survived, output
}

// cleanupTempDir removes the temporary directory, logging errors if cleanup fails.
func (to *orchestrator) cleanupTempDir(ctx context.Context, tmpDir m.Path) {
	if err := to.fsAdapter.RemoveAll(ctx, tmpDir); err != nil {
		slog.Error("Failed to cleanup temp dir", "tmpDir", tmpDir, "error", err)
	}
}
