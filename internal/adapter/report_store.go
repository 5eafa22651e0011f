package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	m "gooze.dev/pkg/morph/internal/model"
	"gooze.dev/pkg/morph/pkg"
	"gopkg.in/yaml.v3"
)

// ReportsFileName is the file a report directory keeps its reports in.
const ReportsFileName = "reports.yaml"

// ShardDirPrefix prefixes the per-shard report directories.
const ShardDirPrefix = "shard_"

// ReportStore persists mutation test reports.
type ReportStore interface {
	SaveReports(ctx context.Context, dir m.Path, reports pkg.FileSpill[m.Report]) error
	LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error)
	// MergeReports combines the reports of every shard directory below dir
	// into the reports file of dir.
	MergeReports(ctx context.Context, dir m.Path) (int, error)
}

// YAMLReportStore stores reports as a YAML sequence.
type YAMLReportStore struct{}

// NewReportStore creates a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// ShardDir returns the report directory of one shard.
func ShardDir(dir m.Path, shardIndex int) m.Path {
	return m.Path(filepath.Join(string(dir), fmt.Sprintf("%s%d", ShardDirPrefix, shardIndex)))
}

// SaveReports writes every report in the spill to dir, replacing earlier reports.
func (s *YAMLReportStore) SaveReports(ctx context.Context, dir m.Path, reports pkg.FileSpill[m.Report]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	collected := make([]m.Report, 0, reports.Len())

	if err := reports.Range(func(_ uint64, report m.Report) error {
		collected = append(collected, report)
		return nil
	}); err != nil {
		return fmt.Errorf("read reports: %w", err)
	}

	return writeReports(dir, collected)
}

func writeReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create report dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	path := filepath.Join(string(dir), ReportsFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	slog.Debug("saved reports", "path", path, "count", len(reports))

	return nil
}

// LoadReports reads the reports of dir. A missing reports file yields no reports.
func (s *YAMLReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(string(dir), ReportsFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []m.Report{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var reports []m.Report
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if reports == nil {
		reports = []m.Report{}
	}

	return reports, nil
}

// MergeReports concatenates the shard reports in shard order and returns how
// many reports were merged.
func (s *YAMLReportStore) MergeReports(ctx context.Context, dir m.Path) (int, error) {
	shards, err := filepath.Glob(filepath.Join(string(dir), ShardDirPrefix+"*"))
	if err != nil {
		return 0, fmt.Errorf("list shards: %w", err)
	}

	if len(shards) == 0 {
		return 0, fmt.Errorf("no shard reports found in %s", dir)
	}

	sort.Strings(shards)

	merged := make([]m.Report, 0)

	for _, shard := range shards {
		reports, err := s.LoadReports(ctx, m.Path(shard))
		if err != nil {
			return 0, err
		}

		merged = append(merged, reports...)
	}

	if err := writeReports(dir, merged); err != nil {
		return 0, err
	}

	return len(merged), nil
}
