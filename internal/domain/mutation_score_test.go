package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/morph/internal/model"
	pkg "gooze.dev/pkg/morph/pkg"
)

func reportsWith(statuses ...m.TestStatus) []m.Report {
	reports := make([]m.Report, 0, len(statuses))
	for _, status := range statuses {
		reports = append(reports, m.Report{MutationID: status.String(), Status: status})
	}

	return reports
}

func TestMutationScore(t *testing.T) {
	tests := []struct {
		name     string
		statuses []m.TestStatus
		want     float64
	}{
		{"no reports", nil, 100},
		{"all killed", []m.TestStatus{m.Killed, m.Killed}, 100},
		{"half survived", []m.TestStatus{m.Killed, m.Survived}, 50},
		{"timeout counts as detected", []m.TestStatus{m.Timeout, m.Survived, m.Survived, m.Killed}, 50},
		{"skipped and errors are not scored", []m.TestStatus{m.Killed, m.Skipped, m.Error}, 100},
		{"only unscored", []m.TestStatus{m.Skipped, m.Error}, 100},
		{"all survived", []m.TestStatus{m.Survived}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mutationScore(reportsWith(tt.statuses...)), 0.001)
		})
	}
}

func TestMutationScoreFromReports(t *testing.T) {
	spill, err := pkg.NewFileSpillIn[m.Report](t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Remove() })

	require.NoError(t, spill.AppendBatch(reportsWith(m.Killed, m.Survived, m.Survived, m.Timeout, m.Error)))

	score, err := mutationScoreFromReports(spill)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, score, 0.001)
}
