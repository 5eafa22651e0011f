package domain

import (
	m "gooze.dev/pkg/morph/internal/model"
	pkg "gooze.dev/pkg/morph/pkg"
)

// mutationScoreFromReports returns the percentage of scored mutations that
// were detected. Timeouts count as detected; skipped and errored mutations
// are not scored. Without scored mutations the score is 100.
func mutationScoreFromReports(reports pkg.FileSpill[m.Report]) (float64, error) {
	var counts scoreCounts

	err := reports.Range(func(_ uint64, report m.Report) error {
		counts.add(report.Status)
		return nil
	})
	if err != nil {
		return 0.0, err
	}

	return counts.score(), nil
}

// mutationScore scores reports held in memory.
func mutationScore(reports []m.Report) float64 {
	var counts scoreCounts
	for _, report := range reports {
		counts.add(report.Status)
	}

	return counts.score()
}

type scoreCounts struct {
	detected int
	total    int
}

func (c *scoreCounts) add(status m.TestStatus) {
	switch status {
	case m.Killed, m.Timeout:
		c.detected++
		c.total++
	case m.Survived:
		c.total++
	case m.Skipped, m.Error:
		// Skipped/error entries are excluded from the score denominator.
	}
}

func (c *scoreCounts) score() float64 {
	if c.total == 0 {
		return 100.0
	}

	return float64(c.detected) / float64(c.total) * 100
}
