package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/morph/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(context.Context) {}

// DisplayEstimation prints the estimation results or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, mutations []m.Mutation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(buildFileStats(mutations), len(mutations)))

	return nil
}

type fileStat struct {
	path      string
	count     int
	operators map[string]int
}

func buildFileStats(mutations []m.Mutation) []fileStat {
	info := make(map[string]fileStat)

	for _, mutation := range mutations {
		if mutation.Source.Origin == nil {
			continue
		}

		fileHash := mutation.Source.Origin.Hash
		if fileHash == "" {
			fileHash = string(mutation.Source.Origin.ShortPath)
		}

		stat := info[fileHash]
		if stat.operators == nil {
			stat.operators = make(map[string]int)
		}

		stat.path = string(mutation.Source.Origin.ShortPath)
		stat.count++
		stat.operators[mutation.Operator]++
		info[fileHash] = stat
	}

	statsList := make([]fileStat, 0, len(info))
	for _, stat := range info {
		statsList = append(statsList, stat)
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].path < statsList[j].path
	})

	return statsList
}

func (f fileStat) operatorSummary() string {
	names := make([]string, 0, len(f.operators))
	for name := range f.operators {
		names = append(names, name)
	}

	sort.Strings(names)

	var b bytes.Buffer

	for i, name := range names {
		if i > 0 {
			b.WriteString(" ")
		}

		fmt.Fprintf(&b, "%s:%d", name, f.operators[name])
	}

	return b.String()
}

func renderEstimationTable(statsList []fileStat, totalMutations int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Mutations", "Operators"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, stat := range statsList {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.count), stat.operatorSummary()})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(statsList)),
		fmt.Sprintf("%d", totalMutations),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayMutants prints each mutant with its site.
func (s *SimpleUI) DisplayMutants(ctx context.Context, operator string, path m.Path, mutants []m.Mutant) {
	if ctx.Err() != nil {
		return
	}

	for _, mutant := range mutants {
		s.printf("%s %s%s: %s -> %s\n", operator, path, mutant.Site.Position, mutant.Site.Original, mutant.Site.Mutated)
	}
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Running mutations with %d worker(s) (Shard %d/%d)\n", threads, shardIndex, shardCount)
}

// DisplayUpcomingTestsInfo shows the number of upcoming mutations to be tested.
func (s *SimpleUI) DisplayUpcomingTestsInfo(ctx context.Context, count int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Upcoming mutations: %d\n", count)
}

// DisplayStartingTestInfo shows info about the mutation test starting.
func (s *SimpleUI) DisplayStartingTestInfo(ctx context.Context, currentMutation m.Mutation, _ int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Starting mutation %s (%s) %s\n", shortID(currentMutation.ID), currentMutation.Operator, sourcePath(currentMutation.Source))
}

// DisplayCompletedTestInfo shows info about the mutation test completion.
func (s *SimpleUI) DisplayCompletedTestInfo(ctx context.Context, currentMutation m.Mutation, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Completed mutation %s (%s) -> %s\n", shortID(currentMutation.ID), currentMutation.Operator, report.Status)

	if report.Status == m.Survived && len(currentMutation.DiffCode) > 0 {
		s.printf("%s\n", currentMutation.DiffCode)
	}
}

// DisplayMutationScore prints the final mutation score.
func (s *SimpleUI) DisplayMutationScore(ctx context.Context, score float64) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Mutation score: %.2f%%\n", score)
}

// DisplayReports prints a table of reports followed by the diffs of survivors.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderReportTable(reports))

	for _, report := range reports {
		if report.Status == m.Survived && report.Diff != "" {
			s.printf("\n%s\n", report.Diff)
		}
	}

	return nil
}

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mutation", "Operator", "Path", "Site", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	counts := make(map[m.TestStatus]int)

	for _, report := range reports {
		counts[report.Status]++
		table.Append([]string{
			shortID(report.MutationID),
			report.Operator,
			sourcePath(report.Source),
			fmt.Sprintf("%s %s -> %s", report.Site.Position, report.Site.Original, report.Site.Mutated),
			report.Status.String(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(reports)),
		"",
		"",
		fmt.Sprintf("killed %d survived %d", counts[m.Killed], counts[m.Survived]),
		fmt.Sprintf("timeout %d", counts[m.Timeout]),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
