package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	m "gooze.dev/pkg/morph/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func testMutation(id, operator, path string) m.Mutation {
	return m.Mutation{
		ID:       id,
		Operator: operator,
		Source: m.Source{
			Origin: &m.File{FullPath: m.Path("/proj/" + path), ShortPath: m.Path(path), Hash: "hash-" + path},
		},
		Site: m.Site{Position: m.Span{Start: 0, End: 5}, Original: "a < b", Mutated: "a <= b"},
	}
}

func TestSimpleUI_DisplayEstimation(t *testing.T) {
	tests := []struct {
		name         string
		mutations    []m.Mutation
		wantContains []string
	}{
		{
			name:         "no mutations",
			mutations:    nil,
			wantContains: []string{"0"},
		},
		{
			name: "single file",
			mutations: []m.Mutation{
				testMutation("1", "ROR", "math.js"),
				testMutation("2", "ROR", "math.js"),
				testMutation("3", "AOR", "math.js"),
			},
			wantContains: []string{"math.js", "AOR:1 ROR:2"},
		},
		{
			name: "several files",
			mutations: []m.Mutation{
				testMutation("1", "ROR", "b.js"),
				testMutation("2", "LOR", "a.js"),
			},
			wantContains: []string{"a.js", "b.js", "LOR:1", "ROR:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCmd()
			ui := NewSimpleUI(cmd)

			if err := ui.DisplayEstimation(context.Background(), tt.mutations, nil); err != nil {
				t.Fatalf("DisplayEstimation() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayEstimation_SortsByPath(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	mutations := []m.Mutation{
		testMutation("1", "ROR", "zeta.js"),
		testMutation("2", "ROR", "alpha.js"),
	}

	if err := ui.DisplayEstimation(context.Background(), mutations, nil); err != nil {
		t.Fatalf("DisplayEstimation() error = %v", err)
	}

	output := buf.String()
	if strings.Index(output, "alpha.js") > strings.Index(output, "zeta.js") {
		t.Errorf("expected alpha.js before zeta.js:\n%s", output)
	}
}

func TestSimpleUI_DisplayEstimation_Error(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	wantErr := errors.New("parse failed")

	err := ui.DisplayEstimation(context.Background(), nil, wantErr)
	if !errors.Is(err, wantErr) {
		t.Fatalf("DisplayEstimation() error = %v, want %v", err, wantErr)
	}

	if !strings.Contains(buf.String(), "estimation error: parse failed") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSimpleUI_DisplayMutants(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	ui.DisplayMutants(context.Background(), "ROR", "math.js", []m.Mutant{
		{Code: "4 <= 5;", Site: m.Site{Position: m.Span{Start: 0, End: 5}, Original: "4 < 5", Mutated: "4 <= 5"}},
		{Code: "4 > 5;", Site: m.Site{Position: m.Span{Start: 0, End: 5}, Original: "4 < 5", Mutated: "4 > 5"}},
	})

	want := "ROR math.js[0,5): 4 < 5 -> 4 <= 5\nROR math.js[0,5): 4 < 5 -> 4 > 5\n"
	if buf.String() != want {
		t.Errorf("DisplayMutants() output = %q, want %q", buf.String(), want)
	}
}

func TestSimpleUI_ProgressLines(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)
	ctx := context.Background()

	mutation := testMutation("ROR_0123456789abcdef", "ROR", "math.js")
	mutation.DiffCode = []byte("--- a/math.js\n+++ b/math.js\n")

	ui.DisplayConcurrencyInfo(ctx, 4, 1, 3)
	ui.DisplayUpcomingTestsInfo(ctx, 7)
	ui.DisplayStartingTestInfo(ctx, mutation, 0)
	ui.DisplayCompletedTestInfo(ctx, mutation, m.Report{Status: m.Survived})
	ui.DisplayMutationScore(ctx, 66.666)

	output := buf.String()
	for _, want := range []string{
		"Running mutations with 4 worker(s) (Shard 1/3)",
		"Upcoming mutations: 7",
		"Starting mutation ROR_01234567 (ROR) math.js",
		"Completed mutation ROR_01234567 (ROR) -> survived",
		"--- a/math.js",
		"Mutation score: 66.67%",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestSimpleUI_KilledMutationHidesDiff(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	mutation := testMutation("AOR_1", "AOR", "math.js")
	mutation.DiffCode = []byte("--- a/math.js")

	ui.DisplayCompletedTestInfo(context.Background(), mutation, m.Report{Status: m.Killed})

	if strings.Contains(buf.String(), "--- a/math.js") {
		t.Errorf("diff printed for killed mutation:\n%s", buf.String())
	}
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	source := m.Source{Origin: &m.File{ShortPath: "src/math.js"}}
	reports := []m.Report{
		{MutationID: "ROR_1", Operator: "ROR", Source: source, Status: m.Killed, Diff: "killed-diff"},
		{MutationID: "ROR_2", Operator: "ROR", Source: source, Status: m.Survived, Diff: "survived-diff"},
		{MutationID: "AOR_1", Operator: "AOR", Source: source, Status: m.Timeout},
	}

	if err := ui.DisplayReports(context.Background(), reports); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"ROR_1", "ROR_2", "AOR_1", "src/math.js", "survived", "timeout", "survived-diff"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if strings.Contains(output, "killed-diff") {
		t.Errorf("diff printed for killed report:\n%s", output)
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	if err := ui.DisplayReports(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("DisplayReports() error = %v, want context.Canceled", err)
	}

	ui.DisplayMutationScore(ctx, 100)
	ui.DisplayUpcomingTestsInfo(ctx, 1)

	if buf.Len() != 0 {
		t.Errorf("expected no output after cancellation, got %q", buf.String())
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "", want: ""},
		{id: "ROR_1", want: "ROR_1"},
		{id: "ROR_0123456789", want: "ROR_01234567"},
	}

	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCmd()

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Error("NewUI(non-tty) should return *SimpleUI")
	}

	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Error("NewUI(tty) should return *TUI")
	}
}

func TestIsTTY(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("a buffer is not a terminal")
	}
}
