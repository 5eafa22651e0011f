package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gooze.dev/pkg/morph/internal/adapter"
	"gooze.dev/pkg/morph/internal/domain"
	"gooze.dev/pkg/morph/internal/domain/mutagens"
)

const replHelp = `Enter a line of code to print its mutants under the current rule.

  :operators                      list the mutation operators
  :operator NAME                  use a catalogue operator as the current rule
  :rule PATTERN => R1 [=> R2 ...] define a rule from a pattern and replacements
  :rule                           show the current rule
  :tree CODE                      print the term tree of CODE
  :help                           show this help
  :quit                           leave (or press ctrl-D)`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Try patterns and rules interactively",
		Long: `Start an interactive session to write rewrite rules and see the mutants
they produce for snippets of code.

` + replHelp,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "morph> ",
				HistoryFile:     filepath.Join(configFolderPath, ".morph_history"),
				InterruptPrompt: "^C",
				EOFPrompt:       ":quit",
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("start repl: %w", err)
			}
			defer rl.Close()

			session := newReplSession(cmd.OutOrStdout(), newDriver)
			session.info("Welcome to the morph repl. Quit with :quit or ctrl-D.")

			return session.loop(cmd.Context(), rl)
		},
	}
}

func init() {
	rootCmd.AddCommand(newReplCmd())
}

// replSession holds the current rule of an interactive session.
type replSession struct {
	out      io.Writer
	builder  *domain.Builder
	driver   adapter.SnippetDriver
	rule     *domain.Rule
	ruleText string
}

func newReplSession(out io.Writer, newDriver adapter.DriverFactory) *replSession {
	return &replSession{
		out:     out,
		builder: domain.NewBuilder(newDriver()),
		driver:  newDriver(),
	}
}

func (s *replSession) loop(ctx context.Context, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}

		if err != nil { // io.EOF
			return nil
		}

		quit, err := s.Eval(ctx, line)
		if err != nil {
			s.error(err)
		}

		if quit {
			return nil
		}
	}
}

// Eval runs one line of input.
func (s *replSession) Eval(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if !strings.HasPrefix(line, ":") {
		return false, s.mutate(ctx, line)
	}

	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch command {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help", ":h":
		s.print(replHelp + "\n")
	case ":operators":
		for _, op := range mutagens.All() {
			s.print(fmt.Sprintf("%-5s %-40s %s\n", op.Name, op.Description, op))
		}
	case ":operator":
		return false, s.useOperator(ctx, rest)
	case ":rule":
		if rest == "" {
			return false, s.showRule()
		}

		return false, s.defineRule(ctx, rest)
	case ":tree":
		return false, s.tree(ctx, rest)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", command)
	}

	return false, nil
}

func (s *replSession) useOperator(ctx context.Context, name string) error {
	op, ok := mutagens.Lookup(name)
	if !ok {
		return fmt.Errorf("unsupported mutation operator: %s", name)
	}

	return s.compile(ctx, op)
}

func (s *replSession) defineRule(ctx context.Context, text string) error {
	parts := strings.Split(text, "=>")
	if len(parts) < 2 {
		return errors.New("a rule needs a pattern and at least one replacement: PATTERN => REPLACEMENT")
	}

	op := mutagens.Operator{Name: "rule", Pattern: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		op.Replacements = append(op.Replacements, strings.TrimSpace(part))
	}

	return s.compile(ctx, op)
}

func (s *replSession) compile(ctx context.Context, op mutagens.Operator) error {
	rule, err := domain.CompileOperator(ctx, s.builder, op)
	if err != nil {
		return err
	}

	s.rule = rule
	s.ruleText = op.String()
	s.success("rule " + s.ruleText)

	return nil
}

func (s *replSession) showRule() error {
	if s.rule == nil {
		return errors.New("no rule yet, use :rule or :operator")
	}

	s.info(s.ruleText)
	s.print(s.rule.String() + "\n")

	return nil
}

func (s *replSession) tree(ctx context.Context, code string) error {
	term, err := s.driver.Parse(ctx, []byte(code))
	if err != nil {
		return err
	}

	s.print(s.driver.Simplify(term).String() + "\n")

	return nil
}

func (s *replSession) mutate(ctx context.Context, code string) error {
	if s.rule == nil {
		return errors.New("no rule yet, use :rule or :operator")
	}

	mutants, err := domain.NewMutator(s.rule, s.driver, nil).Mutants(ctx, []byte(code))
	if err != nil {
		return err
	}

	if len(mutants) == 0 {
		s.info("no mutants")
		return nil
	}

	for _, mutant := range mutants {
		s.print(fmt.Sprintf("%s %s -> %s\n    %s\n", mutant.Site.Position, mutant.Site.Original, mutant.Site.Mutated, mutant.Code))
	}

	return nil
}

func (s *replSession) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *replSession) info(text string) {
	s.print(pterm.Info.Sprintln(text))
}

func (s *replSession) success(text string) {
	s.print(pterm.Success.Sprintln(text))
}

func (s *replSession) error(err error) {
	s.print(pterm.Error.Sprintln(err.Error()))
}
