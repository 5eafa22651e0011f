// Package cmd provides the root command and CLI setup for morph.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gooze.dev/pkg/morph/internal/adapter"
	"gooze.dev/pkg/morph/internal/controller"
	"gooze.dev/pkg/morph/internal/domain"
	m "gooze.dev/pkg/morph/internal/model"
)

var newDriver adapter.DriverFactory
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var testAdapter adapter.TestRunnerAdapter
var orchestrator domain.Orchestrator
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// operatorNames selects catalogue operators; empty means all of them.
var operatorNames []string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	newDriver = adapter.NewScriptDriverFactory()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	testAdapter = adapter.NewLocalTestRunnerAdapter(viper.GetString(runCommandKey), mutationTimeout())
	orchestrator = domain.NewOrchestrator(fsAdapter, testAdapter)
	mutagen = domain.NewMutagen(newDriver, fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		orchestrator,
		mutagen,
		newDriver,
	)
}

const pathPatternsHelp = `Supports recursive path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./lib ./src    scan multiple directories
  - ./src/math.js  a single script file

Test files (*.test.js, *.spec.js) and node_modules are never mutated.`

const rootLongDescription = `Morph is a mutation testing tool for JavaScript built on tree rewriting.
Mutation operators are written as code patterns with placeholders; every
match of a pattern in your sources yields one mutant per replacement, and
your test suite is run against each mutant to see whether it notices.

` + pathPatternsHelp

const runLongDescription = `Run mutation testing for the given paths (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List source files and the number of applicable mutations.

` + pathPatternsHelp

const mutateLongDescription = `Print every mutant of the given paths without running tests.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "morph",
		Short: "Rewrite-rule based mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with its persistent flags bound to config.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation testing reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringSliceVarP(&operatorNames, operatorsFlagName, "m", viper.GetStringSlice(operatorsConfigKey), "mutation operators to apply, e.g. AOR,ROR (default all)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(operatorsFlagName), operatorsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	if len(paths) == 0 {
		paths = append(paths, m.Path("./..."))
	}

	return paths
}

func estimateArgs(args []string) domain.EstimateArgs {
	return domain.EstimateArgs{
		Paths:     parsePaths(args),
		Exclude:   viper.GetStringSlice(excludeConfigKey),
		Operators: viper.GetStringSlice(operatorsConfigKey),
	}
}
