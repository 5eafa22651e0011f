package cmd

import (
	"github.com/spf13/cobra"
	"gooze.dev/pkg/morph/internal/domain"
)

func newMutateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutate [paths...]",
		Short: "Print the mutants of source files",
		Long:  mutateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Mutate(cmd.Context(), domain.MutateArgs{EstimateArgs: estimateArgs(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(newMutateCmd())
}
