package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Set by the release build.
var (
	version = "dev"
	commit  = "none"
)

// configFile is the --config flag shared by every subcommand.
var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cohorts",
		Short:         "Classify repositories into migration cohorts.",
		Long:          `cohorts weighs each repository in an inventory by its migration blockers and sorts it into a migration cohort.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./cohorts.yaml or ./configs/cohorts.yaml)")

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newWeightsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
