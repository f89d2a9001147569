package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version задаётся через ldflags при сборке.
var Version = "dev"

func newRootCmd() *cobra.Command {
	run := newRunCmd()

	cmd := &cobra.Command{
		Use:          "wfhbot",
		Short:        "Telegram bot for work-from-home requests",
		SilenceUsage: true,
		RunE:         run.RunE,
	}

	cmd.AddCommand(run)
	cmd.AddCommand(newStateCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wfhbot %s\n", Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
