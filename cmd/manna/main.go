package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manna",
		Short: "Manna — scheduled Bible verse delivery and scripture Q&A",
		Long:  "Manna delivers scheduled Bible passages over SMS, Slack and Discord, and answers scripture questions sent back by SMS.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newStateCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "manna %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	// Load .env if present; real environments set variables directly.
	godotenv.Load()
	os.Exit(execute(newRootCmd()))
}
