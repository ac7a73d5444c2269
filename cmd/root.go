package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inferahq/infera/internal/history"
)

var rootCmd = &cobra.Command{
	Use:   "infera",
	Short: "Adaptive quiz practice in your terminal",
	Long:  "Infera — terminal client for adaptive question practice, with per-session performance analytics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INFERA_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then INFERA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return history.DefaultPath()
}
