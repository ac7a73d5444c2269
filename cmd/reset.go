package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inferahq/infera/internal/history"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all persisted practice history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This deletes all practice history. Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		journal, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()

		if err := journal.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Practice history cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
