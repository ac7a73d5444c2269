package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inferahq/infera/internal/version"
)

// buildVersion is set via -ldflags at build time.
var buildVersion = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("infera", buildVersion)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		res, err := version.NewChecker("inferahq", "infera").Check(cmd.Context(), buildVersion)
		if errors.Is(err, version.ErrDevBuild) {
			fmt.Println("Development build, skipping release check.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("release check: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Printf("A newer release is available: %s\n", res.LatestVersion)
		} else {
			fmt.Println("You are on the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
