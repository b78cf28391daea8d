package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "novemberfiveco/go-teamleader"

// selfupdateCmd represents the selfupdate command
var selfupdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update the CLI to the latest release",
	RunE:  runSelfupdate,
	// No credentials needed, skip the app bootstrap
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("teamleader %s (built %s)\n", version, buildTime)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func init() {
	rootCmd.AddCommand(selfupdateCmd)
	rootCmd.AddCommand(versionCmd)
}

func runSelfupdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	ctx := context.Background()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepo)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("Already up to date (%s)\n", current)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	fmt.Printf("Updating %s -> %s...\n", current, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("Successfully updated to %s\n", latest.Version())
	return nil
}
