package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/config"
)

var (
	version   = "dev"
	buildTime = "unknown"

	updateRepo string
)

// SetVersion records the build version shown by `marquee version` and used
// by `marquee update`
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// no config needed
	PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marquee %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
	},
}

// updateCmd represents the self-update command
var updateCmd = &cobra.Command{
	Use:                "update",
	Short:              "Update marquee to the latest release",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  initializeUpdate,
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	RunE:               runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateRepo, "repo", "", "GitHub repository to update from (owner/name)")

	rootCmd.AddCommand(versionCmd, updateCmd)
}

// initializeUpdate loads config when available. Updating must keep working
// with a broken or missing config.
func initializeUpdate(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		logger.Debug().Err(err).Msg("Using default update settings")
		if updateRepo == "" {
			updateRepo = "s0up4200/marquee"
		}
		return nil
	}

	cfg = loaded
	logger = setupLogger(cfg.Logging)
	if updateRepo == "" {
		updateRepo = cfg.Update.Repository
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s in %s", runtime.GOOS, runtime.GOARCH, updateRepo)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("Already up to date (%s).\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	logger.Info().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Str("asset", latest.AssetName).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("no permission to replace %s, try again with elevated privileges: %w", exe, err)
		}
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Printf("✓ Updated to %s.\n", latest.Version())
	if latest.ReleaseNotes != "" {
		logger.Debug().Str("notes", latest.ReleaseNotes).Msg("Release notes")
	}
	return nil
}
