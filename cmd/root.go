package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/network"
	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/youtube"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	fetcher       *network.Client
	tmdbClient    *tmdb.Client
	youtubeClient *youtube.Client
	store         *library.Store
	filters       *filter.Manager
	formatter     *tmdb.ConsoleFormatter

	// Command flags
	filterExpr  string
	preset      string
	showDetails bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse movies and shows from your terminal",
	Long: `marquee is a terminal streaming browser. It shows trending, popular and
upcoming titles, searches the catalogue, finds trailers, and keeps a personal
watchlist, viewer profiles and liked titles on disk.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&showDetails, "details", "D", false, "show ratings and overviews")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	fetcher = network.NewClient(logger,
		network.WithMaxAttempts(cfg.Network.MaxAttempts),
		network.WithBackoff(cfg.Network.Backoff),
		network.WithRequestTimeout(cfg.Network.RequestTimeout),
		network.WithResourceTimeout(cfg.Network.ResourceTimeout),
		network.WithUserAgent(cfg.Network.UserAgent),
	)

	if keyErr := cfg.TMDB.Validate(); keyErr != nil {
		logger.Debug().Err(keyErr).Msg("TMDB not configured, only library commands are available")
	} else {
		tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, fetcher, logger,
			tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
			tmdb.WithLanguage(cfg.TMDB.Language),
		)
		if err != nil {
			return fmt.Errorf("failed to create TMDB client: %w", err)
		}
	}
	formatter = tmdb.NewConsoleFormatter(tmdbClient)

	if cfg.YouTube.Enabled() {
		youtubeClient, err = youtube.NewClient(cfg.YouTube.BaseURL, cfg.YouTube.APIKey, cfg.YouTube.MaxResults, fetcher, logger)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
	} else {
		logger.Debug().Msg("YouTube api key not set, trailer lookup disabled")
	}

	store, err = library.Open(cfg.Library.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// requireTMDB guards commands that fetch titles
func requireTMDB() error {
	if tmdbClient == nil {
		return fmt.Errorf("tmdb.api_key must be set to a valid API key")
	}
	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if store != nil {
		return store.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the metadata and video APIs",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireTMDB(); err != nil {
		return err
	}

	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)
	if err := tmdbClient.TestConnection(ctx); err != nil {
		return err
	}
	fmt.Println("✓ TMDB connection successful!")

	if youtubeClient == nil {
		fmt.Println("\nYouTube integration: Disabled")
	} else {
		fmt.Printf("\nTesting connection to YouTube at %s...\n", cfg.YouTube.BaseURL)
		if _, err := youtubeClient.SearchVideos(ctx, "trailer"); err != nil {
			return err
		}
		fmt.Println("✓ YouTube connection successful!")
	}

	fmt.Printf("\nLibrary: %s\n", store.Path())
	return nil
}

// resolveFilter picks the --filter expression or --preset from config
func resolveFilter() (*filter.Filter, error) {
	if filterExpr != "" && preset != "" {
		return nil, fmt.Errorf("use either --filter or --preset, not both")
	}
	f, err := filters.Resolve(preset, filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Filtering titles")
	}
	return f, nil
}

// userMessage turns a fetch failure into the line shown instead of a list
func userMessage(err error) string {
	var fetchErr *network.Error
	if !errors.As(err, &fetchErr) {
		if errors.Is(err, context.Canceled) {
			return "Cancelled."
		}
		return "Something went wrong. Please try again."
	}

	switch fetchErr.Kind {
	case network.KindNoData:
		return "Nothing to show right now."
	case network.KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case network.KindInvalidResponse:
		if fetchErr.IsUnauthorized() {
			return "The API rejected the request. Check your api key."
		}
		if fetchErr.IsNotFound() {
			return "Not found."
		}
		return "The server returned an error. Please try again later."
	case network.KindDecoding:
		return "The server sent data we could not read."
	case network.KindBadURL:
		return "The request could not be built. Check the configured base urls."
	default:
		return "Something went wrong. Please try again."
	}
}
