package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/novemberfiveco/go-teamleader/config"
	"github.com/novemberfiveco/go-teamleader/teamleader"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *teamleader.Client

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	query      string
	tag        string
	since      string
	segmentID  int
	limit      int
)

// SetVersion records build information injected by the linker.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "teamleader",
	Short: "A CLI for the Teamleader CRM and invoicing API",
	Long: `teamleader is a CLI tool for working with the Teamleader CRM: searching
and managing contacts and companies, creating invoices and inspecting
your account, all through the v1 form-POST API.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create the API client
	opts := []teamleader.Option{
		teamleader.WithTimeout(time.Duration(cfg.Teamleader.TimeoutSeconds) * time.Second),
	}
	if cfg.Teamleader.URL != "" {
		opts = append(opts, teamleader.WithBaseURL(cfg.Teamleader.URL))
	}
	client = teamleader.New(cfg.Teamleader.Group, cfg.Teamleader.Secret, logger, opts...)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	noColor := !cfg.Color
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		noColor = true
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter expression to use, if any
func getFilterExpression() (string, error) {
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter.Presets[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}

// parseSince parses the --since flag as a date or RFC 3339 timestamp
func parseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q: use YYYY-MM-DD or RFC 3339", value)
	}
	return t, nil
}
