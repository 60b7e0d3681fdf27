package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/buildinfo"
	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/logger"
	"github.com/cleared-dev/myfinances/internal/session"
)

// Environment variables read at startup. A .env file in the working
// directory is loaded first; real environment variables win.
const (
	envDir = "MYFINANCES_DIR"
	envEnv = "MYFINANCES_ENV"
)

type globalOptions struct {
	dir     string
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "myfinances",
		Short:   "Personal income, expense and budget tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}
			if !cmd.Flags().Changed("dir") {
				if v := os.Getenv(envDir); v != "" {
					opts.dir = v
				}
			}
			logger.Init(os.Getenv(envEnv), opts.verbose)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "data directory (env "+envDir+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newDashboardCommand(opts),
		newTxCommand(opts),
		newBudgetCommand(opts),
		newReportCommand(opts),
		newImportCommand(opts),
		newServeCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}

// openSession opens the data directory selected by --dir.
func (o *globalOptions) openSession() (*session.Session, error) {
	absDir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	sess, err := session.Open(absDir)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", absDir, err)
	}
	return sess, nil
}

// asOf parses an --as-of flag value, falling back to the session clock.
func asOf(sess *session.Session, raw string) (time.Time, error) {
	if raw == "" {
		return sess.Now(), nil
	}
	t, err := format.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: %w", err)
	}
	return t, nil
}
