package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/config"
	"github.com/cleared-dev/myfinances/internal/gitops"
	"github.com/cleared-dev/myfinances/internal/session"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var empty bool
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a data directory, seeded with sample data unless --empty",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, empty, useGit)
		},
	}

	cmd.Flags().BoolVar(&empty, "empty", false, "start without the sample transactions")
	cmd.Flags().BoolVar(&useGit, "git", false, "track the directory in git and commit every change")

	return cmd
}

func runInit(out io.Writer, dir string, empty, useGit bool) error {
	if _, err := os.Stat(config.Path(dir)); err == nil {
		return fmt.Errorf("%s is already initialized", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", dir, err)
	}

	for _, d := range []string{"logs", "import"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.Git.AutoCommit = useGit

	var sess *session.Session
	if empty {
		sess = session.New(session.WithConfig(cfg))
	} else {
		sess = session.NewSample(session.WithConfig(cfg))
	}

	if useGit {
		// Write .gitignore.
		if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nimport/processed/\n"), 0o644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
		if err := gitops.Init(dir); err != nil {
			return err
		}
	}

	if err := sess.SaveTo(dir); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}

	what := "sample data"
	if empty {
		what = "no transactions"
	}
	fmt.Fprintf(out, "Initialized MyFinances data at %s with %s\n", dir, what)
	if useGit {
		fmt.Fprintln(out, "Changes will be committed to git automatically.")
	}
	return nil
}
