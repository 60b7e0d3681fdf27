package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/importer"
	"github.com/cleared-dev/myfinances/internal/session"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement CSVs as transactions",
		Long: `Import bank statement CSVs as transactions.

With no arguments, every CSV waiting in <dir>/import/ is imported and then
moved to import/processed/. Lines already imported are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(formatName)
			if parser == nil {
				return fmt.Errorf("unknown format %q (supported: %s)",
					formatName, strings.Join(importer.DefaultRegistry().Formats(), ", "))
			}
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return runImportFiles(out, sess, parser, args)
			}
			return runImportPending(out, sess, parser)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "generic", "statement format")

	return cmd
}

func runImportFiles(out io.Writer, sess *session.Session, parser importer.Parser, paths []string) error {
	for _, path := range paths {
		if err := importFile(out, sess, parser, path); err != nil {
			return err
		}
	}
	return nil
}

// runImportPending imports everything in the import directory.
func runImportPending(out io.Writer, sess *session.Session, parser importer.Parser) error {
	files, err := importer.Scan(sess.Dir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No statements waiting in import/.")
		return nil
	}
	for _, f := range files {
		if err := importFile(out, sess, parser, f.Path); err != nil {
			return err
		}
		if err := importer.MarkProcessed(sess.Dir(), f.Name); err != nil {
			return err
		}
	}
	return nil
}

func importFile(out io.Writer, sess *session.Session, parser importer.Parser, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	lines, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	res, err := sess.Import(lines, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	fmt.Fprintf(out, "%s: %d added, %d already imported\n", filepath.Base(path), len(res.Added), res.Skipped)
	return nil
}
