package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/activitylog"
	"github.com/cleared-dev/myfinances/internal/id"
)

func newLogCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			entries, err := sess.Activity(limit)
			if err != nil {
				return err
			}
			return runLog(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")

	return cmd
}

func runLog(out io.Writer, entries []activitylog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No activity yet.")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "TIME\tLEVEL\tACTION\tTXN\tDETAILS")
	for _, e := range entries {
		txn := ""
		if e.TransactionID > 0 {
			txn = id.Format(e.TransactionID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Level,
			e.Action,
			txn,
			e.Details,
		)
	}
	return tw.Flush()
}
