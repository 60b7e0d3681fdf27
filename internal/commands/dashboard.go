package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/session"
)

func newDashboardCommand(opts *globalOptions) *cobra.Command {
	var asOfFlag string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show this month's totals, spending by category and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			ref, err := asOf(sess, asOfFlag)
			if err != nil {
				return err
			}
			return runDashboard(cmd.OutOrStdout(), sess.Dashboard(ref))
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date YYYY-MM-DD (default today)")

	return cmd
}

func runDashboard(out io.Writer, d session.Dashboard) error {
	sym := d.Currency.Symbol

	fmt.Fprintf(out, "Dashboard for %s\n\n", d.AsOf.Format("January 2006"))

	tw := newTable(out)
	fmt.Fprintf(tw, "Total balance\t%s\n", signedBalance(d.Totals.Balance, sym))
	fmt.Fprintf(tw, "Monthly income\t%s\n", format.Currency(d.Totals.Income, sym))
	fmt.Fprintf(tw, "Monthly expenses\t%s\n", format.Currency(d.Totals.Expenses, sym))
	fmt.Fprintf(tw, "Monthly savings\t%s\n", signedBalance(d.Totals.Savings, sym))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.ExpenseByCategory) > 0 {
		fmt.Fprintln(out, "\nExpenses by category")
		tw = newTable(out)
		for _, c := range d.ExpenseByCategory {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Category, format.Currency(c.Amount, sym))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nRecent transactions")
	return printTransactions(out, d.Recent, sym)
}
