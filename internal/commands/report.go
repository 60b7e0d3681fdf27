package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/report"
	"github.com/cleared-dev/myfinances/internal/session"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Income trends and budget comparisons",
	}
	reportCmd.AddCommand(
		newReportTrendCommand(opts),
		newReportBudgetsCommand(opts),
	)
	return reportCmd
}

func newReportTrendCommand(opts *globalOptions) *cobra.Command {
	var (
		asOfFlag string
		months   int
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Monthly income and expenses for the trailing months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if months < 0 {
				return fmt.Errorf("--months must not be negative")
			}
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			ref, err := asOf(sess, asOfFlag)
			if err != nil {
				return err
			}
			return runReportTrend(cmd.OutOrStdout(), sess.Trend(ref, months), sess.Currency())
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "last month of the window, YYYY-MM-DD (default today)")
	cmd.Flags().IntVarP(&months, "months", "m", 0, "number of months (default from config)")

	return cmd
}

func runReportTrend(out io.Writer, s report.Series, cur model.Currency) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "MONTH\tINCOME\tEXPENSES\tNET")
	for i, label := range s.Labels {
		net := s.Income[i].Sub(s.Expenses[i])
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			label,
			format.Currency(s.Income[i], cur.Symbol),
			format.Currency(s.Expenses[i], cur.Symbol),
			signedBalance(net, cur.Symbol),
		)
	}
	return tw.Flush()
}

func newReportBudgetsCommand(opts *globalOptions) *cobra.Command {
	var asOfFlag string

	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Budget limits against actual spend, including overspend",
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
			return runReportBudgets(cmd.OutOrStdout(), sess.Budgets(ref))
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date YYYY-MM-DD (default today)")

	return cmd
}

func runReportBudgets(out io.Writer, v session.BudgetView) error {
	sym := v.Currency.Symbol

	fmt.Fprintf(out, "Budget vs actual for %s\n\n", v.AsOf.Format("January 2006"))

	tw := newTable(out)
	fmt.Fprintln(tw, "CATEGORY\tBUDGET\tACTUAL\tREMAINING\tRATIO")
	for _, u := range v.Utilization {
		remaining := u.Limit.Sub(u.Spent)
		mark := ""
		if u.Over() {
			mark = " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\n",
			u.Category,
			format.Currency(u.Limit, sym),
			format.Currency(u.Spent, sym),
			signedBalance(remaining, sym),
			format.Percent(u.Ratio),
			mark,
		)
	}
	return tw.Flush()
}
