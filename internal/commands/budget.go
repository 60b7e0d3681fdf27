package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/session"
)

func newBudgetCommand(opts *globalOptions) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Show and change monthly category budgets",
	}
	budgetCmd.AddCommand(
		newBudgetListCommand(opts),
		newBudgetSetCommand(opts),
	)
	return budgetCmd
}

func newBudgetListCommand(opts *globalOptions) *cobra.Command {
	var asOfFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show each budget's spend for the month",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			ref, err := asOf(sess, asOfFlag)
			if err != nil {
				return err
			}
			return runBudgetList(cmd.OutOrStdout(), sess.Budgets(ref))
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date YYYY-MM-DD (default today)")

	return cmd
}

func runBudgetList(out io.Writer, v session.BudgetView) error {
	sym := v.Currency.Symbol

	fmt.Fprintf(out, "Budgets for %s\n\n", v.AsOf.Format("January 2006"))

	tw := newTable(out)
	fmt.Fprintln(tw, "CATEGORY\tLIMIT\tSPENT\tUSED\tSTATUS")
	for _, u := range v.Utilization {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\n",
			u.Icon,
			u.Category,
			format.Currency(u.Limit, sym),
			format.Currency(u.Spent, sym),
			format.Percent(u.Percentage),
			u.Status,
		)
	}
	return tw.Flush()
}

func newBudgetSetCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Change a category's monthly limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			return runBudgetSet(cmd.OutOrStdout(), sess, args[0], args[1])
		},
	}
}

func runBudgetSet(out io.Writer, sess *session.Session, category, rawLimit string) error {
	limit, err := parseLimit(rawLimit)
	if err != nil {
		return err
	}
	if err := sess.SetBudgetLimit(category, limit); err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s budget to %s\n", category, format.Currency(limit, sess.Currency().Symbol))
	return nil
}

func parseLimit(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	limit, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", model.ErrInvalidLimit, raw)
	}
	return limit, nil
}
