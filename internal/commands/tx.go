package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/id"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/report"
	"github.com/cleared-dev/myfinances/internal/session"
	"github.com/cleared-dev/myfinances/internal/transactions"
)

func newTxCommand(opts *globalOptions) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction", "transactions"},
		Short:   "Add, remove and list transactions",
	}
	txCmd.AddCommand(
		newTxAddCommand(opts),
		newTxRemoveCommand(opts),
		newTxListCommand(opts),
	)
	return txCmd
}

type txAddFlags struct {
	kind        string
	amount      string
	category    string
	date        string
	description string
	source      string
}

func newTxAddCommand(opts *globalOptions) *cobra.Command {
	var f txAddFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			return runTxAdd(cmd.OutOrStdout(), sess, f)
		},
	}

	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "income or expense (required)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 1500 or 1,500.50 (required)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category (required)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.source, "source", "", "payer or payee")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runTxAdd(out io.Writer, sess *session.Session, f txAddFlags) error {
	kind, err := model.ParseKind(strings.ToLower(strings.TrimSpace(f.kind)))
	if err != nil {
		return fmt.Errorf("--kind %q: %w", f.kind, err)
	}
	amount, err := format.ParseAmount(f.amount)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}
	date := sess.Now()
	if f.date != "" {
		date, err = format.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	txn, err := sess.AddTransaction(transactions.NewTransaction{
		Date:        date,
		Amount:      amount,
		Kind:        kind,
		Category:    f.category,
		Description: f.description,
		Source:      f.source,
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidCategory) {
			return fmt.Errorf("%w (choose one of: %s)", err, strings.Join(sess.CategoriesFor(kind), ", "))
		}
		return err
	}

	fmt.Fprintf(out, "Added %s %s %s on %s (%s)\n",
		id.Format(txn.ID),
		txn.Kind,
		format.Signed(txn.Amount, txn.Kind, sess.Currency().Symbol),
		format.Date(txn.Date),
		txn.Category,
	)
	return nil
}

func newTxRemoveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			return runTxRemove(cmd.OutOrStdout(), sess, txnID)
		},
	}
}

func runTxRemove(out io.Writer, sess *session.Session, txnID int) error {
	removed, err := sess.DeleteTransaction(txnID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id.Format(txnID))
	}
	fmt.Fprintf(out, "Deleted transaction %s\n", id.Format(txnID))
	return nil
}

func newTxListCommand(opts *globalOptions) *cobra.Command {
	var kind, category, search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := report.Filter{Category: category, Search: search}
			if kind != "" {
				k, err := model.ParseKind(strings.ToLower(kind))
				if err != nil {
					return fmt.Errorf("--kind %q: %w", kind, err)
				}
				f.Kind = k
			}
			sess, err := opts.openSession()
			if err != nil {
				return err
			}
			return printTransactions(cmd.OutOrStdout(), sess.Transactions(f), sess.Currency().Symbol)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only income or expense")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match description, category or source")

	return cmd
}
