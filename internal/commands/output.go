package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/id"
	"github.com/cleared-dev/myfinances/internal/model"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// printTransactions writes a transaction table, or a notice when empty.
func printTransactions(out io.Writer, txns []model.Transaction, symbol string) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(out, "No transactions found.")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tDATE\tKIND\tCATEGORY\tDESCRIPTION\tSOURCE\tAMOUNT")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id.Format(t.ID),
			format.Date(t.Date),
			t.Kind,
			t.Category,
			t.Description,
			t.Source,
			format.Signed(t.Amount, t.Kind, symbol),
		)
	}
	return tw.Flush()
}

// signedBalance renders a balance that may be negative.
func signedBalance(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + format.Currency(d, symbol)
	}
	return format.Currency(d, symbol)
}
