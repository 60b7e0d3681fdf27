package transactions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,kind,amount,category,description,source"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colKind    = 2
	colAmount  = 3
	colCat     = 4
	colDesc    = 5
	colSource  = 6
)

// ReadTransactions reads all rows from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	seen := make(map[int]bool, len(records)-1)
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if seen[txn.ID] {
			return nil, fmt.Errorf("row %d: duplicate id %d", i+2, txn.ID)
		}
		seen[txn.ID] = true
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to w, including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(txn.ID)
	row[colDate] = txn.Date.Format(dateFormat)
	row[colKind] = string(txn.Kind)
	row[colAmount] = txn.Amount.String()
	row[colCat] = txn.Category
	row[colDesc] = txn.Description
	row[colSource] = txn.Source
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	txnID, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	kind, err := model.ParseKind(record[colKind])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing kind %q: %w", record[colKind], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], model.ErrInvalidAmount)
	}

	return model.Transaction{
		ID:          txnID,
		Date:        date,
		Amount:      amount,
		Kind:        kind,
		Category:    record[colCat],
		Description: record[colDesc],
		Source:      record[colSource],
	}, nil
}
