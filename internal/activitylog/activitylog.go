// Package activitylog keeps an append-only CSV record of what changed in a
// data directory: the notifications a user sees after adding, deleting or
// editing something.
package activitylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Level classifies an entry the way notifications are coloured.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp     time.Time
	Level         Level
	Action        string
	Details       string
	TransactionID int // 0 when the action is not about one transaction
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,level,action,details,transaction_id"

const (
	numFields  = 5
	logDir     = "logs"
	logFile    = "logs/activity-log.csv"
	colTime    = 0
	colLevel   = 1
	colAction  = 2
	colDetails = 3
	colTxnID   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colLevel] = string(e.Level)
	row[colAction] = e.Action
	row[colDetails] = e.Details
	if e.TransactionID != 0 {
		row[colTxnID] = strconv.Itoa(e.TransactionID)
	}
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	var txnID int
	if record[colTxnID] != "" {
		txnID, err = strconv.Atoi(record[colTxnID])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing transaction_id %q: %w", record[colTxnID], err)
		}
	}

	return Entry{
		Timestamp:     ts,
		Level:         Level(record[colLevel]),
		Action:        record[colAction],
		Details:       record[colDetails],
		TransactionID: txnID,
	}, nil
}

// Append writes entries to <dir>/logs/activity-log.csv, creating the file and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dir>/logs/activity-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Tail returns the last n entries, oldest first. n <= 0 returns everything.
func Tail(dir string, n int) ([]Entry, error) {
	entries, err := Read(dir)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
