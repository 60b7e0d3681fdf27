package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/model"
)

// GenericParser reads a minimal export with the header
// date,description,amount,category. Dates are YYYY-MM-DD, amounts are
// signed (negative for money going out) and may carry a currency symbol and
// digit grouping commas. The category column may be blank.
type GenericParser struct{}

const (
	genericNumFields = 4
	genericColDate   = 0
	genericColDesc   = 1
	genericColAmount = 2
	genericColCat    = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV export.
func (p *GenericParser) Parse(r io.Reader) ([]model.StatementLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var lines []model.StatementLine
	for i, rec := range records[1:] {
		line, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	numberRepeats(lines)
	return lines, nil
}

func parseGenericRow(rec []string) (model.StatementLine, error) {
	date, err := format.ParseDate(rec[genericColDate])
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	raw := strings.TrimSpace(rec[genericColAmount])
	neg := strings.HasPrefix(raw, "-")
	magnitude, err := format.ParseAmount(strings.TrimPrefix(raw, "-"))
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}
	amount := magnitude
	if neg {
		amount = magnitude.Neg()
	}

	desc := strings.TrimSpace(rec[genericColDesc])
	return model.StatementLine{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Category:    strings.TrimSpace(rec[genericColCat]),
		Reference:   makeRef("generic", date, amount, desc),
	}, nil
}
