package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/query"
)

// CSVColumns names the header columns a CSV decklist is read from.
// Matching is case-insensitive. Every column except the front query is
// optional.
type CSVColumns struct {
	Quantity   string
	FrontQuery string
	FrontImage string
	BackQuery  string
	BackImage  string
}

// DefaultCSVColumns returns the stock header names.
func DefaultCSVColumns() CSVColumns {
	return CSVColumns{
		Quantity:   "Quantity",
		FrontQuery: "Front",
		FrontImage: "Front ID",
		BackQuery:  "Back",
		BackImage:  "Back ID",
	}
}

// ParseCSV parses a CSV decklist. Each row is recomposed into a single
// line of the decklist grammar (pinning selected images with the pin
// token) and handed to the parser, so CSV rows and plain text lines
// behave identically from there on.
func ParseCSV(data []byte, columns CSVColumns, parser *query.Parser) ([]query.ParsedLine, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &apperr.ParseError{Format: "csv", Message: err.Error()}
	}
	if len(records) == 0 {
		return nil, &apperr.ParseError{Format: "csv", Message: "missing header row"}
	}

	index := headerIndex(records[0])
	frontCol, ok := index[strings.ToLower(columns.FrontQuery)]
	if !ok {
		return nil, &apperr.ParseError{
			Format:  "csv",
			Message: fmt.Sprintf("missing required column %q", columns.FrontQuery),
		}
	}

	var lines []query.ParsedLine
	for i, record := range records[1:] {
		row := i + 2 // 1-based, after the header

		front := field(record, frontCol)
		if front == "" {
			return nil, &apperr.ParseError{Format: "csv", Line: row, Message: "front query is blank"}
		}

		line := composeLine(parser, rowValues{
			quantity:   fieldNamed(record, index, columns.Quantity),
			front:      front,
			frontImage: fieldNamed(record, index, columns.FrontImage),
			back:       fieldNamed(record, index, columns.BackQuery),
			backImage:  fieldNamed(record, index, columns.BackImage),
		})
		lines = append(lines, parser.ParseLine(line))
	}
	return lines, nil
}

type rowValues struct {
	quantity   string
	front      string
	frontImage string
	back       string
	backImage  string
}

// composeLine rebuilds one grammar line from a CSV row:
// "{quantity} {front}@{frontImage} | {back}@{backImage}", dropping the
// pieces the row leaves blank. A blank quantity defaults to 1 inside the
// grammar itself.
func composeLine(parser *query.Parser, row rowValues) string {
	var b strings.Builder
	if row.quantity != "" {
		b.WriteString(row.quantity)
		b.WriteString(" ")
	}
	b.WriteString(row.front)
	if row.frontImage != "" {
		b.WriteString(parser.PinToken())
		b.WriteString(row.frontImage)
	}
	if row.back != "" || row.backImage != "" {
		b.WriteString(" ")
		b.WriteString(parser.FaceSeparator())
		b.WriteString(" ")
		b.WriteString(row.back)
		if row.backImage != "" {
			b.WriteString(parser.PinToken())
			b.WriteString(row.backImage)
		}
	}
	return b.String()
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func fieldNamed(record []string, index map[string]int, column string) string {
	col, ok := index[strings.ToLower(column)]
	if !ok {
		return ""
	}
	return field(record, col)
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
