package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/refundtrack/internal/encoding"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

// Parser reads tracking spreadsheet CSV exports and produces product params.
// The delimiter and the column layout are detected from the file.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	comma := DetectComma(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching sheet layout found: expected Item, Order Date, Paid and Received columns")
	}

	return parseRows(profile, cols, comma, rows[headerIdx+1:]), nil
}

// DetectComma picks the candidate delimiter seen most often in the first lines.
func DetectComma(data []byte) rune {
	const sniffLines = 10

	lines := bytes.SplitN(data, []byte("\n"), sniffLines+1)
	if len(lines) > sniffLines {
		lines = lines[:sniffLines]
	}

	head := bytes.Join(lines, nil)
	best, bestCount := ',', 0

	for _, c := range []rune{',', ';', '\t'} {
		if n := bytes.Count(head, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}

	return best
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) find(name string) (int, bool) {
	if name == "" {
		return -1, false
	}

	i, ok := c[strings.ToLower(name)]

	return i, ok
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols.find(name); !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into params. Rows without an item name are
// skipped; bad dates and amounts are read as absent.
func parseRows(p *Profile, cols colIndex, comma rune, rows [][]string) []product.CreateParams {
	var out []product.CreateParams

	for _, row := range rows {
		item := cell(row, cols, p.ItemCol)
		if item == "" {
			continue
		}

		params := product.CreateParams{
			Item:      item,
			URL:       cell(row, cols, p.URLCol),
			OrderDate: product.ParseDate(cell(row, cols, p.DateCol)),
			Paid:      parseAmount(comma, cell(row, cols, p.PaidCol)),
			Received:  parseAmount(comma, cell(row, cols, p.ReceivedCol)),
		}

		for _, stage := range product.Stages {
			if _, ok := cols.find(p.StageCols[stage]); !ok {
				continue
			}

			params.Edits = append(params.Edits, product.SetStage{
				Stage: stage,
				Done:  parseBool(cell(row, cols, p.StageCols[stage])),
			})
		}

		if parseBool(cell(row, cols, p.VoidCol)) {
			params.Edits = append(params.Edits, product.MarkVoid{})
		}

		out = append(out, params)
	}

	return out
}

// parseAmount reads a money cell. Semicolon-separated sheets come from
// locales that write decimal commas, so there a comma after the last dot
// marks the decimal part. "$8.00" in the same file still reads as dot decimal.
func parseAmount(comma rune, s string) decimal.NullDecimal {
	if comma == ';' && strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
		return product.ParseCommaAmount(s)
	}

	return product.ParseAmount(s)
}

// cell safely gets a trimmed cell value for the named column.
func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols.find(name)
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseBool reads checkbox-style cells. Anything unrecognised is false.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "x", "1", "✓", "✔", "done":
		return true
	}

	return false
}
