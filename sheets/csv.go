package sheets

import "strings"

// splitLine splits one CSV line into fields, honoring quoted fields: a quote
// toggles the in-quotes state and a comma inside quotes is literal. This is
// deliberately lenient; sheet exports occasionally contain unbalanced quotes
// and those rows must still split rather than error.
func splitLine(line string) []string {
	fields := []string{}
	var buf strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	fields = append(fields, buf.String())
	return fields
}

// splitRows turns raw delimited text into rows of fields. Blank lines are
// skipped; rows are never rejected here, schema parsers drop what they cannot
// use.
func splitRows(raw string) [][]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	return rows
}
