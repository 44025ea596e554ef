package question

import "strings"

// RawTable is the parser output before header mapping.
type RawTable [][]string

// ParseTable splits text into rows of cells. Double quotes toggle quoting
// wherever they appear; inside quotes a doubled quote is one literal quote
// and commas or line breaks are kept. CR, LF and CRLF all end a row.
// Rows whose cells are all blank are dropped. Parsing never fails: malformed
// quoting yields a best-effort table.
func ParseTable(text string) RawTable {
	var (
		rows     RawTable
		row      []string
		cur      strings.Builder
		inQuotes bool
	)

	// Delimiters are ASCII, so walking bytes never splits a UTF-8 sequence.
	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if !inQuotes && (c == ',' || c == '\n' || c == '\r') {
			if c == ',' {
				row = append(row, cur.String())
				cur.Reset()
				continue
			}
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			row = append(row, cur.String())
			rows = append(rows, row)
			row = nil
			cur.Reset()
			continue
		}

		cur.WriteByte(c)
	}

	if cur.Len() > 0 || len(row) > 0 {
		row = append(row, cur.String())
		rows = append(rows, row)
	}

	return dropBlankRows(rows)
}

func dropBlankRows(rows RawTable) RawTable {
	out := make(RawTable, 0, len(rows))
	for _, r := range rows {
		if !isBlankRow(r) {
			out = append(out, r)
		}
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if trimCell(c) != "" {
			return false
		}
	}
	return true
}

// Records maps every row after the header onto the trimmed header names.
// Missing trailing cells become "", extra cells are ignored.
func Records(table RawTable) []Record {
	if len(table) == 0 {
		return []Record{}
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = trimCell(h)
	}

	out := make([]Record, 0, len(table)-1)
	for _, row := range table[1:] {
		rec := make(Record, len(header))
		for i, h := range header {
			v := ""
			if i < len(row) {
				v = trimCell(row[i])
			}
			rec[h] = v
		}
		out = append(out, rec)
	}
	return out
}

// Parse is ParseTable followed by Records.
func Parse(text string) []Record {
	return Records(ParseTable(text))
}
