package question

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

var renumberPattern = regexp.MustCompile(`T-\d{3}\b`)

// DecodeLegacyText returns b as UTF-8, falling back to Shift_JIS for files
// saved by older spreadsheet tools.
func DecodeLegacyText(b []byte) (string, string, error) {
	if utf8.Valid(b) {
		return string(b), "utf-8", nil
	}
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", "", fmt.Errorf("decode shift_jis: %w", err)
	}
	return string(out), "shift_jis", nil
}

// RenumberIDs rewrites the first T-nnn id on every line after the header to
// a running T-001, T-002, ... sequence. Lines without an id are kept as is.
// It returns the rewritten text (always newline terminated) and the number
// of ids assigned.
func RenumberIDs(text string) (string, int, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return "", 0, ErrEmptySource
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[0])
	n := 0
	for _, line := range lines[1:] {
		loc := renumberPattern.FindStringIndex(line)
		if loc == nil {
			out = append(out, line)
			continue
		}
		n++
		out = append(out, line[:loc[0]]+fmt.Sprintf("T-%03d", n)+line[loc[1]:])
	}
	return strings.Join(out, "\n") + "\n", n, nil
}

// splitLines splits on LF, CR and CRLF without keeping a trailing empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
