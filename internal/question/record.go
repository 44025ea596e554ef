package question

import (
	"strings"
	"unicode"

	"vocabquiz/internal/answer"
)

const (
	FieldID         = "id"
	FieldPrompt     = "prompt"
	FieldAnswer     = "answer"
	FieldUnit       = "unit"
	FieldAltAnswers = "alt_answers"
)

// RequiredFields must be non-blank for a record to be usable.
var RequiredFields = []string{FieldID, FieldPrompt, FieldAnswer}

// Record is one question row keyed by CSV header. Values are never coerced;
// columns beyond the recognized ones are carried along untouched.
type Record map[string]string

func (r Record) ID() string         { return r[FieldID] }
func (r Record) Prompt() string     { return r[FieldPrompt] }
func (r Record) Answer() string     { return r[FieldAnswer] }
func (r Record) Unit() string       { return r[FieldUnit] }
func (r Record) AltAnswers() string { return r[FieldAltAnswers] }

// Complete reports whether id, prompt and answer are all non-blank.
func (r Record) Complete() bool {
	for _, f := range RequiredFields {
		if trimCell(r[f]) == "" {
			return false
		}
	}
	return true
}

// Accepted is the normalized answer set, computed on every call.
func (r Record) Accepted() answer.Set {
	return answer.Accepted(r.Answer(), r.AltAnswers())
}

func (r Record) IsCorrect(input string) bool {
	return r.Accepted().Contains(input)
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll copies every record so callers can never reach into a shared
// snapshot.
func CloneAll(items []Record) []Record {
	out := make([]Record, len(items))
	for i, r := range items {
		out[i] = r.Clone()
	}
	return out
}

// Filter keeps complete records in their original order.
func Filter(items []Record) []Record {
	out := make([]Record, 0, len(items))
	for _, r := range items {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

// MissingRequired inspects only the first record's keys. An empty input
// reports every required field as missing.
func MissingRequired(items []Record) []string {
	missing := make([]string, 0)
	for _, f := range RequiredFields {
		if len(items) == 0 {
			missing = append(missing, f)
			continue
		}
		if _, ok := items[0][f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func trimCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
