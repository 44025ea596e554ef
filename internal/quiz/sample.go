package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"vocabquiz/internal/question"
)

// AllKeyword requests every record in shuffled order.
const AllKeyword = "all"

// DefaultCount applies when no count preference was ever saved.
const DefaultCount = "10"

// Count is a requested number of questions. The zero value asks for none.
type Count struct {
	all bool
	n   int
}

var All = Count{all: true}

func N(n int) Count {
	if n < 0 {
		n = 0
	}
	return Count{n: n}
}

// ParseCount accepts "all" or a number. Fractions truncate, negatives and
// non-numbers become 0, and huge values are clamped later by Sample.
func ParseCount(raw string) Count {
	raw = strings.TrimSpace(raw)
	if raw == AllKeyword {
		return All
	}
	if raw == "" {
		return N(0)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return N(0)
	}
	if f >= math.MaxInt32 {
		return N(math.MaxInt32)
	}
	return N(int(f))
}

// CountOrDefault parses raw, falling back to def when raw is blank.
func CountOrDefault(raw, def string) Count {
	if strings.TrimSpace(raw) == "" {
		raw = def
	}
	return ParseCount(raw)
}

// CountFromValue interprets a decoded JSON settings value.
func CountFromValue(v any, def string) Count {
	switch t := v.(type) {
	case nil:
		return ParseCount(def)
	case string:
		return CountOrDefault(t, def)
	case float64:
		return ParseCount(strconv.FormatFloat(t, 'f', -1, 64))
	case json.Number:
		return ParseCount(t.String())
	default:
		return ParseCount(fmt.Sprint(t))
	}
}

func (c Count) IsAll() bool { return c.all }

func (c Count) String() string {
	if c.all {
		return AllKeyword
	}
	return strconv.Itoa(c.n)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if c.all {
		return json.Marshal(AllKeyword)
	}
	return json.Marshal(c.n)
}

func (c *Count) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = CountFromValue(v, "0")
	return nil
}

// Rand is the random source used for shuffling.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Sample draws records without replacement using the global source.
func Sample(records []question.Record, n Count) []question.Record {
	return SampleWith(globalRand{}, records, n)
}

// SampleWith performs a Fisher-Yates shuffle on a copy of records and keeps
// the first n. The input slice is never reordered.
func SampleWith(rng Rand, records []question.Record, n Count) []question.Record {
	a := slices.Clone(records)
	if a == nil {
		a = []question.Record{}
	}
	for i := len(a) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
	if n.all {
		return a
	}
	k := max(0, min(n.n, len(a)))
	return a[:k]
}
