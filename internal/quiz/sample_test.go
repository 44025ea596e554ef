package quiz

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"vocabquiz/internal/question"
)

func makeRecords(n int) []question.Record {
	out := make([]question.Record, 0, n)
	for i := range n {
		id := string(rune('a' + i))
		out = append(out, question.Record{"id": id, "prompt": "p" + id, "answer": "a" + id})
	}
	return out
}

func ids(items []question.Record) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID())
	}
	return out
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		raw  string
		want Count
	}{
		{"all", All},
		{"5", N(5)},
		{" 7 ", N(7)},
		{"12.7", N(12)},
		{"-3", N(0)},
		{"abc", N(0)},
		{"", N(0)},
		{"1e3", N(1000)},
		{"Infinity", N(math.MaxInt32)},
		{"ALL", N(0)},
	}
	for _, tc := range cases {
		if got := ParseCount(tc.raw); got != tc.want {
			t.Fatalf("ParseCount(%q): expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestCountFromValue(t *testing.T) {
	if got := CountFromValue(nil, "10"); got != N(10) {
		t.Fatalf("nil: expected default 10, got %v", got)
	}
	if got := CountFromValue("", "10"); got != N(10) {
		t.Fatalf("blank: expected default 10, got %v", got)
	}
	if got := CountFromValue(float64(20), "10"); got != N(20) {
		t.Fatalf("number: expected 20, got %v", got)
	}
	if got := CountFromValue("all", "10"); !got.IsAll() {
		t.Fatalf("expected all, got %v", got)
	}
}

func TestCountJSON(t *testing.T) {
	var req struct {
		A Count `json:"a"`
		B Count `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"all","b":5}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.A.IsAll() || req.B != N(5) {
		t.Fatalf("unexpected counts: %+v", req)
	}

	out, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":"all","b":5}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestSampleAllIsPermutation(t *testing.T) {
	in := makeRecords(10)
	before := ids(in)

	got := SampleWith(rand.New(rand.NewPCG(1, 2)), in, All)
	if len(got) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(got))
	}
	gotIDs := ids(got)
	slices.Sort(gotIDs)
	if !slices.Equal(gotIDs, before) {
		t.Fatalf("expected permutation of %v, got %v", before, gotIDs)
	}
	if !slices.Equal(ids(in), before) {
		t.Fatalf("input order changed: %v", ids(in))
	}
}

func TestSampleCounts(t *testing.T) {
	in := makeRecords(10)
	rng := rand.New(rand.NewPCG(7, 7))

	five := SampleWith(rng, in, N(5))
	if len(five) != 5 {
		t.Fatalf("expected 5 records, got %d", len(five))
	}
	seen := map[string]bool{}
	for _, id := range ids(five) {
		if seen[id] {
			t.Fatalf("duplicate record %s in %v", id, ids(five))
		}
		seen[id] = true
	}

	if got := SampleWith(rng, in, N(999)); len(got) != 10 {
		t.Fatalf("expected clamp to 10, got %d", len(got))
	}
	if got := SampleWith(rng, in, N(0)); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil sample, got %v", got)
	}
	if got := SampleWith(rng, nil, All); got == nil || len(got) != 0 {
		t.Fatalf("expected empty sample from empty input, got %v", got)
	}
}

func TestSampleIsRoughlyUniform(t *testing.T) {
	in := makeRecords(3)
	rng := rand.New(rand.NewPCG(42, 99))
	first := map[string]int{}
	const trials = 3000
	for range trials {
		first[SampleWith(rng, in, N(1))[0].ID()]++
	}
	for _, id := range []string{"a", "b", "c"} {
		if n := first[id]; n < 800 || n > 1200 {
			t.Fatalf("record %s drawn first %d/%d times", id, n, trials)
		}
	}
}
