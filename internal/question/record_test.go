package question

import (
	"reflect"
	"testing"
)

func TestFilterDropsIncomplete(t *testing.T) {
	items := []Record{
		{"id": "1", "prompt": "p", "answer": "a"},
		{"id": "2", "prompt": "", "answer": "a"},
		{"id": "3", "prompt": "p", "answer": "   "},
		{"id": " ", "prompt": "p", "answer": "a"},
		{"prompt": "p", "answer": "a"},
		{"id": "6", "prompt": "p", "answer": "a", "unit": ""},
	}
	got := Filter(items)
	if len(got) != 2 || got[0].ID() != "1" || got[1].ID() != "6" {
		t.Fatalf("unexpected filter result: %v", got)
	}
}

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		items []Record
		want  []string
	}{
		{name: "no records", items: nil, want: []string{"id", "prompt", "answer"}},
		{name: "complete header", items: []Record{{"id": "", "prompt": "", "answer": ""}}, want: []string{}},
		{name: "missing answer", items: []Record{{"id": "1", "prompt": "p"}}, want: []string{"answer"}},
		{name: "only first record inspected", items: []Record{{"id": "1", "prompt": "p", "answer": "a"}, {"x": "y"}}, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MissingRequired(tc.items)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MissingRequired = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestRecordIsCorrect(t *testing.T) {
	rec := Record{"id": "1", "prompt": "p", "answer": "Carbon Dioxide", "alt_answers": "CO2|二酸化炭素"}
	if !rec.IsCorrect("ｃｏ２") {
		t.Fatalf("expected full-width alternate to be correct")
	}
	if !rec.IsCorrect(" carbon dioxide ") {
		t.Fatalf("expected primary answer to be correct")
	}
	if rec.IsCorrect("") {
		t.Fatalf("expected empty input to be wrong")
	}
}

func TestCloneAllIsIndependent(t *testing.T) {
	src := []Record{{"id": "1", "prompt": "p", "answer": "a"}}
	cp := CloneAll(src)
	cp[0]["answer"] = "changed"
	if src[0].Answer() != "a" {
		t.Fatalf("clone shares storage with source")
	}
}
