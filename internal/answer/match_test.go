package answer

import (
	"reflect"
	"testing"
)

func TestSplitAlternates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "blank", in: "   ", want: nil},
		{name: "single", in: "CO2", want: []string{"CO2"}},
		{name: "trims and drops empties", in: " a || b |  ", want: []string{"a", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitAlternates(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitAlternates(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAccepted(t *testing.T) {
	set := Accepted("Photosynthesis", "光合成 | ＰＨＯＴＯ synthesis||")
	want := []string{"photo synthesis", "photosynthesis", "光合成"}
	if got := set.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("accepted mismatch got=%v want=%v", got, want)
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		alts    string
		input   string
		want    bool
	}{
		{name: "exact", primary: "mitochondria", input: "mitochondria", want: true},
		{name: "case and spaces", primary: "Mitochondria", input: "  MITOCHONDRIA ", want: true},
		{name: "fullwidth input", primary: "CPU", input: "ｃｐｕ", want: true},
		{name: "alternate", primary: "carbon dioxide", alts: "CO2|二酸化炭素", input: "co2", want: true},
		{name: "second alternate", primary: "carbon dioxide", alts: "CO2|二酸化炭素", input: "二酸化炭素", want: true},
		{name: "wrong", primary: "carbon dioxide", alts: "CO2", input: "oxygen", want: false},
		{name: "empty input", primary: "cell", input: "", want: false},
		{name: "whitespace input", primary: "cell", input: "  　 ", want: false},
		{name: "near miss is wrong", primary: "nucleus", input: "nucleu", want: false},
		{name: "empty alternate never matches blank", primary: "cell", alts: "||", input: " ", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(tc.primary, tc.alts, tc.input); got != tc.want {
				t.Fatalf("IsCorrect(%q, %q, %q) = %v, want %v", tc.primary, tc.alts, tc.input, got, tc.want)
			}
		})
	}
}
