package answer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "ascii trimmed lowered", in: "  Hello World \n", want: "hello world"},
		{name: "fullwidth letters and digits", in: "Ｔｅｓｔ　１２３", want: "test 123"},
		{name: "fullwidth punctuation", in: "ＣＯ２！～", want: "co2!~"},
		{name: "ideographic space trimmed", in: "　ｘ　", want: "x"},
		{name: "katakana untouched", in: "カタカナ", want: "カタカナ"},
		{name: "halfwidth katakana untouched", in: "ｶﾀｶﾅ", want: "ｶﾀｶﾅ"},
		{name: "inner whitespace kept", in: "a  b", want: "a  b"},
		{name: "bom trimmed", in: "\ufeffword", want: "word"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Ｔｅｓｔ　１２３", "ÀÉÎ", "İstanbul", "ＡＢＣ　ｄｅｆ", "光合成", "\t Mixed Ｃａｓｅ \r\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeWidthAndCaseInsensitive(t *testing.T) {
	if Normalize("Ｔｅｓｔ　１２３") != Normalize("test 123") {
		t.Fatalf("expected full-width and half-width forms to normalize equally")
	}
}

func TestNormalizePtr(t *testing.T) {
	if got := NormalizePtr(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
	s := " ＯＫ "
	if got := NormalizePtr(&s); got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
}
