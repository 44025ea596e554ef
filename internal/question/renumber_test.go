package question

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestRenumberIDs(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		count int
	}{
		{
			name:  "renumbers sequentially",
			in:    "id,prompt,answer\nT-005,a,b\nT-002,c,d\n",
			want:  "id,prompt,answer\nT-001,a,b\nT-002,c,d\n",
			count: 2,
		},
		{
			name:  "lines without ids are kept and not counted",
			in:    "id,prompt,answer\nT-010,a,b\n,note,\nT-011,c,d\n",
			want:  "id,prompt,answer\nT-001,a,b\n,note,\nT-002,c,d\n",
			count: 2,
		},
		{
			name:  "only first id on a line",
			in:    "id,prompt,answer\nT-100,see T-200,x\n",
			want:  "id,prompt,answer\nT-001,see T-200,x\n",
			count: 1,
		},
		{
			name:  "header untouched",
			in:    "T-999 header\nT-050,a,b",
			want:  "T-999 header\nT-001,a,b\n",
			count: 1,
		},
		{
			name:  "crlf normalized",
			in:    "id,prompt\r\nT-007,a\r\n",
			want:  "id,prompt\nT-001,a\n",
			count: 1,
		},
		{
			name:  "four digits do not match",
			in:    "id\nT-0001\n",
			want:  "id\nT-0001\n",
			count: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := RenumberIDs(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want || n != tc.count {
				t.Fatalf("RenumberIDs = (%q, %d), want (%q, %d)", got, n, tc.want, tc.count)
			}
		})
	}
}

func TestRenumberIDsEmpty(t *testing.T) {
	if _, _, err := RenumberIDs(""); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

func TestDecodeLegacyText(t *testing.T) {
	text, enc, err := DecodeLegacyText([]byte("id,prompt\n"))
	if err != nil || enc != "utf-8" || text != "id,prompt\n" {
		t.Fatalf("utf-8 decode got (%q, %q, %v)", text, enc, err)
	}

	sjis, err := japanese.ShiftJIS.NewEncoder().String("テスト")
	if err != nil {
		t.Fatalf("encode shift_jis: %v", err)
	}
	text, enc, err = DecodeLegacyText([]byte(sjis))
	if err != nil {
		t.Fatalf("decode shift_jis: %v", err)
	}
	if enc != "shift_jis" || text != "テスト" {
		t.Fatalf("shift_jis decode got (%q, %q)", text, enc)
	}
}
