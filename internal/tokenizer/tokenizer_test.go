package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases latin",
			text: "Quantum RADAR",
			want: []string{"quantum", "radar"},
		},
		{
			name: "strips punctuation",
			text: "signal-processing, (claims)!",
			want: []string{"signal", "processing", "claims"},
		},
		{
			name: "keeps numbers",
			text: "claim 1",
			want: []string{"claim", "1"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "punctuation only",
			text: "... ---",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	text := "Network protocol for quantum entanglement key distribution"
	first := Tokenize(text)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(Tokenize(text), first) {
			t.Fatal("Tokenize is not deterministic")
		}
	}
}

func TestTokenizeNoEmptyTokens(t *testing.T) {
	for _, text := range []string{"a  b", " leading", "trailing ", "--x--"} {
		for _, term := range Tokenize(text) {
			if term == "" {
				t.Errorf("Tokenize(%q) emitted an empty token", text)
			}
		}
	}
}

func TestTokenizeCounts(t *testing.T) {
	freqs, total := TokenizeCounts("alpha beta alpha")
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if freqs["alpha"] != 2 || freqs["beta"] != 1 {
		t.Errorf("freqs = %v, want alpha:2 beta:1", freqs)
	}

	freqs, total = TokenizeCounts("")
	if total != 0 || freqs != nil {
		t.Errorf("empty text: freqs=%v total=%d, want nil/0", freqs, total)
	}
}
