package search

import (
	"testing"

	"github.com/patseek/patseek/internal/index"
)

func TestParseDefaults(t *testing.T) {
	q := Parse("quantum radar")
	if q.Verbose || q.AndMode || q.PhraseMode {
		t.Errorf("plain query set mode flags: %+v", q)
	}
	if len(q.Fields) != 3 {
		t.Errorf("Fields = %v, want all three", q.Fields)
	}
	if q.Text != "quantum radar" {
		t.Errorf("Text = %q", q.Text)
	}
	if len(q.InvalidTags) != 0 {
		t.Errorf("InvalidTags = %v", q.InvalidTags)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input   string
		verbose bool
		and     bool
		phrase  bool
		text    string
	}{
		{"[VERBOSE] foo", true, false, false, "foo"},
		{"[V] foo", true, false, false, "foo"},
		{"[AND] alpha beta", false, true, false, "alpha beta"},
		{"[A] alpha beta", false, true, false, "alpha beta"},
		{"[PHRASE] quick brown", false, false, true, "quick brown"},
		{"[P] quick brown", false, false, true, "quick brown"},
		{"[v][a] x", true, true, false, "x"},
		{"[AND] [VERBOSE] y", true, true, false, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q := Parse(tt.input)
			if q.Verbose != tt.verbose || q.AndMode != tt.and || q.PhraseMode != tt.phrase {
				t.Errorf("flags = v:%v a:%v p:%v", q.Verbose, q.AndMode, q.PhraseMode)
			}
			if q.Text != tt.text {
				t.Errorf("Text = %q, want %q", q.Text, tt.text)
			}
		})
	}
}

func TestParseFieldTags(t *testing.T) {
	q := Parse("[FIELD=A] quantum")
	if len(q.Fields) != 1 || q.Fields[0] != index.FieldAbstract {
		t.Errorf("Fields = %v, want [A]", q.Fields)
	}

	// Repeatable; union; canonical order regardless of tag order.
	q = Parse("[FIELD=C][FIELD=T] quantum")
	if len(q.Fields) != 2 || q.Fields[0] != index.FieldTitle || q.Fields[1] != index.FieldClaims {
		t.Errorf("Fields = %v, want [T C]", q.Fields)
	}

	// Duplicates collapse.
	q = Parse("[FIELD=T][FIELD=T] x")
	if len(q.Fields) != 1 {
		t.Errorf("Fields = %v, want [T]", q.Fields)
	}
}

func TestParseInvalidTags(t *testing.T) {
	// Bare short field tags are invalid; [A] means AND, never a field.
	q := Parse("[T] quantum")
	if len(q.InvalidTags) != 1 || q.InvalidTags[0] != "T" {
		t.Errorf("InvalidTags = %v, want [T]", q.InvalidTags)
	}
	if err := q.Validate(); err == nil {
		t.Error("bare [T] must be rejected")
	}

	q = Parse("[BOGUS] x")
	if err := q.Validate(); err == nil {
		t.Error("unknown tag must be rejected")
	}
}

func TestValidatePhraseAndConflict(t *testing.T) {
	q := Parse("[AND][PHRASE] foo")
	if err := q.Validate(); err == nil {
		t.Error("[AND][PHRASE] must be rejected")
	}
	q = Parse("[P][A] foo")
	if err := q.Validate(); err == nil {
		t.Error("[P][A] must be rejected")
	}
}

func TestValidatePhraseFieldRestriction(t *testing.T) {
	if err := Parse("[PHRASE][FIELD=A] foo").Validate(); err == nil {
		t.Error("[PHRASE] with FIELD=A must be rejected")
	}
	if err := Parse("[PHRASE][FIELD=C] foo").Validate(); err == nil {
		t.Error("[PHRASE] with FIELD=C must be rejected")
	}
	// FIELD=T is the phrase field itself and is fine.
	if err := Parse("[PHRASE][FIELD=T] foo").Validate(); err != nil {
		t.Errorf("[PHRASE][FIELD=T] should validate, got %v", err)
	}
	// No field tag at all is fine too.
	if err := Parse("[PHRASE] foo").Validate(); err != nil {
		t.Errorf("[PHRASE] should validate, got %v", err)
	}
}

func TestActiveFieldsPhraseForcesTitle(t *testing.T) {
	q := Parse("[PHRASE] foo")
	fields := q.ActiveFields()
	if len(fields) != 1 || fields[0] != index.FieldTitle {
		t.Errorf("ActiveFields() = %v, want [T]", fields)
	}
}

func TestParseEmptyBody(t *testing.T) {
	q := Parse("[V]")
	if q.Text != "" {
		t.Errorf("Text = %q, want empty", q.Text)
	}
	if err := q.Validate(); err != nil {
		t.Errorf("empty body is not a validation error, got %v", err)
	}
}
