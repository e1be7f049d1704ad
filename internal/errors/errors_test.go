package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIndexErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewIndexError("write", "/idx/postings.bin", cause)

	if !strings.Contains(err.Error(), "write") || !strings.Contains(err.Error(), "postings.bin") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("IndexError should unwrap to its cause")
	}
}

func TestQueryError(t *testing.T) {
	err := NewQueryError("[AND][PHRASE] x", "[PHRASE] and [AND] cannot be combined")
	if !strings.Contains(err.Error(), "cannot be combined") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCorruptIndexErrorNamesOffset(t *testing.T) {
	err := NewCorruptIndexError(1024, 80, 32)
	msg := err.Error()
	for _, want := range []string{"1024", "80", "32"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestGetUserFriendlyMessage(t *testing.T) {
	qe := NewQueryError("x", "bad tag")
	if msg := GetUserFriendlyMessage(qe); !strings.Contains(msg, "bad tag") {
		t.Errorf("message = %q", msg)
	}

	ce := NewCorruptIndexError(16, 8, 0)
	if msg := GetUserFriendlyMessage(ce); !strings.Contains(msg, "16") {
		t.Errorf("message = %q", msg)
	}

	plain := fmt.Errorf("something else")
	if msg := GetUserFriendlyMessage(plain); msg != "something else" {
		t.Errorf("message = %q", msg)
	}
}
