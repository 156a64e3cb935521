package crypto

import (
	"strings"
	"testing"
)

func TestContentHashKnownValue(t *testing.T) {
	// SHA-256 of the literal string "secret".
	want := "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"

	got := ContentHash("secret")
	if got != want {
		t.Errorf("ContentHash(\"secret\") = %q, want %q", got, want)
	}
}

func TestContentHashDeterministic(t *testing.T) {
	if ContentHash("payload") != ContentHash("payload") {
		t.Error("ContentHash() not deterministic for identical input")
	}
	if ContentHash("payload") == ContentHash("payload2") {
		t.Error("ContentHash() identical digests for different input")
	}
}

func TestNewTxIDFormat(t *testing.T) {
	id, err := NewTxID()
	if err != nil {
		t.Fatalf("NewTxID() unexpected error: %v", err)
	}

	if !strings.HasPrefix(id, "tx_") {
		t.Fatalf("NewTxID() = %q, want tx_ prefix", id)
	}

	token := strings.TrimPrefix(id, "tx_")
	if token == "" {
		t.Fatal("NewTxID() returned empty token")
	}
	for _, c := range token {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z') {
			t.Errorf("NewTxID() token %q contains non-base36 character %q", token, c)
		}
	}
}

func TestNewTxIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewTxID()
		if err != nil {
			t.Fatalf("NewTxID() unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("NewTxID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}
