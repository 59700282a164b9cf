package flowspace

import (
	"errors"
	"testing"
)

func TestLexiconBuilderRegisterAndLookup(t *testing.T) {
	b := NewLexiconBuilder()
	if err := b.Register(1, "ONE", "UNO"); err != nil {
		t.Fatal(err)
	}
	l := b.Build()

	if name, ok := l.Name(1); !ok || name != "ONE" {
		t.Errorf("Name(1) = %q, %v, want %q, true", name, ok, "ONE")
	}
	for _, alias := range []string{"one", "ONE", "uno", "UnO"} {
		if v, ok := l.Value(alias); !ok || v != 1 {
			t.Errorf("Value(%q) = %v, %v, want 1, true", alias, v, ok)
		}
	}
}

func TestLexiconBuilderConflict(t *testing.T) {
	b := NewLexiconBuilder()
	if err := b.Register(1, "ONE"); err != nil {
		t.Fatal(err)
	}
	err := b.Register(2, "ONE")
	if !errors.Is(err, ErrLexiconConflict) {
		t.Fatalf("Register() error = %v, want wrapping ErrLexiconConflict", err)
	}
}

func TestLexiconNilSafe(t *testing.T) {
	var l *Lexicon
	if _, ok := l.Name(1); ok {
		t.Error("nil Lexicon.Name should report not-found")
	}
	if _, ok := l.Value("x"); ok {
		t.Error("nil Lexicon.Value should report not-found")
	}
	if names := l.Names(1); names != nil {
		t.Errorf("nil Lexicon.Names = %v, want nil", names)
	}
}

func TestDefaultLexiconsPrimaryNames(t *testing.T) {
	if name, ok := DefaultProtocolLexicon.Name(6); !ok || name != "TCP" {
		t.Errorf("protocol 6 = %q, %v, want TCP, true", name, ok)
	}
	if name, ok := DefaultPortLexicon.Name(443); !ok || name != "HTTPS" {
		t.Errorf("port 443 = %q, %v, want HTTPS, true", name, ok)
	}
	if name, ok := DefaultIcmpLexicon.Name(8); !ok || name != "ECHO" {
		t.Errorf("icmp type 8 = %q, %v, want ECHO, true", name, ok)
	}
}
