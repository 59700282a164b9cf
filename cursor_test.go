package flowspace

import "testing"

func TestCursorZeroValueExhausted(t *testing.T) {
	var c Cursor[string]
	if c.Valid() {
		t.Error("zero-value Cursor should not be Valid")
	}
	if c.Next() {
		t.Error("zero-value Cursor.Next() should report false")
	}
}

func TestCursorWalksMatches(t *testing.T) {
	fs := NewFlowSpace[string]()
	fs.Insert(Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "a")
	fs.Insert(Region{Src: addrRng(20, 30), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "b")

	query := Region{Src: addrRng(0, 100), Dst: addrRng(0, 100), Proto: protoRng(Protocol(0), ProtocolIP)}
	c := Begin(fs, query)

	var got []string
	for c.Next() {
		got = append(got, c.Value())
	}
	if len(got) != 2 {
		t.Fatalf("cursor visited %v, want 2 entries", got)
	}
}

func TestCursorSetValueWritesThrough(t *testing.T) {
	fs := NewFlowSpace[string]()
	region := Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	fs.Insert(region, "a")

	c := Begin(fs, region)
	if !c.Next() {
		t.Fatal("expected one match")
	}
	c.SetValue("changed")
	if got := c.Value(); got != "changed" {
		t.Errorf("cursor value after SetValue = %q, want %q", got, "changed")
	}

	got, ok := fs.Find(region, func(string) bool { return true })
	if !ok || got != "changed" {
		t.Errorf("underlying store = %q, %v, want %q, true", got, ok, "changed")
	}
}
