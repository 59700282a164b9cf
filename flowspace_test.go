package flowspace

import "testing"

func addrRng(lo, hi uint32) Interval[Addr] { return NewInterval(Addr(lo), Addr(hi)) }

func protoRng(lo, hi Protocol) Interval[Protocol] { return NewInterval(lo, hi) }

func TestFlowSpaceInsertFind(t *testing.T) {
	fs := NewFlowSpace[string]()
	region := Region{Src: addrRng(1, 10), Dst: addrRng(100, 200), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	fs.Insert(region, "rule-a")

	got, ok := fs.Find(region, func(string) bool { return true })
	if !ok || got != "rule-a" {
		t.Fatalf("Find() = %q, %v, want %q, true", got, ok, "rule-a")
	}
}

func TestFlowSpaceFindMissing(t *testing.T) {
	fs := NewFlowSpace[string]()
	fs.Insert(Region{Src: addrRng(1, 10), Dst: addrRng(100, 200), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "rule-a")

	_, ok := fs.Find(Region{Src: addrRng(1, 10), Dst: addrRng(100, 200), Proto: protoRng(ProtocolUDP, ProtocolUDP)}, func(string) bool { return true })
	if ok {
		t.Fatal("Find() found a region that was never inserted")
	}
}

func TestFlowSpaceEraseAndPrune(t *testing.T) {
	fs := NewFlowSpace[string]()
	region := Region{Src: addrRng(1, 10), Dst: addrRng(100, 200), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	fs.Insert(region, "rule-a")

	if !fs.Erase(region, func(string) bool { return true }) {
		t.Fatal("Erase() reported no match")
	}
	if fs.top.Len() != 0 {
		t.Errorf("top layer has %d entries after erasing the only region, want 0 (empty sub-layers should prune)", fs.top.Len())
	}
	if _, ok := fs.Find(region, func(string) bool { return true }); ok {
		t.Fatal("Find() still sees an erased region")
	}
}

func TestFlowSpaceEraseMatchGuard(t *testing.T) {
	fs := NewFlowSpace[string]()
	region := Region{Src: addrRng(1, 10), Dst: addrRng(100, 200), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	fs.Insert(region, "rule-a")

	if fs.Erase(region, func(v string) bool { return v == "rule-b" }) {
		t.Fatal("Erase() removed an entry that failed match")
	}
	if _, ok := fs.Find(region, func(string) bool { return true }); !ok {
		t.Fatal("entry disappeared despite a failing match predicate")
	}
}

func TestFlowSpaceVisitIntersecting(t *testing.T) {
	fs := NewFlowSpace[string]()
	fs.Insert(Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "a")
	fs.Insert(Region{Src: addrRng(20, 30), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "b")
	fs.Insert(Region{Src: addrRng(5, 15), Dst: addrRng(1, 10), Proto: protoRng(ProtocolUDP, ProtocolUDP)}, "c")

	query := Region{Src: addrRng(0, 12), Dst: addrRng(0, 100), Proto: protoRng(Protocol(0), ProtocolIP)}
	var got []string
	fs.VisitIntersecting(query, func(_ Region, v *string) bool {
		got = append(got, *v)
		return true
	})

	if len(got) != 2 {
		t.Fatalf("VisitIntersecting matched %v, want exactly {a, c}", got)
	}
	seen := map[string]bool{}
	for _, v := range got {
		seen[v] = true
	}
	if !seen["a"] || !seen["c"] || seen["b"] {
		t.Errorf("VisitIntersecting matched %v, want exactly {a, c}", got)
	}
}

func TestFlowSpaceVisitIntersectingWritesThrough(t *testing.T) {
	fs := NewFlowSpace[string]()
	region := Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	fs.Insert(region, "a")

	fs.VisitIntersecting(region, func(_ Region, v *string) bool {
		*v = "changed"
		return true
	})

	got, ok := fs.Find(region, func(string) bool { return true })
	if !ok || got != "changed" {
		t.Errorf("Find() after VisitIntersecting write = %q, %v, want %q, true", got, ok, "changed")
	}
}

func TestFlowSpaceVisitIntersectingEarlyStop(t *testing.T) {
	fs := NewFlowSpace[string]()
	fs.Insert(Region{Src: addrRng(1, 1), Dst: addrRng(1, 1), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "a")
	fs.Insert(Region{Src: addrRng(2, 2), Dst: addrRng(1, 1), Proto: protoRng(ProtocolTCP, ProtocolTCP)}, "b")

	query := Region{Src: addrRng(0, 100), Dst: addrRng(0, 100), Proto: protoRng(Protocol(0), ProtocolIP)}
	var count int
	fs.VisitIntersecting(query, func(_ Region, _ *string) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("VisitIntersecting called fn %d times after it returned false, want 1", count)
	}
}
