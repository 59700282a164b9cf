package flowspace

import "testing"

func TestAccumulateRelation(t *testing.T) {
	tests := []struct {
		name string
		dims []Relation
		want Relation
	}{
		{"all equal", []Relation{RelEqual, RelEqual, RelEqual}, RelEqual},
		{"any none", []Relation{RelEqual, RelNone, RelSubset}, RelNone},
		{"one subset downgrades", []Relation{RelEqual, RelSubset, RelEqual}, RelSubset},
		{"mixed subset and superset collapse to overlap", []Relation{RelSubset, RelSuperset}, RelOverlap},
		{"adjacent with all else equal stays adjacent", []Relation{RelEqual, RelAdjacent, RelEqual}, RelAdjacent},
		{"adjacent with a non-equal dimension becomes none", []Relation{RelSubset, RelAdjacent}, RelNone},
		{"two adjacent dimensions become none even with the rest equal", []Relation{RelAdjacent, RelAdjacent, RelEqual}, RelNone},
		{"two adjacent dimensions with no other dimensions become none", []Relation{RelAdjacent, RelAdjacent}, RelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccumulateRelation(tt.dims); got != tt.want {
				t.Errorf("AccumulateRelation(%v) = %v, want %v", tt.dims, got, tt.want)
			}
		})
	}
}

func TestRegionRelationship(t *testing.T) {
	a := Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}

	if got := a.Relationship(a); got != RelEqual {
		t.Errorf("Relationship(self) = %v, want EQUAL", got)
	}

	narrower := Region{Src: addrRng(2, 5), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	if got := a.Relationship(narrower); got != RelSuperset {
		t.Errorf("Relationship(superset) = %v, want SUPERSET", got)
	}
	if got := narrower.Relationship(a); got != RelSubset {
		t.Errorf("Relationship(subset) = %v, want SUBSET", got)
	}

	disjointProto := Region{Src: addrRng(1, 10), Dst: addrRng(1, 10), Proto: protoRng(ProtocolUDP, ProtocolUDP)}
	if got := a.Relationship(disjointProto); got != RelNone {
		t.Errorf("Relationship(disjoint protocol) = %v, want NONE", got)
	}

	overlapping := Region{Src: addrRng(5, 15), Dst: addrRng(1, 10), Proto: protoRng(ProtocolTCP, ProtocolTCP)}
	if got := a.Relationship(overlapping); got != RelOverlap {
		t.Errorf("Relationship(overlapping src) = %v, want OVERLAP", got)
	}
}
