package flowspace

// AccumulateRelation combines the per-dimension Relation verdicts of an
// N-dimensional box comparison into a single verdict: the result
// starts at EQUAL; any dimension may downgrade it. A
// NONE dimension makes the whole NONE. An ADJACENT dimension makes the
// whole NONE unless every other dimension is EQUAL, in which case the
// whole is ADJACENT — so two or more ADJACENT dimensions always make
// the whole NONE, since neither can be "every other dimension" for the
// other. Otherwise the weakest non-trivial verdict wins, with mixed
// SUBSET/SUPERSET collapsing to OVERLAP.
func AccumulateRelation(dims []Relation) Relation {
	result := RelEqual
	adjacentCount := 0
	for _, r := range dims {
		switch r {
		case RelNone:
			return RelNone
		case RelAdjacent:
			adjacentCount++
		case RelEqual:
			// no downgrade
		default:
			switch result {
			case RelEqual:
				result = r
			case r:
				// same non-trivial verdict already recorded
			default:
				result = RelOverlap
			}
		}
	}
	if adjacentCount > 0 {
		if adjacentCount == 1 && result == RelEqual {
			return RelAdjacent
		}
		return RelNone
	}
	return result
}
