package flowspace

import "fmt"

// Interval is a closed, inclusive range [Lo, Hi] over a Metric. The
// canonical empty interval has Lo == the metric's Max and Hi == its
// Min, so IsEmpty is exactly "Lo > Hi." Operations return new values;
// no method mutates its receiver or argument.
type Interval[T Metric[T]] struct {
	Lo, Hi T
}

// NewInterval builds the interval [lo, hi]. If lo > hi the result is
// the canonical empty interval, not [lo, hi] itself — callers that need
// to detect an inverted-bounds error should compare lo and hi first.
func NewInterval[T Metric[T]](lo, hi T) Interval[T] {
	if lo.Compare(hi) > 0 {
		return EmptyInterval[T]()
	}
	return Interval[T]{Lo: lo, Hi: hi}
}

// Point builds the single-value interval [v, v].
func Point[T Metric[T]](v T) Interval[T] { return Interval[T]{Lo: v, Hi: v} }

// EmptyInterval returns the canonical empty interval for T.
func EmptyInterval[T Metric[T]]() Interval[T] {
	var zero T
	return Interval[T]{Lo: zero.Max(), Hi: zero.Min()}
}

// All returns the interval spanning the metric's entire domain.
func All[T Metric[T]]() Interval[T] {
	var zero T
	return Interval[T]{Lo: zero.Min(), Hi: zero.Max()}
}

// IsEmpty reports whether iv contains no values.
func (iv Interval[T]) IsEmpty() bool { return iv.Lo.Compare(iv.Hi) > 0 }

// String renders iv as "[lo, hi]", or "{}" if empty.
func (iv Interval[T]) String() string {
	if iv.IsEmpty() {
		return "{}"
	}
	return fmt.Sprintf("[%v, %v]", iv.Lo, iv.Hi)
}

// Equal reports whether iv and other denote the same set of values.
func (iv Interval[T]) Equal(other Interval[T]) bool {
	if iv.IsEmpty() && other.IsEmpty() {
		return true
	}
	return iv.Lo.Compare(other.Lo) == 0 && iv.Hi.Compare(other.Hi) == 0
}

// Contains reports whether v lies within iv.
func (iv Interval[T]) Contains(v T) bool {
	return !iv.IsEmpty() && iv.Lo.Compare(v) <= 0 && iv.Hi.Compare(v) >= 0
}

// Hull returns the smallest interval containing both iv and other.
func (iv Interval[T]) Hull(other Interval[T]) Interval[T] {
	if iv.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return iv
	}
	lo := iv.Lo
	if other.Lo.Compare(lo) < 0 {
		lo = other.Lo
	}
	hi := iv.Hi
	if other.Hi.Compare(hi) > 0 {
		hi = other.Hi
	}
	return Interval[T]{Lo: lo, Hi: hi}
}

// Intersection returns the overlap of iv and other, or the canonical
// empty interval if they do not overlap.
func (iv Interval[T]) Intersection(other Interval[T]) Interval[T] {
	if iv.IsEmpty() || other.IsEmpty() {
		return EmptyInterval[T]()
	}
	lo := iv.Lo
	if other.Lo.Compare(lo) > 0 {
		lo = other.Lo
	}
	hi := iv.Hi
	if other.Hi.Compare(hi) < 0 {
		hi = other.Hi
	}
	return NewInterval(lo, hi)
}

// HasIntersection reports whether iv and other overlap.
func (iv Interval[T]) HasIntersection(other Interval[T]) bool {
	return !iv.Intersection(other).IsEmpty()
}

// IsSubsetOf reports whether every value in iv also lies in other. The
// empty interval is a subset of everything, including itself.
func (iv Interval[T]) IsSubsetOf(other Interval[T]) bool {
	if iv.IsEmpty() {
		return true
	}
	if other.IsEmpty() {
		return false
	}
	return other.Lo.Compare(iv.Lo) <= 0 && iv.Hi.Compare(other.Hi) <= 0
}

// IsAdjacentTo reports whether iv and other are disjoint but would
// merge into a single interval: ++a.hi == b.lo or ++b.hi == a.lo,
// computed on disposable copies of the endpoints so wraparound in Inc
// never corrupts a stored value.
func (iv Interval[T]) IsAdjacentTo(other Interval[T]) bool {
	if iv.IsEmpty() || other.IsEmpty() {
		return false
	}
	if iv.Hi.Inc().Compare(other.Lo) == 0 {
		return true
	}
	if other.Hi.Inc().Compare(iv.Lo) == 0 {
		return true
	}
	return false
}

// Relation is the six-way verdict Relationship computes.
type Relation int

const (
	RelNone Relation = iota
	RelEqual
	RelSubset
	RelSuperset
	RelOverlap
	RelAdjacent
)

// String names the Relation, mainly for test failure messages.
func (r Relation) String() string {
	switch r {
	case RelNone:
		return "NONE"
	case RelEqual:
		return "EQUAL"
	case RelSubset:
		return "SUBSET"
	case RelSuperset:
		return "SUPERSET"
	case RelOverlap:
		return "OVERLAP"
	case RelAdjacent:
		return "ADJACENT"
	default:
		return "INVALID"
	}
}

// Relationship computes the relation of iv to other in one pass.
// Relationship is not symmetric in general (SUBSET/SUPERSET swap under
// argument order); NONE, EQUAL, OVERLAP, and ADJACENT are.
func (iv Interval[T]) Relationship(other Interval[T]) Relation {
	if iv.IsEmpty() || other.IsEmpty() {
		if iv.IsAdjacentTo(other) {
			return RelAdjacent
		}
		return RelNone
	}
	if equalOrdered(iv.Lo, other.Lo) && equalOrdered(iv.Hi, other.Hi) {
		return RelEqual
	}
	if !iv.HasIntersection(other) {
		if iv.IsAdjacentTo(other) {
			return RelAdjacent
		}
		return RelNone
	}
	switch {
	case iv.IsSubsetOf(other):
		return RelSubset
	case other.IsSubsetOf(iv):
		return RelSuperset
	default:
		return RelOverlap
	}
}
