package flowspace

import "sort"

// IpSet represents a set of IPv4 addresses as a sorted, disjoint,
// coalesced sequence of ranges.
//
// The zero value is a valid empty set. AddRange/RemoveRange are
// staged: additions and removals are only reconciled into a single
// sorted cover when Ranges (or anything built on it) is called, via
// a sweep-line merge.
type IpSet struct {
	in  []Interval[Addr]
	out []Interval[Addr]
}

// Add adds a single address to s.
func (s *IpSet) Add(a Addr) { s.AddRange(Point(a)) }

// AddNetwork adds n's range to s.
func (s *IpSet) AddNetwork(n Network) { s.AddRange(n.Range()) }

// AddRange adds r to s.
func (s *IpSet) AddRange(r Interval[Addr]) {
	if r.IsEmpty() {
		return
	}
	if len(s.out) > 0 {
		s.in = s.Ranges()
		s.out = nil
	}
	s.in = append(s.in, r)
}

// Remove removes a single address from s.
func (s *IpSet) Remove(a Addr) { s.RemoveRange(Point(a)) }

// RemoveNetwork removes n's range from s.
func (s *IpSet) RemoveNetwork(n Network) { s.RemoveRange(n.Range()) }

// RemoveRange removes r from s. The removal is staged; Ranges splits
// any added range that r cuts into the pieces that remain outside r.
func (s *IpSet) RemoveRange(r Interval[Addr]) {
	if !r.IsEmpty() {
		s.out = append(s.out, r)
	}
}

// AddSet adds every range of b to s.
func (s *IpSet) AddSet(b *IpSet) {
	for _, r := range b.Ranges() {
		s.AddRange(r)
	}
}

// RemoveSet removes every range of b from s.
func (s *IpSet) RemoveSet(b *IpSet) {
	for _, r := range b.Ranges() {
		s.RemoveRange(r)
	}
}

// setPoint is either the start or end of a range of wanted or
// unwanted addresses, used by Ranges' sweep.
type setPoint struct {
	addr  Addr
	want  bool
	start bool
}

func (a setPoint) less(b setPoint) bool {
	cmp := a.addr.Compare(b.addr)
	if cmp != 0 {
		return cmp < 0
	}
	if a.want != b.want {
		if a.start == b.start {
			if a.start {
				return !a.want
			}
			return a.want
		}
		return a.start
	}
	if a.start != b.start {
		return a.start
	}
	return false
}

// Ranges returns the minimal, sorted, disjoint set of ranges covering
// s: every added range, minus every removed range.
func (s *IpSet) Ranges() []Interval[Addr] {
	var points []setPoint
	for _, r := range s.in {
		points = append(points, setPoint{r.Lo, true, true}, setPoint{r.Hi, true, false})
	}
	for _, r := range s.out {
		points = append(points, setPoint{r.Lo, false, true}, setPoint{r.Hi, false, false})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].less(points[j]) })

	want := points[:0]
	var addDepth, removeDepth int
	for _, p := range points {
		depth := &addDepth
		if !p.want {
			depth = &removeDepth
		}
		if p.start {
			*depth++
		} else {
			*depth--
		}
		if p.start && *depth != 1 {
			continue
		}
		if !p.start && *depth != 0 {
			continue
		}
		if !p.want && addDepth > 0 {
			if p.start {
				want = append(want, setPoint{addr: p.addr.Dec(), want: true, start: false})
			} else {
				want = append(want, setPoint{addr: p.addr.Inc(), want: true, start: true})
			}
		}
		if !p.want || removeDepth > 0 {
			continue
		}
		if p.start && len(want) > 0 {
			prior := &want[len(want)-1]
			if !prior.start && prior.addr.Compare(p.addr.Dec()) == 0 {
				want = want[:len(want)-1]
				continue
			}
		}
		want = append(want, p)
	}

	if len(want)%2 == 1 {
		panic("flowspace: internal error, odd sweep result")
	}

	out := make([]Interval[Addr], 0, len(want)/2)
	for i := 0; i < len(want); i += 2 {
		out = append(out, NewInterval(want[i].addr, want[i+1].addr))
	}
	return out
}

// Networks returns the minimal, sorted set of networks covering s.
func (s *IpSet) Networks() []Network {
	var out []Network
	for _, r := range s.Ranges() {
		out = append(out, GenerateNetworkSlice(r)...)
	}
	return out
}

// Contains reports whether a is covered by some range in s.
func (s *IpSet) Contains(a Addr) bool {
	rv := s.Ranges()
	i := sort.Search(len(rv), func(i int) bool { return a.Compare(rv[i].Lo) < 0 })
	if i == 0 {
		return false
	}
	return rv[i-1].Contains(a)
}

// IsMember reports whether r is present in s as an exact stored range,
// not merely covered by one.
func (s *IpSet) IsMember(r Interval[Addr]) bool {
	for _, sr := range s.Ranges() {
		if sr.Equal(r) {
			return true
		}
	}
	return false
}

// ContainsFunc returns a func reporting membership against a snapshot
// of s's current ranges; later mutation of s does not affect it.
func (s *IpSet) ContainsFunc() func(Addr) bool {
	rv := s.Ranges()
	return func(a Addr) bool {
		i := sort.Search(len(rv), func(i int) bool { return a.Compare(rv[i].Lo) < 0 })
		if i == 0 {
			return false
		}
		return rv[i-1].Contains(a)
	}
}

// CalcOverlap returns, in ascending order, the non-empty intersections
// of r with each range of s, stopping at the first range of s that
// starts after r.
func (s *IpSet) CalcOverlap(r Interval[Addr]) []Interval[Addr] {
	var out []Interval[Addr]
	for _, sr := range s.Ranges() {
		if sr.Lo.Compare(r.Hi) > 0 {
			break
		}
		if x := sr.Intersection(r); !x.IsEmpty() {
			out = append(out, x)
		}
	}
	return out
}
