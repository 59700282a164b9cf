package flowspace

import "sort"

// Segment is a maximal colored interval in a PaintMap.
type Segment[T Metric[T]] struct {
	Interval Interval[T]
	Color    *ColorHandle
}

// PaintMap is an ordered, disjoint, coalesced mapping from intervals to
// colors. The zero PaintMap is empty and ready to
// use.
//
// Implementation note: rather than special-casing the "left overhang" /
// "middle" / "right overhang" phases separately, every
// operation first splits any stored segment straddling range.Lo or
// range.Hi+1 so that segment boundaries line up exactly with the
// operation's range, then processes the (now fully-contained) segments
// within that range, then re-coalesces. This produces byte-identical
// output to the three-phase description — an untouched, color-mismatched
// overhang gets split and immediately re-coalesced back together by the
// final Coalesce pass — while keeping one code path per operation
// instead of three.
type PaintMap[T Metric[T]] struct {
	segs []Segment[T] // sorted by Interval.Lo, disjoint, coalesced, non-empty
}

// Segments returns the map's segments in ascending order. The returned
// slice is a copy; mutating it does not affect the map.
func (m *PaintMap[T]) Segments() []Segment[T] {
	return append([]Segment[T](nil), m.segs...)
}

// Len returns the number of stored segments.
func (m *PaintMap[T]) Len() int { return len(m.segs) }

// ColorAt returns the color painted at v, if any.
func (m *PaintMap[T]) ColorAt(v T) (*ColorHandle, bool) {
	idx := m.indexAtOrAfter(v)
	if idx >= len(m.segs) || m.segs[idx].Interval.Lo.Compare(v) > 0 {
		return nil, false
	}
	return m.segs[idx].Color, true
}

// indexAtOrAfter returns the index of the first segment whose interval
// reaches at least v (Hi >= v); this is either the segment containing
// v, or the first segment strictly after v if none contains it.
func (m *PaintMap[T]) indexAtOrAfter(v T) int {
	return sort.Search(len(m.segs), func(i int) bool {
		return m.segs[i].Interval.Hi.Compare(v) >= 0
	})
}

// splitBefore ensures no stored segment's interval straddles p: if a
// segment [lo,hi] has lo < p <= hi, it is replaced by [lo,p.Dec()] and
// [p,hi]. It is a no-op if no segment straddles p.
func (m *PaintMap[T]) splitBefore(p T) {
	idx := m.indexAtOrAfter(p)
	if idx >= len(m.segs) {
		return
	}
	seg := m.segs[idx]
	if seg.Interval.Lo.Compare(p) >= 0 {
		return
	}
	left := Segment[T]{Interval: NewInterval(seg.Interval.Lo, p.Dec()), Color: seg.Color}
	right := Segment[T]{Interval: NewInterval(p, seg.Interval.Hi), Color: seg.Color}
	m.segs[idx] = left
	m.segs = append(m.segs, Segment[T]{})
	copy(m.segs[idx+2:], m.segs[idx+1:])
	m.segs[idx+1] = right
}

// alignBoundaries splits at rng.Lo and, unless rng.Hi is the metric's
// Max, at rng.Hi.Inc(), so every stored segment overlapping rng is
// fully contained within it. It returns the (possibly empty) index
// span [begin,end) of segments now fully contained in rng.
func (m *PaintMap[T]) alignBoundaries(rng Interval[T]) (begin, end int) {
	m.splitBefore(rng.Lo)
	var zero T
	if rng.Hi.Compare(zero.Max()) < 0 {
		m.splitBefore(rng.Hi.Inc())
	}
	begin = m.indexAtOrAfter(rng.Lo)
	end = begin
	for end < len(m.segs) && m.segs[end].Interval.Hi.Compare(rng.Hi) <= 0 {
		end++
	}
	return begin, end
}

// replaceRange splices newSegs in place of m.segs[begin:end].
func (m *PaintMap[T]) replaceRange(begin, end int, newSegs []Segment[T]) {
	tail := append([]Segment[T](nil), m.segs[end:]...)
	m.segs = append(m.segs[:begin], newSegs...)
	m.segs = append(m.segs, tail...)
}

// Coalesce merges adjacent segments with equal colors. It is run
// automatically at the end of every operation; exported so batch
// callers building a PaintMap by hand (outside the five operations) can
// restore the invariant.
func (m *PaintMap[T]) Coalesce() {
	if len(m.segs) < 2 {
		return
	}
	out := m.segs[:1]
	for _, seg := range m.segs[1:] {
		last := &out[len(out)-1]
		if last.Color.Equal(seg.Color) && last.Interval.Hi.Inc().Compare(seg.Interval.Lo) == 0 {
			last.Interval.Hi = seg.Interval.Hi
			continue
		}
		out = append(out, seg)
	}
	m.segs = out
}

// Paint overwrites existing colors within rng with color, preserving
// non-overlapping existing coverage outside rng.
func (m *PaintMap[T]) Paint(rng Interval[T], color *ColorHandle) {
	if rng.IsEmpty() {
		return
	}
	begin, end := m.alignBoundaries(rng)
	m.replaceRange(begin, end, []Segment[T]{{Interval: rng, Color: color}})
	m.Coalesce()
}

// Unpaint removes coverage within rng wherever the existing color
// equals color; other colors are left alone.
func (m *PaintMap[T]) Unpaint(rng Interval[T], color *ColorHandle) {
	if rng.IsEmpty() {
		return
	}
	begin, end := m.alignBoundaries(rng)
	kept := make([]Segment[T], 0, end-begin)
	for _, seg := range m.segs[begin:end] {
		if !seg.Color.Equal(color) {
			kept = append(kept, seg)
		}
	}
	m.replaceRange(begin, end, kept)
	m.Coalesce()
}

// Uncolor removes all coverage within rng regardless of color.
func (m *PaintMap[T]) Uncolor(rng Interval[T]) {
	if rng.IsEmpty() {
		return
	}
	begin, end := m.alignBoundaries(rng)
	m.replaceRange(begin, end, nil)
	m.Coalesce()
}

// Blend adds color to the existing color where rng is already
// covered, and paints rng \ covered with color alone.
func (m *PaintMap[T]) Blend(rng Interval[T], color *ColorHandle) {
	if rng.IsEmpty() {
		return
	}
	begin, end := m.alignBoundaries(rng)
	var out []Segment[T]
	cursor := rng.Lo
	for _, seg := range m.segs[begin:end] {
		if cursor.Compare(seg.Interval.Lo) < 0 {
			out = append(out, Segment[T]{Interval: NewInterval(cursor, seg.Interval.Lo.Dec()), Color: color})
		}
		out = append(out, Segment[T]{Interval: seg.Interval, Color: seg.Color.Add(color)})
		cursor = seg.Interval.Hi.Inc()
	}
	// cursor may have wrapped to Min if the last contained segment's Hi
	// was rng.Hi == T.Max(), which would make the trailing-gap check
	// below true by wraparound rather than by an actual gap. Guard
	// against that directly: there is no trailing gap if the last
	// contained segment already reaches rng.Hi.
	consumedThroughEnd := end > begin && m.segs[end-1].Interval.Hi.Compare(rng.Hi) >= 0
	if !consumedThroughEnd {
		out = append(out, Segment[T]{Interval: NewInterval(cursor, rng.Hi), Color: color})
	}
	m.replaceRange(begin, end, out)
	m.Coalesce()
}

// Unblend subtracts color from the existing color within rng ∩
// covered; uncovered subranges of rng are left alone.
func (m *PaintMap[T]) Unblend(rng Interval[T], color *ColorHandle) {
	if rng.IsEmpty() {
		return
	}
	begin, end := m.alignBoundaries(rng)
	out := make([]Segment[T], 0, end-begin)
	for _, seg := range m.segs[begin:end] {
		out = append(out, Segment[T]{Interval: seg.Interval, Color: seg.Color.Sub(color)})
	}
	m.replaceRange(begin, end, out)
	m.Coalesce()
}

// PaintFrom applies Paint(seg.Interval, seg.Color) for each segment of
// src, in order. Equivalent to the sequential single-range application.
func (m *PaintMap[T]) PaintFrom(src *PaintMap[T]) {
	for _, seg := range src.segs {
		m.Paint(seg.Interval, seg.Color)
	}
}

// BlendFrom applies Blend(seg.Interval, seg.Color) for each segment of
// src, in order.
func (m *PaintMap[T]) BlendFrom(src *PaintMap[T]) {
	for _, seg := range src.segs {
		m.Blend(seg.Interval, seg.Color)
	}
}

// UnpaintFrom applies Unpaint(seg.Interval, seg.Color) for each segment
// of src, in order.
func (m *PaintMap[T]) UnpaintFrom(src *PaintMap[T]) {
	for _, seg := range src.segs {
		m.Unpaint(seg.Interval, seg.Color)
	}
}

// UnblendFrom applies Unblend(seg.Interval, seg.Color) for each segment
// of src, in order.
func (m *PaintMap[T]) UnblendFrom(src *PaintMap[T]) {
	for _, seg := range src.segs {
		m.Unblend(seg.Interval, seg.Color)
	}
}

// UncolorFrom removes, for each segment of src, the coverage within
// that segment's interval regardless of color.
func (m *PaintMap[T]) UncolorFrom(src *PaintMap[T]) {
	for _, seg := range src.segs {
		m.Uncolor(seg.Interval)
	}
}
