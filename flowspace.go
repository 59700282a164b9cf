package flowspace

// Layer is one dimension of a recursively nested N-dimensional
// interval tree. K is this level's metric type; V is
// whatever is stored per (lower, upper) entry — a client payload at a
// leaf layer, or a *Layer for the next dimension at an upper layer.
//
// Each tree node's metric is an interval's lower bound; its inner map
// holds the (upper bound, value) pairs sharing that lower bound. A
// leaf layer's inner map is a multimap (Add permits duplicate upper
// bounds with distinct values); an upper layer's is effectively a
// unimap, since GetOrCreate returns the existing sub-layer for a given
// upper bound instead of creating a second one. Inner-map cardinality
// per node is expected to be small — the number of entries that share
// one lower bound — so it is kept as a plain slice scanned linearly
// rather than a second tree, unlike original_source's flowspace-node.h
// which uses a real nested map for it.
type Layer[K Metric[K], V any] struct {
	tree *rbTree[K]
}

type layerEntry[K Metric[K], V any] struct {
	upper K
	value V
}

// NewLayer returns an empty layer.
func NewLayer[K Metric[K], V any]() *Layer[K, V] {
	return &Layer[K, V]{tree: newRBTree[K]()}
}

// Len returns the number of distinct lower-bound nodes, not the total
// entry count.
func (l *Layer[K, V]) Len() int { return l.tree.Len() }

func (l *Layer[K, V]) entries(n *rbNode[K]) []layerEntry[K, V] {
	if n.payload == nil {
		return nil
	}
	return n.payload.([]layerEntry[K, V])
}

func (l *Layer[K, V]) ownSpan(n *rbNode[K]) Interval[K] {
	es := l.entries(n)
	if len(es) == 0 {
		return EmptyInterval[K]()
	}
	hi := es[0].upper
	for _, e := range es[1:] {
		if e.upper.Compare(hi) > 0 {
			hi = e.upper
		}
	}
	return NewInterval(n.metric, hi)
}

func (l *Layer[K, V]) nodeFor(lower K) *rbNode[K] {
	n, created := l.tree.insert(lower, l.ownSpan)
	if created {
		n.payload = []layerEntry[K, V]{}
	}
	return n
}

// Add inserts a new (lower, upper, value) entry, permitting duplicate
// (lower, upper) pairs. Used at leaf layers.
func (l *Layer[K, V]) Add(lower, upper K, value V) {
	n := l.nodeFor(lower)
	es := l.entries(n)
	n.payload = append(es, layerEntry[K, V]{upper: upper, value: value})
	l.tree.refreshOwn(n, l.ownSpan)
}

// GetOrCreate returns the value stored at (lower, upper), creating it
// via create if absent. Used at upper layers, where each (lower,
// upper) pair owns exactly one nested sub-layer.
func (l *Layer[K, V]) GetOrCreate(lower, upper K, create func() V) V {
	n := l.nodeFor(lower)
	es := l.entries(n)
	for i := range es {
		if es[i].upper.Compare(upper) == 0 {
			return es[i].value
		}
	}
	v := create()
	n.payload = append(es, layerEntry[K, V]{upper: upper, value: v})
	l.tree.refreshOwn(n, l.ownSpan)
	return v
}

// Find returns the first value at (lower, upper) satisfying match.
func (l *Layer[K, V]) Find(lower, upper K, match func(V) bool) (V, bool) {
	var zero V
	n := l.tree.find(lower)
	if n == l.tree.sentinel {
		return zero, false
	}
	for _, e := range l.entries(n) {
		if e.upper.Compare(upper) == 0 && match(e.value) {
			return e.value, true
		}
	}
	return zero, false
}

// Erase removes the first entry at (lower, upper) satisfying match,
// reporting whether one was removed. If the node's inner map becomes
// empty, the node itself is removed from the tree.
func (l *Layer[K, V]) Erase(lower, upper K, match func(V) bool) bool {
	n := l.tree.find(lower)
	if n == l.tree.sentinel {
		return false
	}
	es := l.entries(n)
	for i, e := range es {
		if e.upper.Compare(upper) != 0 || !match(e.value) {
			continue
		}
		es = append(es[:i], es[i+1:]...)
		if len(es) == 0 {
			l.tree.remove(lower, l.ownSpan)
			return true
		}
		n.payload = es
		l.tree.refreshOwn(n, l.ownSpan)
		return true
	}
	return false
}

// VisitIntersecting calls fn on every entry whose interval intersects
// query, in ascending (lower, upper) order, stopping early if fn
// returns false. It walks the threaded in-order chain from the
// left-most intersecting node rather than materializing a slice,
// walking leftmost node then next_inorder. This collapses what could
// be incremental cursor state (node, inner_position) into a single
// generator loop — idiomatic for Go's callback- and iterator-style
// traversal, and this repository's pack contains no example of a
// hand-rolled multi-level stateful cursor to imitate.
//
// fn receives a pointer into the entry's actual storage, not a copy:
// the pointer is taken from the node's inner-map slice, so writes
// through it are writes to the tree, matching the payload-is-the-
// actual-stored-element cursor contract.
func (l *Layer[K, V]) VisitIntersecting(query Interval[K], fn func(lower, upper K, value *V) bool) bool {
	if query.IsEmpty() {
		return true
	}
	start := l.tree.firstIntersecting(query)
	for n := start; n != nil; n = n.next {
		if n.metric.Compare(query.Hi) > 0 {
			break
		}
		if !n.hull.HasIntersection(query) {
			continue
		}
		es := l.entries(n)
		for i := range es {
			ivl := NewInterval(n.metric, es[i].upper)
			if !ivl.HasIntersection(query) {
				continue
			}
			if !fn(n.metric, es[i].upper, &es[i].value) {
				return false
			}
		}
	}
	return true
}

// Region is a flow's classifying dimensions for a three-dimensional
// flow rule: source and destination address ranges and a protocol
// range. ICMP type travels in the stored value via IpService rather
// than as a further tree dimension. Port is queried as its own tree
// dimension through AddrPortSpace, not carried in Region — a rule
// keyed on (address, port) rather than (src, dst, proto) uses that
// type instead.
type Region struct {
	Src, Dst Interval[Addr]
	Proto    Interval[Protocol]
}

// Relationship computes r's relation to other by accumulating each
// dimension's Interval.Relationship verdict — source, destination,
// then protocol — into a single N-D box verdict.
func (r Region) Relationship(other Region) Relation {
	return AccumulateRelation([]Relation{
		r.Src.Relationship(other.Src),
		r.Dst.Relationship(other.Dst),
		r.Proto.Relationship(other.Proto),
	})
}

// FlowSpace is a three-dimensional interval tree over (source address,
// destination address, protocol), storing a client value V at each
// leaf.
type FlowSpace[V any] struct {
	top *Layer[Addr, *Layer[Addr, *Layer[Protocol, V]]]
}

// NewFlowSpace returns an empty flow space.
func NewFlowSpace[V any]() *FlowSpace[V] {
	return &FlowSpace[V]{top: NewLayer[Addr, *Layer[Addr, *Layer[Protocol, V]]]()}
}

// Insert adds (region, value).
func (f *FlowSpace[V]) Insert(region Region, value V) {
	dstLayer := f.top.GetOrCreate(region.Src.Lo, region.Src.Hi, func() *Layer[Addr, *Layer[Protocol, V]] {
		return NewLayer[Addr, *Layer[Protocol, V]]()
	})
	protoLayer := dstLayer.GetOrCreate(region.Dst.Lo, region.Dst.Hi, func() *Layer[Protocol, V] {
		return NewLayer[Protocol, V]()
	})
	protoLayer.Add(region.Proto.Lo, region.Proto.Hi, value)
}

// Find locates the first stored value at region satisfying match.
func (f *FlowSpace[V]) Find(region Region, match func(V) bool) (V, bool) {
	var zero V
	dstLayer, ok := f.top.Find(region.Src.Lo, region.Src.Hi, func(*Layer[Addr, *Layer[Protocol, V]]) bool { return true })
	if !ok {
		return zero, false
	}
	protoLayer, ok := dstLayer.Find(region.Dst.Lo, region.Dst.Hi, func(*Layer[Protocol, V]) bool { return true })
	if !ok {
		return zero, false
	}
	return protoLayer.Find(region.Proto.Lo, region.Proto.Hi, match)
}

// Erase removes the first stored value at region satisfying match,
// pruning empty sub-layers and their owning entries up the chain.
func (f *FlowSpace[V]) Erase(region Region, match func(V) bool) bool {
	dstLayer, ok := f.top.Find(region.Src.Lo, region.Src.Hi, func(*Layer[Addr, *Layer[Protocol, V]]) bool { return true })
	if !ok {
		return false
	}
	protoLayer, ok := dstLayer.Find(region.Dst.Lo, region.Dst.Hi, func(*Layer[Protocol, V]) bool { return true })
	if !ok {
		return false
	}
	if !protoLayer.Erase(region.Proto.Lo, region.Proto.Hi, match) {
		return false
	}
	if protoLayer.Len() == 0 {
		dstLayer.Erase(region.Dst.Lo, region.Dst.Hi, func(p *Layer[Protocol, V]) bool { return p == protoLayer })
	}
	if dstLayer.Len() == 0 {
		f.top.Erase(region.Src.Lo, region.Src.Hi, func(d *Layer[Addr, *Layer[Protocol, V]]) bool { return d == dstLayer })
	}
	return true
}

// VisitIntersecting calls fn on every stored (region, value) whose
// region intersects query, in ascending (source, destination,
// protocol) order, stopping early if fn returns false. fn's value
// argument points at the actual stored element, so writes through it
// are writes to the flow space.
func (f *FlowSpace[V]) VisitIntersecting(query Region, fn func(Region, *V) bool) bool {
	return f.top.VisitIntersecting(query.Src, func(srcLo, srcHi Addr, dstLayerPtr **Layer[Addr, *Layer[Protocol, V]]) bool {
		dstLayer := *dstLayerPtr
		return dstLayer.VisitIntersecting(query.Dst, func(dstLo, dstHi Addr, protoLayerPtr **Layer[Protocol, V]) bool {
			protoLayer := *protoLayerPtr
			return protoLayer.VisitIntersecting(query.Proto, func(pLo, pHi Protocol, value *V) bool {
				region := Region{
					Src:   NewInterval(srcLo, srcHi),
					Dst:   NewInterval(dstLo, dstHi),
					Proto: NewInterval(pLo, pHi),
				}
				return fn(region, value)
			})
		})
	})
}
