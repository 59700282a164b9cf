package flowspace

// AddrPortRegion is a flow's classifying dimensions for the
// two-dimensional address+port flowspace: an address range crossed
// with a port range.
type AddrPortRegion struct {
	Addr Interval[Addr]
	Port Interval[Port]
}

// AddrPortSpace is a two-dimensional interval tree over (address,
// port), storing a client value V at each leaf. Where FlowSpace
// classifies on (source, destination, protocol), AddrPortSpace
// classifies rules keyed directly on an address range and a port
// range — the dimension pair port-range queries need, with port
// itself a queryable tree dimension rather than payload-carried data.
type AddrPortSpace[V any] struct {
	top *Layer[Addr, *Layer[Port, V]]
}

// NewAddrPortSpace returns an empty address+port flow space.
func NewAddrPortSpace[V any]() *AddrPortSpace[V] {
	return &AddrPortSpace[V]{top: NewLayer[Addr, *Layer[Port, V]]()}
}

// Insert adds (region, value).
func (s *AddrPortSpace[V]) Insert(region AddrPortRegion, value V) {
	portLayer := s.top.GetOrCreate(region.Addr.Lo, region.Addr.Hi, func() *Layer[Port, V] {
		return NewLayer[Port, V]()
	})
	portLayer.Add(region.Port.Lo, region.Port.Hi, value)
}

// Find locates the first stored value at region satisfying match.
func (s *AddrPortSpace[V]) Find(region AddrPortRegion, match func(V) bool) (V, bool) {
	var zero V
	portLayer, ok := s.top.Find(region.Addr.Lo, region.Addr.Hi, func(*Layer[Port, V]) bool { return true })
	if !ok {
		return zero, false
	}
	return portLayer.Find(region.Port.Lo, region.Port.Hi, match)
}

// Erase removes the first stored value at region satisfying match,
// pruning an emptied port layer's entry from the address layer.
func (s *AddrPortSpace[V]) Erase(region AddrPortRegion, match func(V) bool) bool {
	portLayer, ok := s.top.Find(region.Addr.Lo, region.Addr.Hi, func(*Layer[Port, V]) bool { return true })
	if !ok {
		return false
	}
	if !portLayer.Erase(region.Port.Lo, region.Port.Hi, match) {
		return false
	}
	if portLayer.Len() == 0 {
		s.top.Erase(region.Addr.Lo, region.Addr.Hi, func(p *Layer[Port, V]) bool { return p == portLayer })
	}
	return true
}

// VisitIntersecting calls fn on every stored (region, value) whose
// region intersects query, in ascending (address, port) order,
// stopping early if fn returns false. fn's value argument points at
// the actual stored element, so writes through it are writes to the
// flow space.
func (s *AddrPortSpace[V]) VisitIntersecting(query AddrPortRegion, fn func(AddrPortRegion, *V) bool) bool {
	return s.top.VisitIntersecting(query.Addr, func(addrLo, addrHi Addr, portLayerPtr **Layer[Port, V]) bool {
		portLayer := *portLayerPtr
		return portLayer.VisitIntersecting(query.Port, func(pLo, pHi Port, value *V) bool {
			region := AddrPortRegion{
				Addr: NewInterval(addrLo, addrHi),
				Port: NewInterval(pLo, pHi),
			}
			return fn(region, value)
		})
	})
}
