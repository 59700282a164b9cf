package flowspace

// IpGroup is a network paired with the subset of its addresses that are
// actually in use. Insert rejects an address that doesn't belong to the
// network (addr&mask != net) rather than silently masking it: the
// receiver is left unchanged on a rejected call.
type IpGroup struct {
	network Network
	addrs   []Addr
}

// NewIpGroup returns an empty group over net.
func NewIpGroup(net Network) *IpGroup {
	return &IpGroup{network: net}
}

// Network returns the group's network.
func (g *IpGroup) Network() Network { return g.network }

// Addrs returns the group's member addresses in insertion order.
func (g *IpGroup) Addrs() []Addr { return append([]Addr(nil), g.addrs...) }

// Len returns the number of member addresses.
func (g *IpGroup) Len() int { return len(g.addrs) }

// IsCompatible reports whether addr belongs to the group's network.
func (g *IpGroup) IsCompatible(addr Addr) bool {
	return addr&g.network.Mask.Bits() == g.network.Addr
}

// Insert adds addr to the group, reporting false and leaving the group
// unchanged if addr is not compatible with the group's network.
func (g *IpGroup) Insert(addr Addr) bool {
	if !g.IsCompatible(addr) {
		return false
	}
	g.addrs = append(g.addrs, addr)
	return true
}

// Remove removes addr from the group, reporting false if it was not
// present.
func (g *IpGroup) Remove(addr Addr) bool {
	for i, a := range g.addrs {
		if a == addr {
			g.addrs = append(g.addrs[:i], g.addrs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll empties the group's membership, leaving its network intact.
func (g *IpGroup) RemoveAll() { g.addrs = nil }

// Contains reports whether addr is a member of the group.
func (g *IpGroup) Contains(addr Addr) bool {
	for _, a := range g.addrs {
		if a == addr {
			return true
		}
	}
	return false
}

// IsSubsetOf reports whether g's network is a subset of other's.
func (g *IpGroup) IsSubsetOf(other *IpGroup) bool {
	return g.network.Range().IsSubsetOf(other.network.Range())
}

// HasOverlap reports whether g's and other's networks intersect.
func (g *IpGroup) HasOverlap(other *IpGroup) bool {
	return g.network.Range().HasIntersection(other.network.Range())
}
