package flowspace

// IpCluster is a collection of IpGroups whose networks are pairwise
// disjoint. Insert rejects a group whose network overlaps any group
// already in the cluster: the rejected call leaves the
// cluster unchanged.
type IpCluster struct {
	groups []*IpGroup
}

// NewIpCluster returns an empty cluster.
func NewIpCluster() *IpCluster { return &IpCluster{} }

// Groups returns the cluster's groups in insertion order.
func (c *IpCluster) Groups() []*IpGroup { return append([]*IpGroup(nil), c.groups...) }

// Len returns the number of groups in the cluster.
func (c *IpCluster) Len() int { return len(c.groups) }

// InsertNetwork inserts an empty group over net, reporting false and
// leaving the cluster unchanged if net overlaps an existing group.
func (c *IpCluster) InsertNetwork(net Network) bool {
	return c.InsertGroup(NewIpGroup(net))
}

// InsertGroup inserts group into the cluster, reporting false and
// leaving the cluster unchanged if group's network overlaps any
// existing group's network.
func (c *IpCluster) InsertGroup(group *IpGroup) bool {
	for _, g := range c.groups {
		if g.HasOverlap(group) {
			return false
		}
	}
	c.groups = append(c.groups, group)
	return true
}

// InsertAddr places addr into whichever group's network it belongs to,
// reporting false if no group in the cluster is compatible with it.
func (c *IpCluster) InsertAddr(addr Addr) bool {
	g := c.findCompatible(addr)
	if g == nil {
		return false
	}
	return g.Insert(addr)
}

// RemoveGroup removes group from the cluster by identity, reporting
// false if it is not present.
func (c *IpCluster) RemoveGroup(group *IpGroup) bool {
	for i, g := range c.groups {
		if g == group {
			c.groups = append(c.groups[:i], c.groups[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll empties the cluster.
func (c *IpCluster) RemoveAll() { c.groups = nil }

// ContainsGroup reports whether group (by identity) is in the cluster.
func (c *IpCluster) ContainsGroup(group *IpGroup) bool {
	for _, g := range c.groups {
		if g == group {
			return true
		}
	}
	return false
}

// ContainsAddr reports whether some group in the cluster both is
// compatible with addr and has it as a member.
func (c *IpCluster) ContainsAddr(addr Addr) bool {
	g := c.findCompatible(addr)
	return g != nil && g.Contains(addr)
}

// FindGroup returns the group whose network addr belongs to, if any.
func (c *IpCluster) FindGroup(addr Addr) (*IpGroup, bool) {
	g := c.findCompatible(addr)
	return g, g != nil
}

func (c *IpCluster) findCompatible(addr Addr) *IpGroup {
	for _, g := range c.groups {
		if g.IsCompatible(addr) {
			return g
		}
	}
	return nil
}
