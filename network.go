package flowspace

import (
	"fmt"
	"math/bits"
	"strings"
)

// Network is a CIDR network: an address masked to its Mask's prefix
// length. Parsing canonicalizes the address to addr & mask.Bits().
//
// networkEmptyMask marks the distinguished "empty network" (no addresses
// at all), spelled "*/*" in text form. It is a sentinel Mask value
// outside the valid CIDR range [0,32] and is never returned by
// ParseMask, so it can't be confused with a real network — in
// particular it is distinct from mask length 0 (0.0.0.0/0), which is a
// real, non-empty network spanning the whole address space.
const networkEmptyMask Mask = 255

type Network struct {
	Addr Addr
	Mask Mask
}

// NewNetwork canonicalizes addr to the network base for mask.
func NewNetwork(addr Addr, mask Mask) Network {
	if mask == networkEmptyMask {
		return Network{Mask: networkEmptyMask}
	}
	return Network{Addr: addr & mask.Bits(), Mask: mask}
}

// EmptyNetwork returns the distinguished empty network ("*/*"), whose
// Range is empty.
func EmptyNetwork() Network { return Network{Mask: networkEmptyMask} }

// IsEmpty reports whether n is the distinguished empty network.
func (n Network) IsEmpty() bool { return n.Mask == networkEmptyMask }

// Range returns the network's address range as a closed interval, or
// the empty interval if n is the empty network.
func (n Network) Range() Interval[Addr] {
	if n.IsEmpty() {
		return EmptyInterval[Addr]()
	}
	hostBits := 32 - uint(n.Mask)
	if hostBits >= 32 {
		return All[Addr]()
	}
	size := uint32(1) << hostBits
	lo := n.Addr
	hi := lo + Addr(size-1)
	return Interval[Addr]{Lo: lo, Hi: hi}
}

// String formats the network as addr/mask, or "*/*" for the empty
// network.
func (n Network) String() string {
	if n.IsEmpty() {
		return "*/*"
	}
	return fmt.Sprintf("%s/%s", n.Addr, n.Mask)
}

// ParseNetwork parses "<addr>/<mask>" or the empty network "*/*".
func ParseNetwork(s string) (Network, error) {
	if s == "*/*" {
		return EmptyNetwork(), nil
	}
	addr, mask, err := splitAddrMask(s)
	if err != nil {
		return Network{}, err
	}
	return NewNetwork(addr, mask), nil
}

// Pepa is a Protocol End-Point Address: an address together with a
// mask, but — unlike Network — preserving the host bits on parse.
type Pepa struct {
	Addr Addr
	Mask Mask
}

// String formats the PEPA as addr/mask.
func (p Pepa) String() string { return fmt.Sprintf("%s/%s", p.Addr, p.Mask) }

// ParsePepa parses "<addr>/<mask>" without masking the address.
func ParsePepa(s string) (Pepa, error) {
	addr, mask, err := splitAddrMask(s)
	if err != nil {
		return Pepa{}, err
	}
	return Pepa{Addr: addr, Mask: mask}, nil
}

func splitAddrMask(s string) (Addr, Mask, error) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return 0, 0, fmt.Errorf("flowspace: invalid network %q: missing '/'", s)
	}
	addr, err := ParseAddr(s[:i])
	if err != nil {
		return 0, 0, fmt.Errorf("flowspace: invalid network %q: %w", s, err)
	}
	mask, err := ParseMask(s[i+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("flowspace: invalid network %q: %w", s, err)
	}
	return addr, mask, nil
}

// NetworkIterator walks the minimal cover of an address range by CIDR
// networks. The zero NetworkIterator is exhausted: Done reports true
// for it, just as for an iterator that has run past its last network.
type NetworkIterator struct {
	remaining Interval[Addr]
	current   Network
	valid     bool // false for the zero-value (default-constructed) iterator
	done      bool
}

// GenerateNetworks returns an iterator over the unique minimal sequence
// of CIDR networks whose union is exactly r.
func GenerateNetworks(r Interval[Addr]) *NetworkIterator {
	return &NetworkIterator{remaining: r, valid: true, done: r.IsEmpty()}
}

// Next advances the iterator, returning false once exhausted.
func (it *NetworkIterator) Next() bool {
	if it == nil || !it.valid || it.done {
		return false
	}
	lo, hi := it.remaining.Lo, it.remaining.Hi

	lsbZeros := trailingZeros32(uint32(lo))
	span := uint64(hi) - uint64(lo) + 1
	sizeLog2 := 63 - bits.LeadingZeros64(span) // floor(log2(span)), span >= 1
	k := lsbZeros
	if sizeLog2 < k {
		k = sizeLog2
	}
	mask := Mask(32 - k)
	it.current = Network{Addr: lo, Mask: mask}

	upper := it.current.Range().Hi
	if upper == hi {
		it.done = true
		return true
	}
	it.remaining = Interval[Addr]{Lo: upper + 1, Hi: hi}
	return true
}

// Network returns the network at the iterator's current position. It
// is only meaningful after a call to Next that returned true.
func (it *NetworkIterator) Network() Network { return it.current }

// Done reports whether the iterator equals end: either exhausted, or
// the default-constructed zero value.
func (it *NetworkIterator) Done() bool { return it == nil || !it.valid || it.done }

func trailingZeros32(v uint32) int {
	if v == 0 {
		return 32
	}
	return bits.TrailingZeros32(v)
}

// GenerateNetworkSlice collects GenerateNetworks(r) eagerly, for callers
// that don't need lazy iteration.
func GenerateNetworkSlice(r Interval[Addr]) []Network {
	var out []Network
	it := GenerateNetworks(r)
	for it.Next() {
		out = append(out, it.Network())
	}
	return out
}
