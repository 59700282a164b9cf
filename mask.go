package flowspace

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Mask is a prefix length in [0, 32]. An address derived from a Mask
// of count k has its top k bits set.
type Mask uint8

// Compare implements Metric.
func (m Mask) Compare(o Mask) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

// Inc implements Metric. It wraps from Max to Min.
func (m Mask) Inc() Mask {
	if m >= 32 {
		return 0
	}
	return m + 1
}

// Dec implements Metric. It wraps from Min to Max.
func (m Mask) Dec() Mask {
	if m == 0 {
		return 32
	}
	return m - 1
}

// Min implements Metric.
func (Mask) Min() Mask { return 0 }

// Max implements Metric.
func (Mask) Max() Mask { return 32 }

// Valid reports whether m is a legal prefix length.
func (m Mask) Valid() bool { return m <= 32 }

// Bits returns the mask as a 32-bit address with the top Count bits
// set, e.g. Mask(24).Bits() is 255.255.255.0.
func (m Mask) Bits() Addr {
	if m == 0 {
		return 0
	}
	return Addr(^uint32(0) << (32 - uint(m)))
}

// MaskFromBits validates that addr is a contiguous high-bit mask (as
// produced by Bits) and returns its prefix length.
func MaskFromBits(addr Addr) (Mask, error) {
	v := uint32(addr)
	ones := bits.OnesCount32(v)
	expect := uint32(^uint32(0) << (32 - ones))
	if v != expect {
		return 0, fmt.Errorf("flowspace: %s is not a contiguous mask", Addr(v))
	}
	return Mask(ones), nil
}

// String formats the mask in CIDR (decimal prefix length) form.
func (m Mask) String() string { return strconv.Itoa(int(m)) }

// ParseMask parses either CIDR form (integer 0..32) or octet form
// (a dotted-quad contiguous high-bit mask).
func ParseMask(s string) (Mask, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		m := Mask(n)
		if !m.Valid() {
			return 0, fmt.Errorf("flowspace: mask %q out of range [0,32]", s)
		}
		return m, nil
	}
	addr, err := ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("flowspace: invalid mask %q: %w", s, err)
	}
	return MaskFromBits(addr)
}
