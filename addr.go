package flowspace

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Addr is an IPv4 address stored in host byte order.
type Addr uint32

// Compare implements Metric.
func (a Addr) Compare(b Addr) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Inc implements Metric. It wraps from Max to Min.
func (a Addr) Inc() Addr { return a + 1 }

// Dec implements Metric. It wraps from Min to Max.
func (a Addr) Dec() Addr { return a - 1 }

// Min implements Metric.
func (Addr) Min() Addr { return 0 }

// Max implements Metric.
func (Addr) Max() Addr { return Addr(math.MaxUint32) }

// Octets returns the address as four host-order octets, most
// significant first.
func (a Addr) Octets() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return b
}

// AddrFromOctets builds an Addr from four octets, most significant
// first.
func AddrFromOctets(a, b, c, d byte) Addr {
	return Addr(binary.BigEndian.Uint32([]byte{a, b, c, d}))
}

// ToNetworkOrder reinterprets the address's host-order bit pattern as
// it would sit in memory on the wire. It is a no-op on big-endian
// hosts; on little-endian hosts it byte-swaps.
func (a Addr) ToNetworkOrder() uint32 {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(a))
	return binary.BigEndian.Uint32(buf[:])
}

// AddrFromNetworkOrder is the inverse of ToNetworkOrder.
func AddrFromNetworkOrder(n uint32) Addr {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], n)
	return Addr(binary.NativeEndian.Uint32(buf[:]))
}

// String formats the address in dotted-quad form.
func (a Addr) String() string {
	o := a.Octets()
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3])
}

// ParseAddr parses an address in dotted-quad form (A.B.C.D, octets
// 0..255) or as a bare decimal integer giving the raw host-order
// value. On failure it returns the zero address and a descriptive
// error.
func ParseAddr(s string) (Addr, error) {
	if !strings.Contains(s, ".") {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("flowspace: invalid address %q: %w", s, err)
		}
		return Addr(n), nil
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("flowspace: invalid address %q: want 4 octets, got %d", s, len(parts))
	}
	var oct [4]byte
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("flowspace: invalid address %q: octet %d: %w", s, i, err)
		}
		oct[i] = byte(n)
	}
	return AddrFromOctets(oct[0], oct[1], oct[2], oct[3]), nil
}
