package flowspace

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Port is a 16-bit TCP/UDP port number stored in host byte order.
type Port uint16

// Compare implements Metric.
func (p Port) Compare(o Port) int {
	switch {
	case p < o:
		return -1
	case p > o:
		return 1
	default:
		return 0
	}
}

// Inc implements Metric. It wraps from Max to Min.
func (p Port) Inc() Port { return p + 1 }

// Dec implements Metric. It wraps from Min to Max.
func (p Port) Dec() Port { return p - 1 }

// Min implements Metric.
func (Port) Min() Port { return 0 }

// Max implements Metric.
func (Port) Max() Port { return Port(math.MaxUint16) }

// ToNetworkOrder is a no-op on big-endian hosts, a byte swap otherwise.
func (p Port) ToNetworkOrder() uint16 {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], uint16(p))
	return binary.BigEndian.Uint16(buf[:])
}

// PortFromNetworkOrder is the inverse of Port.ToNetworkOrder.
func PortFromNetworkOrder(n uint16) Port {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], n)
	return Port(binary.NativeEndian.Uint16(buf[:]))
}

// String formats the port using the default port lexicon's primary
// name, falling back to the bare decimal number.
func (p Port) String() string {
	if name, ok := DefaultPortLexicon.Name(uint64(p)); ok {
		return name
	}
	return strconv.FormatUint(uint64(p), 10)
}

// ParsePort parses a decimal port number or a named alias from the
// default port lexicon.
func ParsePort(s string) (Port, error) {
	if v, ok := DefaultPortLexicon.Value(s); ok {
		return Port(v), nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("flowspace: invalid port %q: %w", s, err)
	}
	return Port(n), nil
}
