package flowspace

import (
	"fmt"
	"math"
	"strconv"
)

// IcmpType is an ICMP message type (0..255).
type IcmpType uint8

// Compare implements Metric.
func (t IcmpType) Compare(o IcmpType) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	default:
		return 0
	}
}

// Inc implements Metric. It wraps from Max to Min.
func (t IcmpType) Inc() IcmpType { return t + 1 }

// Dec implements Metric. It wraps from Min to Max.
func (t IcmpType) Dec() IcmpType { return t - 1 }

// Min implements Metric.
func (IcmpType) Min() IcmpType { return 0 }

// Max implements Metric.
func (IcmpType) Max() IcmpType { return IcmpType(math.MaxUint8) }

// String formats the type using the default ICMP lexicon's primary
// name, falling back to the bare number.
func (t IcmpType) String() string {
	if name, ok := DefaultIcmpLexicon.Name(uint64(t)); ok {
		return name
	}
	return strconv.FormatUint(uint64(t), 10)
}

// ParseIcmpType parses an integer 0..255 or a name from the default
// ICMP lexicon.
func ParseIcmpType(s string) (IcmpType, error) {
	if v, ok := DefaultIcmpLexicon.Value(s); ok {
		return IcmpType(v), nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("flowspace: invalid ICMP type %q: %w", s, err)
	}
	return IcmpType(n), nil
}
