package flowspace

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolIP is the sentinel protocol value meaning "any IP traffic,"
// distinct from every 8-bit IP protocol number.
const ProtocolIP Protocol = 256

// Well-known protocol numbers that IpService's ancillary-kind dispatch
// (parse.go) treats specially.
const (
	ProtocolICMP Protocol = 1
	ProtocolTCP  Protocol = 6
	ProtocolUDP  Protocol = 17
)

// Protocol is an IP protocol number (0..255), or the sentinel
// ProtocolIP (256) meaning "the IP protocol family as a whole."
type Protocol int16

// Compare implements Metric.
func (p Protocol) Compare(o Protocol) int {
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
func (p Protocol) Inc() Protocol {
	if p >= p.Max() {
		return p.Min()
	}
	return p + 1
}

// Dec implements Metric. It wraps from Min to Max.
func (p Protocol) Dec() Protocol {
	if p <= p.Min() {
		return p.Max()
	}
	return p - 1
}

// Min implements Metric.
func (Protocol) Min() Protocol { return 0 }

// Max implements Metric.
func (Protocol) Max() Protocol { return ProtocolIP }

// String formats the protocol using the default protocol lexicon's
// primary name, falling back to the bare number.
func (p Protocol) String() string {
	if p == ProtocolIP {
		return "IP"
	}
	if name, ok := DefaultProtocolLexicon.Name(uint64(p)); ok {
		return name
	}
	return strconv.FormatInt(int64(p), 10)
}

// ParseProtocol parses an integer 0..255, a name from the default
// protocol lexicon, or the literal "IP".
func ParseProtocol(s string) (Protocol, error) {
	if strings.EqualFold(s, "IP") {
		return ProtocolIP, nil
	}
	if v, ok := DefaultProtocolLexicon.Value(s); ok {
		return Protocol(v), nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("flowspace: invalid protocol %q: %w", s, err)
	}
	return Protocol(n), nil
}
