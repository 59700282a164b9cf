package flowspace

import (
	"fmt"
	"strings"
)

// parseRange parses the shared port-range/address-range grammar:
// "lo-hi", a leading "-hi" meaning [Min, hi], a trailing "lo-" meaning
// [lo, Max], and a bare "n" meaning [n, n]. Endpoints are parsed with
// parseOne, following netaddr.go's pattern of composing a generic
// grammar out of the same per-type parser used for the scalar form.
func parseRange[T Metric[T]](s string, parseOne func(string) (T, error)) (Interval[T], error) {
	var zero T
	if s == "" {
		return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: empty", s)
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		switch {
		case i == 0:
			hi, err := parseOne(s[1:])
			if err != nil {
				return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: %w", s, err)
			}
			return NewInterval(zero.Min(), hi), nil
		case i == len(s)-1:
			lo, err := parseOne(s[:i])
			if err != nil {
				return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: %w", s, err)
			}
			return NewInterval(lo, zero.Max()), nil
		default:
			lo, err := parseOne(s[:i])
			if err != nil {
				return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: %w", s, err)
			}
			hi, err := parseOne(s[i+1:])
			if err != nil {
				return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: %w", s, err)
			}
			return NewInterval(lo, hi), nil
		}
	}
	v, err := parseOne(s)
	if err != nil {
		return Interval[T]{}, fmt.Errorf("flowspace: invalid range %q: %w", s, err)
	}
	return Point(v), nil
}

// formatRange is the inverse of parseRange: a single value formats as
// the bare value, everything else as "lo-hi". It never emits the
// leading/trailing-dash abbreviations, since "lo-hi" already round-trips
// through parseRange and there is no ambiguity to abbreviate.
func formatRange[T Metric[T]](r Interval[T]) string {
	if r.IsEmpty() {
		return "{}"
	}
	if r.Lo.Compare(r.Hi) == 0 {
		return fmt.Sprint(r.Lo)
	}
	return fmt.Sprintf("%v-%v", r.Lo, r.Hi)
}

// ParsePortRange parses the port-range grammar: "lo-hi", "-hi", "lo-",
// or a bare "n" meaning the single-port range [n, n].
func ParsePortRange(s string) (Interval[Port], error) { return parseRange(s, ParsePort) }

// FormatPortRange formats r per the port-range grammar.
func FormatPortRange(r Interval[Port]) string { return formatRange(r) }

// ParseAddrRange parses the address-range grammar: the port-range
// grammar, plus "<addr>/<mask>" as shorthand for the network's range.
func ParseAddrRange(s string) (Interval[Addr], error) {
	if strings.Contains(s, "/") {
		n, err := ParseNetwork(s)
		if err != nil {
			return Interval[Addr]{}, fmt.Errorf("flowspace: invalid address range %q: %w", s, err)
		}
		return n.Range(), nil
	}
	return parseRange(s, ParseAddr)
}

// FormatAddrRange formats r per the address-range grammar (never using
// the "/mask" shorthand — that's an input convenience, not a canonical
// form, so round-tripping through FormatAddrRange/ParseAddrRange always
// takes the "lo-hi" path).
func FormatAddrRange(r Interval[Addr]) string { return formatRange(r) }

// ServiceKind distinguishes an IpService's ancillary data, if any.
type ServiceKind int

const (
	// ServiceKindNone means the service has no ancillary data (any
	// protocol other than TCP, UDP, or ICMP).
	ServiceKindNone ServiceKind = iota
	// ServiceKindPort means the service carries a Port (TCP or UDP).
	ServiceKindPort
	// ServiceKindICMP means the service carries an IcmpType (ICMP).
	ServiceKindICMP
)

// IpService is a protocol paired with protocol-appropriate ancillary
// data: a Port for TCP/UDP, an IcmpType for ICMP, nothing otherwise.
type IpService struct {
	proto Protocol
	kind  ServiceKind
	port  Port
	icmp  IcmpType
}

// NewIpService returns a service for proto with no explicit ancillary
// value: a TCP or UDP service carries port 0, an ICMP service carries
// ICMP type 0, and any other protocol has no ancillary data.
func NewIpService(proto Protocol) IpService {
	return IpService{proto: proto, kind: ServiceKind(ancillaryKindFor(proto))}
}

// NewIpServicePort returns a TCP/UDP-style service carrying port.
func NewIpServicePort(proto Protocol, port Port) IpService {
	return IpService{proto: proto, kind: ServiceKindPort, port: port}
}

// NewIpServiceICMP returns an ICMP-style service carrying t.
func NewIpServiceICMP(proto Protocol, t IcmpType) IpService {
	return IpService{proto: proto, kind: ServiceKindICMP, icmp: t}
}

// ancillaryKindFor reports the ancillary kind a bare protocol number
// implies, absent any explicit ancillary value.
func ancillaryKindFor(proto Protocol) ServiceKind {
	switch proto {
	case ProtocolTCP, ProtocolUDP:
		return ServiceKindPort
	case ProtocolICMP:
		return ServiceKindICMP
	default:
		return ServiceKindNone
	}
}

// Protocol returns the service's protocol.
func (s IpService) Protocol() Protocol { return s.proto }

// Kind reports which ancillary field, if any, is populated.
func (s IpService) Kind() ServiceKind { return s.kind }

// Port returns the service's port. It returns ErrServiceKindMismatch if
// the service does not carry a port.
func (s IpService) Port() (Port, error) {
	if s.kind != ServiceKindPort {
		return 0, fmt.Errorf("flowspace: service %s has no port: %w", s, ErrServiceKindMismatch)
	}
	return s.port, nil
}

// ICMPType returns the service's ICMP type. It returns
// ErrServiceKindMismatch if the service does not carry one.
func (s IpService) ICMPType() (IcmpType, error) {
	if s.kind != ServiceKindICMP {
		return 0, fmt.Errorf("flowspace: service %s has no ICMP type: %w", s, ErrServiceKindMismatch)
	}
	return s.icmp, nil
}

// String formats the service as "<protocol>" or "<protocol>:<ancillary>".
func (s IpService) String() string {
	switch s.kind {
	case ServiceKindPort:
		return fmt.Sprintf("%s:%s", s.proto, s.port)
	case ServiceKindICMP:
		return fmt.Sprintf("%s:%s", s.proto, s.icmp)
	default:
		return s.proto.String()
	}
}

// ParseService parses "<protocol>" or "<protocol>:<ancillary>", where
// ancillary is a Port for TCP/UDP, an IcmpType for ICMP, and must be
// absent for any other protocol.
func ParseService(s string) (IpService, error) {
	protoPart, ancPart, hasAnc := strings.Cut(s, ":")
	proto, err := ParseProtocol(protoPart)
	if err != nil {
		return IpService{}, fmt.Errorf("flowspace: invalid service %q: %w", s, err)
	}
	kind := ancillaryKindFor(proto)
	if !hasAnc {
		if kind != ServiceKindNone {
			return IpService{}, fmt.Errorf("flowspace: invalid service %q: %s requires an ancillary value", s, proto)
		}
		return NewIpService(proto), nil
	}
	switch kind {
	case ServiceKindPort:
		port, err := ParsePort(ancPart)
		if err != nil {
			return IpService{}, fmt.Errorf("flowspace: invalid service %q: %w", s, err)
		}
		return NewIpServicePort(proto, port), nil
	case ServiceKindICMP:
		t, err := ParseIcmpType(ancPart)
		if err != nil {
			return IpService{}, fmt.Errorf("flowspace: invalid service %q: %w", s, err)
		}
		return NewIpServiceICMP(proto, t), nil
	default:
		return IpService{}, fmt.Errorf("flowspace: invalid service %q: %s does not take an ancillary value", s, proto)
	}
}
