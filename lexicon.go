package flowspace

import (
	"errors"
	"fmt"
	"strings"
)

// Lexicon is a bidirectional map between a numeric value and a set of
// case-insensitive names, one of which is primary. Parsing accepts any
// registered name; formatting uses the primary name.
//
// The zero Lexicon is empty and ready to use. Lexicons are built once
// via LexiconBuilder and then used read-only; there is no synchronization
// because the library has no cross-goroutine contract.
type Lexicon struct {
	byValue   map[uint64]string            // value -> primary name
	byNameVal map[string]uint64            // lowercased name -> value
	aliases   map[uint64][]string          // value -> all names, primary first
}

// Name returns the primary name registered for value, if any.
func (l *Lexicon) Name(value uint64) (string, bool) {
	if l == nil {
		return "", false
	}
	name, ok := l.byValue[value]
	return name, ok
}

// Value looks up a name (case-insensitive) and returns its value.
func (l *Lexicon) Value(name string) (uint64, bool) {
	if l == nil {
		return 0, false
	}
	v, ok := l.byNameVal[strings.ToLower(name)]
	return v, ok
}

// Names returns every registered name for value, primary first.
func (l *Lexicon) Names(value uint64) []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.aliases[value]...)
}

// ErrLexiconConflict is returned by LexiconBuilder.Register when a name
// is already bound to a different value.
var ErrLexiconConflict = errors.New("flowspace: lexicon name already bound to a different value")

// LexiconBuilder incrementally constructs a Lexicon through a mutable
// builder interface; the finished Lexicon returned by Build is
// immutable.
type LexiconBuilder struct {
	l Lexicon
}

// NewLexiconBuilder returns an empty builder.
func NewLexiconBuilder() *LexiconBuilder {
	return &LexiconBuilder{l: Lexicon{
		byValue:   map[uint64]string{},
		byNameVal: map[string]uint64{},
		aliases:   map[uint64][]string{},
	}}
}

// Register binds value to primary (the name used for formatting) and
// any number of additional aliases (all accepted for parsing). If value
// already has a primary name, that name stays primary and the new names
// are added as aliases. It is a hard failure to register a name already
// bound to a different value.
func (b *LexiconBuilder) Register(value uint64, primary string, aliases ...string) error {
	names := append([]string{primary}, aliases...)
	for _, n := range names {
		key := strings.ToLower(n)
		if existing, ok := b.l.byNameVal[key]; ok && existing != value {
			return fmt.Errorf("flowspace: register %q for %d: %w (bound to %d)", n, value, ErrLexiconConflict, existing)
		}
	}
	if _, ok := b.l.byValue[value]; !ok {
		b.l.byValue[value] = primary
	}
	for _, n := range names {
		b.l.byNameVal[strings.ToLower(n)] = value
	}
	b.l.aliases[value] = append(b.l.aliases[value], names...)
	return nil
}

// Build returns the finished, read-only Lexicon.
func (b *LexiconBuilder) Build() *Lexicon {
	out := Lexicon{
		byValue:   make(map[uint64]string, len(b.l.byValue)),
		byNameVal: make(map[string]uint64, len(b.l.byNameVal)),
		aliases:   make(map[uint64][]string, len(b.l.aliases)),
	}
	for k, v := range b.l.byValue {
		out.byValue[k] = v
	}
	for k, v := range b.l.byNameVal {
		out.byNameVal[k] = v
	}
	for k, v := range b.l.aliases {
		out.aliases[k] = append([]string(nil), v...)
	}
	return &out
}

// mustBuildDefault panics on the first registration conflict; used only
// for the package's own default tables, which are known-good at compile
// time. It is not exported and never runs on user input.
func mustBuildDefault(entries []struct {
	value   uint64
	primary string
	aliases []string
}) *Lexicon {
	b := NewLexiconBuilder()
	for _, e := range entries {
		if err := b.Register(e.value, e.primary, e.aliases...); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

// DefaultIcmpLexicon holds the default ICMP type names.
var DefaultIcmpLexicon = mustBuildDefault([]struct {
	value   uint64
	primary string
	aliases []string
}{
	{0, "ECHO_REPLY", nil},
	{3, "UNREACHABLE", nil},
	{4, "SOURCE_QUENCH", nil},
	{5, "REDIRECT", nil},
	{6, "ALTERNATE_ADDRESS", nil},
	{8, "ECHO", nil},
	{9, "ROUTER_ADVERTISEMENT", nil},
	{10, "ROUTER_SOLICITATION", nil},
	{11, "TIME_EXCEEDED", nil},
	{12, "PARAMETER_PROBLEM", nil},
	{13, "TIME_STAMP_REQUEST", nil},
	{14, "TIME_STAMP_REPLY", nil},
	{15, "INFO_REQUEST", nil},
	{16, "INFO_REPLY", nil},
	{17, "ADDR_MASK_REQUEST", nil},
	{18, "ADDR_MASK_REPLY", nil},
	{30, "TRACEROUTE", nil},
	{31, "CONVERSION_ERROR", nil},
	{32, "MOBILE_REDIRECT", nil},
})

// DefaultProtocolLexicon holds the default protocol names.
var DefaultProtocolLexicon = mustBuildDefault([]struct {
	value   uint64
	primary string
	aliases []string
}{
	{1, "ICMP", nil},
	{2, "IGMP", nil},
	{6, "TCP", nil},
	{17, "UDP", nil},
	{47, "GRE", nil},
	{50, "ESP", nil},
	{51, "AH", nil},
	{56, "ICMP6", nil},
	{89, "OSPF", nil},
	{103, "PIM", nil},
	{256, "IP", nil},
})

// DefaultPortLexicon holds the default port names.
var DefaultPortLexicon = mustBuildDefault([]struct {
	value   uint64
	primary string
	aliases []string
}{
	{21, "FTP", nil},
	{22, "SSH", nil},
	{23, "TELNET", nil},
	{25, "SMTP", nil},
	{53, "DNS", nil},
	{80, "HTTP", nil},
	{123, "NTP", nil},
	{161, "SNMP", nil},
	{443, "HTTPS", nil},
	{500, "ISAKMP", nil},
})
