package flowspace

import "testing"

func TestAddrRoundTrip(t *testing.T) {
	tests := []string{"0.0.0.0", "192.0.2.3", "255.255.255.255", "10.1.2.3"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			a, err := ParseAddr(s)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.String(); got != s {
				t.Errorf("String() = %q, want %q", got, s)
			}
		})
	}
}

func TestAddrBareInteger(t *testing.T) {
	a, err := ParseAddr("16909060") // 1.2.3.4
	if err != nil {
		t.Fatal(err)
	}
	if want := AddrFromOctets(1, 2, 3, 4); a != want {
		t.Errorf("ParseAddr(bare int) = %v, want %v", a, want)
	}
}

func TestAddrNetworkOrderRoundTrip(t *testing.T) {
	a := AddrFromOctets(192, 0, 2, 1)
	if got := AddrFromNetworkOrder(a.ToNetworkOrder()); got != a {
		t.Errorf("network-order round trip = %v, want %v", got, a)
	}
}

func TestAddrIncDecWrap(t *testing.T) {
	var a Addr
	if a.Min().Dec() != a.Max() {
		t.Error("Min.Dec() should wrap to Max")
	}
	if a.Max().Inc() != a.Min() {
		t.Error("Max.Inc() should wrap to Min")
	}
}

func TestMaskRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "8", "24", "32"} {
		m, err := ParseMask(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestMaskFromOctetForm(t *testing.T) {
	m, err := ParseMask("255.255.255.0")
	if err != nil {
		t.Fatal(err)
	}
	if m != 24 {
		t.Errorf("ParseMask(octet form) = %v, want 24", m)
	}
}

func TestMaskFromBitsRejectsNoncontiguous(t *testing.T) {
	if _, err := MaskFromBits(AddrFromOctets(255, 0, 255, 0)); err == nil {
		t.Error("expected error for non-contiguous mask")
	}
}

func TestPortRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1024", "65535"} {
		p, err := ParsePort(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestPortNamedAlias(t *testing.T) {
	p, err := ParsePort("HTTP")
	if err != nil {
		t.Fatal(err)
	}
	if p != 80 {
		t.Errorf("ParsePort(HTTP) = %v, want 80", p)
	}
	if got := p.String(); got != "HTTP" {
		t.Errorf("String() = %q, want %q", got, "HTTP")
	}
}

func TestProtocolIPSentinel(t *testing.T) {
	p, err := ParseProtocol("IP")
	if err != nil {
		t.Fatal(err)
	}
	if p != ProtocolIP {
		t.Errorf("ParseProtocol(IP) = %v, want %v", p, ProtocolIP)
	}
	if p.Max() != ProtocolIP {
		t.Errorf("Protocol.Max() = %v, want %v", p.Max(), ProtocolIP)
	}
}

func TestProtocolNamedRoundTrip(t *testing.T) {
	p, err := ParseProtocol("TCP")
	if err != nil {
		t.Fatal(err)
	}
	if p != ProtocolTCP {
		t.Errorf("ParseProtocol(TCP) = %v, want %v", p, ProtocolTCP)
	}
	if got := p.String(); got != "TCP" {
		t.Errorf("String() = %q, want TCP", got)
	}
}

func TestIcmpTypeRoundTrip(t *testing.T) {
	tp, err := ParseIcmpType("ECHO")
	if err != nil {
		t.Fatal(err)
	}
	if tp != 8 {
		t.Errorf("ParseIcmpType(ECHO) = %v, want 8", tp)
	}
	if got := tp.String(); got != "ECHO" {
		t.Errorf("String() = %q, want ECHO", got)
	}
}

func TestIcmpTypeBareNumber(t *testing.T) {
	tp, err := ParseIcmpType("200")
	if err != nil {
		t.Fatal(err)
	}
	if got := tp.String(); got != "200" {
		t.Errorf("String() = %q, want 200 (no lexicon entry)", got)
	}
}
