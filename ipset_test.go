package flowspace

import (
	"reflect"
	"testing"
)

func mustAddr(t *testing.T, s string) Addr {
	t.Helper()
	a, err := ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return a
}

func rangeOf(t *testing.T, lo, hi string) Interval[Addr] {
	t.Helper()
	return NewInterval(mustAddr(t, lo), mustAddr(t, hi))
}

func TestIpSetRanges(t *testing.T) {
	tests := []struct {
		name string
		f    func(t *testing.T, s *IpSet)
		want []Interval[Addr]
	}{
		{
			name: "remove_32",
			f: func(t *testing.T, s *IpSet) {
				s.AddRange(rangeOf(t, "10.0.0.0", "10.255.255.255"))
				s.Remove(mustAddr(t, "10.1.2.3"))
			},
			want: []Interval[Addr]{
				rangeOf(t, "10.0.0.0", "10.1.2.2"),
				rangeOf(t, "10.1.2.4", "10.255.255.255"),
			},
		},
		{
			name: "merge_adjacent",
			f: func(t *testing.T, s *IpSet) {
				s.AddRange(rangeOf(t, "10.0.0.0", "10.255.255.255"))
				s.AddRange(rangeOf(t, "11.0.0.0", "11.255.255.255"))
			},
			want: []Interval[Addr]{rangeOf(t, "10.0.0.0", "11.255.255.255")},
		},
		{
			name: "add_dup",
			f: func(t *testing.T, s *IpSet) {
				s.AddRange(rangeOf(t, "10.0.0.0", "10.255.255.255"))
				s.AddRange(rangeOf(t, "10.0.0.0", "10.255.255.255"))
			},
			want: []Interval[Addr]{rangeOf(t, "10.0.0.0", "10.255.255.255")},
		},
		{
			name: "remove_then_add",
			f: func(t *testing.T, s *IpSet) {
				s.Remove(mustAddr(t, "1.2.3.4")) // no-op
				s.Add(mustAddr(t, "1.2.3.4"))
			},
			want: []Interval[Addr]{Point(mustAddr(t, "1.2.3.4"))},
		},
		{
			name: "single_ips",
			f: func(t *testing.T, s *IpSet) {
				for _, o := range []byte{0, 1, 2, 3, 4} {
					s.Add(AddrFromOctets(10, 0, 0, o))
				}
				s.Remove(AddrFromOctets(10, 0, 0, 4))
				s.Add(AddrFromOctets(10, 0, 0, 255))
			},
			want: []Interval[Addr]{
				rangeOf(t, "10.0.0.0", "10.0.0.3"),
				Point(AddrFromOctets(10, 0, 0, 255)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s IpSet
			tt.f(t, &s)
			got := s.Ranges()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ranges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIpSetContains(t *testing.T) {
	var s IpSet
	s.AddRange(rangeOf(t, "10.0.0.0", "10.0.0.10"))
	tests := []struct {
		addr string
		want bool
	}{
		{"9.255.255.255", false},
		{"10.0.0.0", true},
		{"10.0.0.5", true},
		{"10.0.0.10", true},
		{"10.0.0.11", false},
	}
	for _, tt := range tests {
		if got := s.Contains(mustAddr(t, tt.addr)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestIpSetIsMemberExactRange(t *testing.T) {
	var s IpSet
	s.AddRange(rangeOf(t, "10.0.0.0", "10.0.0.10"))
	s.AddRange(rangeOf(t, "10.0.1.0", "10.0.1.5"))

	if !s.IsMember(rangeOf(t, "10.0.0.0", "10.0.0.10")) {
		t.Error("IsMember(exact stored range) = false, want true")
	}
	if s.IsMember(rangeOf(t, "10.0.0.0", "10.0.0.5")) {
		t.Error("IsMember(sub-range of a stored range) = true, want false")
	}
	if s.IsMember(rangeOf(t, "10.0.2.0", "10.0.2.10")) {
		t.Error("IsMember(range never added) = true, want false")
	}
}

func TestIpSetCalcOverlap(t *testing.T) {
	var s IpSet
	s.AddRange(rangeOf(t, "10.0.0.0", "10.0.0.5"))
	s.AddRange(rangeOf(t, "10.0.1.0", "10.0.1.5"))

	got := s.CalcOverlap(rangeOf(t, "10.0.0.3", "10.0.1.2"))
	want := []Interval[Addr]{
		rangeOf(t, "10.0.0.3", "10.0.0.5"),
		rangeOf(t, "10.0.1.0", "10.0.1.2"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CalcOverlap() = %v, want %v", got, want)
	}
}

func TestIpSetContainsFuncSnapshot(t *testing.T) {
	var s IpSet
	s.AddRange(rangeOf(t, "10.0.0.0", "10.0.0.5"))
	contains := s.ContainsFunc()
	s.AddRange(rangeOf(t, "10.0.1.0", "10.0.1.5"))
	if contains(mustAddr(t, "10.0.1.2")) {
		t.Error("ContainsFunc snapshot observed a mutation made after it was taken")
	}
	if !contains(mustAddr(t, "10.0.0.2")) {
		t.Error("ContainsFunc snapshot missing a member present when it was taken")
	}
}

func TestIpSetNetworks(t *testing.T) {
	var s IpSet
	s.AddRange(rangeOf(t, "10.0.0.5", "10.0.0.10"))
	got := s.Networks()
	if len(got) != 4 {
		t.Fatalf("Networks() = %v, want 4 networks", got)
	}
	var covered IpSet
	for _, n := range got {
		covered.AddRange(n.Range())
	}
	want := []Interval[Addr]{rangeOf(t, "10.0.0.5", "10.0.0.10")}
	if got := covered.Ranges(); !reflect.DeepEqual(got, want) {
		t.Errorf("networks union = %v, want %v", got, want)
	}
}
