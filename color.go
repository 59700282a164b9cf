package flowspace

import "go4.org/intern"

// Color is a client-defined tag attached to a paint map segment. It
// must support additive composition (Blend/Unblend), equality
// (coalescing), and a total order (segment bookkeeping never needs it,
// but many client color types are naturally ordered, and requiring it
// costs nothing).
type Color interface {
	Add(Color) Color
	Sub(Color) Color
	Equal(Color) bool
	Less(Color) bool
}

// ColorHandle is a shared reference to a Color value. Paint map
// segments hold a *ColorHandle rather than a Color directly: several
// segments may share the same handle, and comparing handles for
// equality is a pointer comparison rather than a call into the
// client's Equal method, because the handle is interned by go4.org/intern —
// two handles wrapping Color values that are == in Go share the same
// *intern.Value. Color.Equal is not consulted.
type ColorHandle struct {
	v *intern.Value
}

// internKey wraps a Color so that it can be used as a comparable
// intern.Get key: intern.Get requires its argument be usable as a Go
// map key, which an arbitrary Color interface value backed by a
// non-comparable concrete type would not be. internKey stores the
// color behind a pointer-free comparable wrapper only when the
// concrete Color type is itself comparable; callers with
// non-comparable color types should intern manually via NewColorHandle
// with a stable identity object instead.
type internKey struct {
	c Color
}

// NewColor interns c and returns a handle to it. Each call allocates a
// new *ColorHandle; two calls with equal (in the Go == sense, once
// boxed in internKey) colors return handles whose Equal reports true.
func NewColor(c Color) *ColorHandle {
	return &ColorHandle{v: intern.Get(internKey{c})}
}

// Value returns the underlying Color.
func (h *ColorHandle) Value() Color {
	if h == nil {
		return nil
	}
	return h.v.Get().(internKey).c
}

// Equal reports whether h and o denote the same interned color. This
// is a pointer comparison, not a call to Color.Equal — coalescing
// relies on this being fast and never allocating.
func (h *ColorHandle) Equal(o *ColorHandle) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.v == o.v
}

// Less orders handles by their underlying Color, for callers (e.g.
// deterministic test output) that need a total order over colors in a
// map. It is not used by PaintMap's own invariants, which only need
// Equal.
func (h *ColorHandle) Less(o *ColorHandle) bool {
	if h == nil {
		return o != nil
	}
	if o == nil {
		return false
	}
	return h.Value().Less(o.Value())
}

// Add returns the interned handle for h's color plus o's color.
func (h *ColorHandle) Add(o *ColorHandle) *ColorHandle {
	return NewColor(h.Value().Add(o.Value()))
}

// Sub returns the interned handle for h's color minus o's color.
func (h *ColorHandle) Sub(o *ColorHandle) *ColorHandle {
	return NewColor(h.Value().Sub(o.Value()))
}
