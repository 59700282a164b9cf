package flowspace

// rbcolor is a red-black node color.
type rbcolor int8

const (
	black rbcolor = iota
	red
)

// rbNode is one node of an augmented red-black tree keyed by a Metric
// value (a dimension's interval minimum). payload is opaque to the
// tree; flowspace layers use it to hold the node's inner map of
// (upper bound, value) entries, whose values are client payloads at a
// leaf layer and nested layers at an upper layer. hull is the union of every
// interval reachable in the node's own entry and its subtree, kept
// current by updateHull after every structural change, rippling the
// hull recomputation up to the root.
//
// Grounded on go.etcd.io/etcd/pkg/v3/adt's intervalNode: same sentinel
// convention, same rotate/fixup shapes, generalized from a single
// tracked max to a full Interval hull and from adt.Comparable to the
// package's Metric[T] constraint.
type rbNode[T Metric[T]] struct {
	metric  T
	own     Interval[T] // this node's own entry span, ignoring its subtree
	hull    Interval[T] // own ∪ left.hull ∪ right.hull
	payload any

	left, right, parent *rbNode[T]
	next                *rbNode[T] // threaded in-order successor
	color               rbcolor
}

// rbTree is a sentinel-based augmented red-black tree. The zero value
// is not usable; use newRBTree.
type rbTree[T Metric[T]] struct {
	root     *rbNode[T]
	sentinel *rbNode[T]
	count    int
}

func newRBTree[T Metric[T]]() *rbTree[T] {
	s := &rbNode[T]{color: black}
	s.left, s.right, s.parent = s, s, s
	return &rbTree[T]{root: s, sentinel: s}
}

func (t *rbTree[T]) Len() int { return t.count }

func (n *rbNode[T]) color_(sentinel *rbNode[T]) rbcolor {
	if n == sentinel {
		return black
	}
	return n.color
}

// min descends to the left-most (smallest metric) node of the subtree
// rooted at n.
func (n *rbNode[T]) min(sentinel *rbNode[T]) *rbNode[T] {
	for n.left != sentinel {
		n = n.left
	}
	return n
}

// entryHull returns the interval a node's own entry contributes to the
// hull, ignoring its subtree.
func (n *rbNode[T]) entryHull() Interval[T] { return n.own }

// updateHull recomputes n's hull from its own entry span (as reported
// afresh by ownSpan, since a leaf's own span can change independently
// of tree structure, e.g. a flowspace layer's inner map gaining a
// wider entry) and its children's hulls, then ripples upward while the
// value actually changes, matching updateMax in the etcd tree but
// folding a full interval instead of a single endpoint.
func (n *rbNode[T]) updateHull(sentinel *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	for n != sentinel {
		oldHull := n.hull
		n.own = ownSpan(n)
		h := n.own
		if n.left != sentinel {
			h = h.Hull(n.left.hull)
		}
		if n.right != sentinel {
			h = h.Hull(n.right.hull)
		}
		if h.Equal(oldHull) {
			return
		}
		n.hull = h
		n = n.parent
	}
}

func (t *rbTree[T]) rotateLeft(x *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	if x.right == t.sentinel {
		return
	}
	y := x.right
	x.right = y.left
	if y.left != t.sentinel {
		y.left.parent = x
	}
	x.updateHull(t.sentinel, ownSpan)
	t.replaceParent(x, y)
	y.left = x
	y.updateHull(t.sentinel, ownSpan)
}

func (t *rbTree[T]) rotateRight(x *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	if x.left == t.sentinel {
		return
	}
	y := x.left
	x.left = y.right
	if y.right != t.sentinel {
		y.right.parent = x
	}
	x.updateHull(t.sentinel, ownSpan)
	t.replaceParent(x, y)
	y.right = x
	y.updateHull(t.sentinel, ownSpan)
}

func (t *rbTree[T]) replaceParent(x, y *rbNode[T]) {
	y.parent = x.parent
	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	x.parent = y
}

// find locates the node with metric == v, or the sentinel.
func (t *rbTree[T]) find(v T) *rbNode[T] {
	x := t.root
	for x != t.sentinel {
		switch c := v.Compare(x.metric); {
		case c < 0:
			x = x.left
		case c > 0:
			x = x.right
		default:
			return x
		}
	}
	return t.sentinel
}

// insert places a new node keyed by v, threading it between its
// in-order predecessor and successor, and returns it. If a node with
// that metric already exists, it is returned unchanged and created is
// false. ownSpan computes a node's own-entry hull contribution; the
// caller must call refreshOwn whenever an existing node's
// own span changes.
func (t *rbTree[T]) insert(v T, ownSpan func(*rbNode[T]) Interval[T]) (n *rbNode[T], created bool) {
	if existing := t.find(v); existing != t.sentinel {
		return existing, false
	}

	y := t.sentinel
	x := t.root
	for x != t.sentinel {
		y = x
		if v.Compare(x.metric) < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}

	z := &rbNode[T]{metric: v, color: red, left: t.sentinel, right: t.sentinel, parent: y}
	z.own = ownSpan(z)
	z.hull = z.own

	if y == t.sentinel {
		t.root = z
	} else if v.Compare(y.metric) < 0 {
		y.left = z
	} else {
		y.right = z
	}
	t.linkThread(z)
	if y != t.sentinel {
		y.updateHull(t.sentinel, ownSpan)
	}

	t.insertFixup(z, ownSpan)
	t.count++
	return z, true
}

// linkThread splices a freshly inserted leaf z into the next_inorder
// chain between its in-order predecessor and successor, found from
// tree structure alone (the thread itself is not yet consistent for
// z's position).
func (t *rbTree[T]) linkThread(z *rbNode[T]) {
	pred := t.treePredecessor(z)
	succ := t.treeSuccessor(z)
	if succ == t.sentinel {
		z.next = nil
	} else {
		z.next = succ
	}
	if pred != t.sentinel {
		pred.next = z
	}
}

func (t *rbTree[T]) treeSuccessor(z *rbNode[T]) *rbNode[T] {
	if z.right != t.sentinel {
		return z.right.min(t.sentinel)
	}
	y := z.parent
	x := z
	for y != t.sentinel && x == y.right {
		x = y
		y = y.parent
	}
	return y
}

func (t *rbTree[T]) treePredecessor(z *rbNode[T]) *rbNode[T] {
	if z.left != t.sentinel {
		n := z.left
		for n.right != t.sentinel {
			n = n.right
		}
		return n
	}
	y := z.parent
	x := z
	for y != t.sentinel && x == y.left {
		x = y
		y = y.parent
	}
	return y
}

func (t *rbTree[T]) insertFixup(z *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	for z.parent.color_(t.sentinel) == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if y.color_(t.sentinel) == red {
				y.color = black
				z.parent.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z, ownSpan)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.rotateRight(z.parent.parent, ownSpan)
			}
		} else {
			y := z.parent.parent.left
			if y.color_(t.sentinel) == red {
				y.color = black
				z.parent.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z, ownSpan)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.rotateLeft(z.parent.parent, ownSpan)
			}
		}
	}
	t.root.color = black
}

// remove deletes the node with metric v, retargeting the threaded
// predecessor's next pointer, and reports whether a node was removed.
func (t *rbTree[T]) remove(v T, ownSpan func(*rbNode[T]) Interval[T]) bool {
	z := t.find(v)
	if z == t.sentinel {
		return false
	}

	pred := t.treePredecessor(z)
	succInThread := z.next

	y := z
	yOriginalColor := y.color_(t.sentinel)
	var x *rbNode[T]

	if z.left == t.sentinel {
		x = z.right
		t.transplant(z, z.right)
	} else if z.right == t.sentinel {
		x = z.left
		t.transplant(z, z.left)
	} else {
		y = z.right.min(t.sentinel)
		yOriginalColor = y.color_(t.sentinel)
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
		y.updateHull(t.sentinel, ownSpan)
	}

	if x.parent != t.sentinel {
		x.parent.updateHull(t.sentinel, ownSpan)
	}

	if pred != t.sentinel {
		pred.next = succInThread
	}

	if yOriginalColor == black {
		t.deleteFixup(x, ownSpan)
	}
	t.count--
	return true
}

func (t *rbTree[T]) transplant(u, v *rbNode[T]) {
	if u.parent == t.sentinel {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

func (t *rbTree[T]) deleteFixup(x *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	for x != t.root && x.color_(t.sentinel) == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color_(t.sentinel) == red {
				w.color = black
				x.parent.color = red
				t.rotateLeft(x.parent, ownSpan)
				w = x.parent.right
			}
			if w.left.color_(t.sentinel) == black && w.right.color_(t.sentinel) == black {
				w.color = red
				x = x.parent
			} else {
				if w.right.color_(t.sentinel) == black {
					w.left.color = black
					w.color = red
					t.rotateRight(w, ownSpan)
					w = x.parent.right
				}
				w.color = x.parent.color_(t.sentinel)
				x.parent.color = black
				w.right.color = black
				t.rotateLeft(x.parent, ownSpan)
				x = t.root
			}
		} else {
			w := x.parent.left
			if w.color_(t.sentinel) == red {
				w.color = black
				x.parent.color = red
				t.rotateRight(x.parent, ownSpan)
				w = x.parent.left
			}
			if w.right.color_(t.sentinel) == black && w.left.color_(t.sentinel) == black {
				w.color = red
				x = x.parent
			} else {
				if w.left.color_(t.sentinel) == black {
					w.right.color = black
					w.color = red
					t.rotateLeft(w, ownSpan)
					w = x.parent.left
				}
				w.color = x.parent.color_(t.sentinel)
				x.parent.color = black
				w.left.color = black
				t.rotateRight(x.parent, ownSpan)
				x = t.root
			}
		}
	}
	x.color = black
}

// refreshOwn recomputes n's own span via ownSpan and ripples the hull
// update to the root. Callers use this after mutating a node's own
// entry (e.g. a leaf layer's inner map gaining or losing a bound)
// without changing the tree's structure.
func (t *rbTree[T]) refreshOwn(n *rbNode[T], ownSpan func(*rbNode[T]) Interval[T]) {
	n.updateHull(t.sentinel, ownSpan)
}

// visit calls nv on every node whose hull intersects query, pruning
// subtrees whose hull does not, descending left first.
func (t *rbTree[T]) visit(query Interval[T], nv func(*rbNode[T]) bool) bool {
	return t.visitNode(t.root, query, nv)
}

func (t *rbTree[T]) visitNode(x *rbNode[T], query Interval[T], nv func(*rbNode[T]) bool) bool {
	if x == t.sentinel {
		return true
	}
	if !x.hull.HasIntersection(query) {
		return true
	}
	if !t.visitNode(x.left, query, nv) {
		return false
	}
	if x.entryHull().HasIntersection(query) {
		if !nv(x) {
			return false
		}
	}
	return t.visitNode(x.right, query, nv)
}

// firstIntersecting returns the left-most node whose own entry
// intersects query, or nil.
func (t *rbTree[T]) firstIntersecting(query Interval[T]) *rbNode[T] {
	var found *rbNode[T]
	t.visit(query, func(n *rbNode[T]) bool {
		found = n
		return false
	})
	return found
}
