// Package tree provides read-only traversal and search over any node tree.
//
// All searches are pre-order depth-first. A nil root is an empty tree.
package tree

// Node is a tree node that lists its ordered children.
type Node[T any] interface {
	comparable
	ChildNodes() []T
}

// Parented is a Node that also knows its parent and its position among siblings.
// ParentNode returns the zero value for a root.
type Parented[T any] interface {
	Node[T]
	ParentNode() T
	SiblingIndex() int
}

// Walk visits root and its descendants in pre-order. Returning false from visit
// skips that node's children.
func Walk[T Node[T]](root T, visit func(T) bool) {
	var zero T
	if root == zero {
		return
	}
	if !visit(root) {
		return
	}
	for _, c := range root.ChildNodes() {
		Walk(c, visit)
	}
}

// Visit is Walk with a leave callback, called after a node's children. leave
// is not called for nodes whose enter returned false. A nil leave is allowed.
func Visit[T Node[T]](root T, enter func(T) bool, leave func(T)) {
	var zero T
	if root == zero {
		return
	}
	if !enter(root) {
		return
	}
	for _, c := range root.ChildNodes() {
		Visit(c, enter, leave)
	}
	if leave != nil {
		leave(root)
	}
}

// Find returns the first node, root included, that matches pred.
func Find[T Node[T]](root T, pred func(T) bool) (T, bool) {
	var zero T
	if root == zero {
		return zero, false
	}
	if pred(root) {
		return root, true
	}
	for _, c := range root.ChildNodes() {
		if n, ok := Find(c, pred); ok {
			return n, true
		}
	}
	return zero, false
}

// FindAll returns every node, root included, that matches pred in document order.
func FindAll[T Node[T]](root T, pred func(T) bool) []T {
	var out []T
	Walk(root, func(n T) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Descendants lists every node below root in pre-order.
func Descendants[T Node[T]](root T) []T {
	var zero T
	if root == zero {
		return nil
	}
	var out []T
	for _, c := range root.ChildNodes() {
		Walk(c, func(n T) bool {
			out = append(out, n)
			return true
		})
	}
	return out
}

// ChildrenWhere returns the direct children of n that match pred.
func ChildrenWhere[T Node[T]](n T, pred func(T) bool) []T {
	var zero T
	if n == zero {
		return nil
	}
	var out []T
	for _, c := range n.ChildNodes() {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// Ancestors lists the parents of n, nearest first.
func Ancestors[T Parented[T]](n T) []T {
	var zero T
	if n == zero {
		return nil
	}
	var out []T
	for p := n.ParentNode(); p != zero; p = p.ParentNode() {
		out = append(out, p)
	}
	return out
}

// FindAncestor returns the nearest parent of n that matches pred.
func FindAncestor[T Parented[T]](n T, pred func(T) bool) (T, bool) {
	var zero T
	if n == zero {
		return zero, false
	}
	for p := n.ParentNode(); p != zero; p = p.ParentNode() {
		if pred(p) {
			return p, true
		}
	}
	return zero, false
}

// PrevSibling returns the sibling immediately before n.
func PrevSibling[T Parented[T]](n T) (T, bool) {
	return sibling(n, -1)
}

// NextSibling returns the sibling immediately after n.
func NextSibling[T Parented[T]](n T) (T, bool) {
	return sibling(n, 1)
}

func sibling[T Parented[T]](n T, delta int) (T, bool) {
	var zero T
	if n == zero {
		return zero, false
	}
	p := n.ParentNode()
	if p == zero {
		return zero, false
	}
	kids := p.ChildNodes()
	i := n.SiblingIndex() + delta
	if i < 0 || i >= len(kids) {
		return zero, false
	}
	return kids[i], true
}

// Path returns the nodes from the root down to n, both included.
func Path[T Parented[T]](n T) []T {
	var zero T
	if n == zero {
		return nil
	}
	anc := Ancestors(n)
	out := make([]T, 0, len(anc)+1)
	for i := len(anc) - 1; i >= 0; i-- {
		out = append(out, anc[i])
	}
	return append(out, n)
}
