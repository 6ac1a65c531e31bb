package mdast

import "github.com/dgallion1/doclint/internal/tree"

// OfType matches nodes whose type is any of types.
func OfType(types ...NodeType) func(*Node) bool {
	return func(n *Node) bool {
		for _, t := range types {
			if n.Type == t {
				return true
			}
		}
		return false
	}
}

// First returns the first node of the given type in document order.
func First(root *Node, t NodeType) (*Node, bool) {
	return tree.Find(root, OfType(t))
}

// All returns every node of the given types in document order.
func All(root *Node, types ...NodeType) []*Node {
	return tree.FindAll(root, OfType(types...))
}

// Index maps node ids to nodes for id-based lookups.
func Index(root *Node) map[string]*Node {
	idx := make(map[string]*Node)
	tree.Walk(root, func(n *Node) bool {
		idx[n.ID] = n
		return true
	})
	return idx
}

// FrontMatterNode returns the spliced front matter node, if any.
func FrontMatterNode(root *Node) (*Node, bool) {
	if root == nil || len(root.Children) == 0 || root.Children[0].Type != FrontMatter {
		return nil, false
	}
	return root.Children[0], true
}
