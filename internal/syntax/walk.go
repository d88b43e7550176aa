package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a syntax tree in depth-first order, starting at node.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if !node.IsValid() || !v(node) {
		return
	}
	for c := range node.Children() {
		Walk(c, v)
	}
}

// Inspect traverses a syntax tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// WalkElements traverses a syntax tree in depth-first order and calls f for
// every node and every token, trivia included.
// If f returns false for a node, its children are not visited.
func WalkElements(node Node, f func(Element) bool) {
	if !node.IsValid() || !f(Element{node: node}) {
		return
	}
	for e := range node.ChildrenWithTokens() {
		if n, ok := e.AsNode(); ok {
			WalkElements(n, f)
			continue
		}
		f(e)
	}
}
