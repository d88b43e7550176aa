package syntax

import (
	"fmt"
	"iter"
)

// ----------------------------------------------------------------------------
// Arena
//
// A Tree stores every node and token in flat slices addressed by index.
// Handles (Node, Token, Element) are small comparable values: a pointer to
// the tree plus an index. A finished tree is never modified, so any number of
// goroutines may query it at the same time.

type nodeID int32

type tokenID int32

const noParent nodeID = -1

type nodeData struct {
	kind   SyntaxKind
	rng    TextRange
	parent nodeID
	first  int32 // index of the first child in Tree.edges
	count  int32 // number of children
}

type tokenData struct {
	kind   SyntaxKind
	rng    TextRange
	parent nodeID
}

// edge is one child slot of a node: either a node or a token.
type edge struct {
	token bool
	id    int32
}

// Tree is an immutable, lossless syntax tree together with the text it was
// built from and the errors found while building it.
type Tree struct {
	filename string
	text     string
	nodes    []nodeData
	tokens   []tokenData
	edges    []edge
	root     nodeID
	errors   []SyntaxError
	lines    *LineIndex
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: t.root}
}

// Text returns the full source text. It equals the concatenation of the
// text of all tokens in the tree.
func (t *Tree) Text() string {
	return t.text
}

// Filename returns the name the tree was parsed under, possibly "".
func (t *Tree) Filename() string {
	return t.filename
}

// Errors returns the lexical and syntax errors recorded while building the
// tree, in source order.
func (t *Tree) Errors() []SyntaxError {
	return t.errors
}

// LineIndex returns the line index of the source text.
func (t *Tree) LineIndex() *LineIndex {
	return t.lines
}

// Pos returns the line/column position of offset.
func (t *Tree) Pos(offset TextSize) Pos {
	return t.lines.Pos(offset)
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// TokenCount returns the number of tokens in the tree, trivia included.
func (t *Tree) TokenCount() int {
	return len(t.tokens)
}

// ----------------------------------------------------------------------------
// Node

// Node is a handle to an interior node of a Tree.
// The zero Node refers to no tree; check with IsValid.
type Node struct {
	tree *Tree
	id   nodeID
}

// IsValid reports whether n refers to a node.
func (n Node) IsValid() bool {
	return n.tree != nil
}

func (n Node) data() *nodeData {
	return &n.tree.nodes[n.id]
}

// Tree returns the tree n belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns the grammar kind of n.
func (n Node) Kind() SyntaxKind {
	return n.data().kind
}

// TextRange returns the range of source text n spans.
func (n Node) TextRange() TextRange {
	return n.data().rng
}

// Text returns the source text n spans, trivia inside n included.
func (n Node) Text() string {
	return n.data().rng.Slice(n.tree.text)
}

// Parent returns the parent of n. The root has no parent.
func (n Node) Parent() (Node, bool) {
	p := n.data().parent
	if p == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

func (n Node) edges() []edge {
	d := n.data()
	return n.tree.edges[d.first : d.first+d.count]
}

func (n Node) element(e edge) Element {
	if e.token {
		return Element{token: Token{tree: n.tree, id: tokenID(e.id)}}
	}
	return Element{node: Node{tree: n.tree, id: nodeID(e.id)}}
}

// ChildrenWithTokens returns all children of n, nodes and tokens
// interleaved in source order.
func (n Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, e := range n.edges() {
			if !yield(n.element(e)) {
				return
			}
		}
	}
}

// Children returns the child nodes of n in source order, skipping tokens.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, e := range n.edges() {
			if e.token {
				continue
			}
			if !yield(Node{tree: n.tree, id: nodeID(e.id)}) {
				return
			}
		}
	}
}

// FirstChildOrToken returns the first child of n, node or token.
func (n Node) FirstChildOrToken() (Element, bool) {
	edges := n.edges()
	if len(edges) == 0 {
		return Element{}, false
	}
	return n.element(edges[0]), true
}

// FirstChild returns the first child node of n.
func (n Node) FirstChild() (Node, bool) {
	for c := range n.Children() {
		return c, true
	}
	return Node{}, false
}

// Descendants returns n and all nodes below it in preorder.
func (n Node) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		n.descend(yield)
	}
}

func (n Node) descend(yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !c.descend(yield) {
			return false
		}
	}
	return true
}

// Tokens returns all tokens below n in source order, trivia included.
func (n Node) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		n.tokensOf(yield)
	}
}

func (n Node) tokensOf(yield func(Token) bool) bool {
	for e := range n.ChildrenWithTokens() {
		if tok, ok := e.AsToken(); ok {
			if !yield(tok) {
				return false
			}
			continue
		}
		if !e.node.tokensOf(yield) {
			return false
		}
	}
	return true
}

// String formats n as "KIND@[start; end)".
func (n Node) String() string {
	if !n.IsValid() {
		return "<invalid node>"
	}
	return fmt.Sprintf("%s@%s", n.Kind(), n.TextRange())
}

// ----------------------------------------------------------------------------
// Token

// Token is a handle to a leaf of a Tree.
// The zero Token refers to no tree; check with IsValid.
type Token struct {
	tree *Tree
	id   tokenID
}

// IsValid reports whether t refers to a token.
func (t Token) IsValid() bool {
	return t.tree != nil
}

func (t Token) data() *tokenData {
	return &t.tree.tokens[t.id]
}

// Kind returns the lexical kind of t.
func (t Token) Kind() SyntaxKind {
	return t.data().kind
}

// TextRange returns the range of source text t spans.
func (t Token) TextRange() TextRange {
	return t.data().rng
}

// Text returns the raw source text of t.
func (t Token) Text() string {
	return t.data().rng.Slice(t.tree.text)
}

// Parent returns the node that owns t.
func (t Token) Parent() Node {
	return Node{tree: t.tree, id: t.data().parent}
}

// String formats t as "KIND@[start; end) "text"".
func (t Token) String() string {
	if !t.IsValid() {
		return "<invalid token>"
	}
	return fmt.Sprintf("%s@%s %q", t.Kind(), t.TextRange(), t.Text())
}

// ----------------------------------------------------------------------------
// Element

// Element is either a Node or a Token.
type Element struct {
	node  Node
	token Token
}

// IsToken reports whether e holds a token.
func (e Element) IsToken() bool {
	return e.token.IsValid()
}

// AsNode returns the node held by e.
func (e Element) AsNode() (Node, bool) {
	return e.node, e.node.IsValid()
}

// AsToken returns the token held by e.
func (e Element) AsToken() (Token, bool) {
	return e.token, e.token.IsValid()
}

// Kind returns the kind of the node or token held by e.
func (e Element) Kind() SyntaxKind {
	if e.IsToken() {
		return e.token.Kind()
	}
	return e.node.Kind()
}

// TextRange returns the range of the node or token held by e.
func (e Element) TextRange() TextRange {
	if e.IsToken() {
		return e.token.TextRange()
	}
	return e.node.TextRange()
}

// String formats the node or token held by e.
func (e Element) String() string {
	if e.IsToken() {
		return e.token.String()
	}
	return e.node.String()
}
