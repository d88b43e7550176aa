package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// SyntaxError is a lexical or syntax error recorded in a Tree.
type SyntaxError struct {
	Pos   Pos
	Range TextRange
	Msg   string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Builder assembles a Tree bottom-up from a stream of start/token/finish
// calls. Tokens must be supplied in source order; their text becomes the
// tree's text. The parser drives a Builder, and tests use it to craft trees
// the parser would never produce.
type Builder struct {
	tree   *Tree
	text   strings.Builder
	offset TextSize
	stack  []frame
	errors []SyntaxError
}

type frame struct {
	kind     SyntaxKind
	start    TextSize
	children []edge
}

// Checkpoint marks a position among the children of the currently open
// node. StartNodeAt uses it to wrap children that were already added.
type Checkpoint struct {
	depth  int
	index  int
	offset TextSize
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{tree: &Tree{root: noParent}}
}

// Offset returns the end offset of the text added so far.
func (b *Builder) Offset() TextSize {
	return b.offset
}

// StartNode opens a node of the given kind as the last child of the
// currently open node.
func (b *Builder) StartNode(kind SyntaxKind) {
	if !kind.IsNode() && kind != ERROR {
		panic(fmt.Sprintf("syntax: %s is not a node kind", kind))
	}
	b.stack = append(b.stack, frame{kind: kind, start: b.offset})
}

// Token adds a token to the currently open node.
func (b *Builder) Token(kind SyntaxKind, text string) {
	if len(b.stack) == 0 {
		panic("syntax: token added outside of any node")
	}
	if !kind.IsToken() || kind == EOF {
		panic(fmt.Sprintf("syntax: %s is not a token kind", kind))
	}
	id := len(b.tree.tokens)
	end := b.offset + TextSize(len(text))
	b.tree.tokens = append(b.tree.tokens, tokenData{
		kind:   kind,
		rng:    TextRangeFromTo(b.offset, end),
		parent: noParent,
	})
	b.text.WriteString(text)
	b.offset = end

	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, edge{token: true, id: int32(id)})
}

// FinishNode closes the most recently opened node.
func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		panic("syntax: FinishNode without StartNode")
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	id := nodeID(len(b.tree.nodes))
	b.tree.nodes = append(b.tree.nodes, nodeData{
		kind:   f.kind,
		rng:    TextRangeFromTo(f.start, b.offset),
		parent: noParent,
		first:  int32(len(b.tree.edges)),
		count:  int32(len(f.children)),
	})
	b.tree.edges = append(b.tree.edges, f.children...)
	for _, c := range f.children {
		if c.token {
			b.tree.tokens[c.id].parent = id
		} else {
			b.tree.nodes[c.id].parent = id
		}
	}

	if len(b.stack) == 0 {
		if b.tree.root != noParent {
			panic("syntax: tree has more than one root")
		}
		b.tree.root = id
		return
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, edge{id: int32(id)})
}

// Checkpoint returns a checkpoint at the current end of the open node.
func (b *Builder) Checkpoint() Checkpoint {
	if len(b.stack) == 0 {
		panic("syntax: checkpoint outside of any node")
	}
	return Checkpoint{
		depth:  len(b.stack),
		index:  len(b.stack[len(b.stack)-1].children),
		offset: b.offset,
	}
}

// StartNodeAt opens a node of the given kind that adopts every child added
// to the open node since cp was taken.
func (b *Builder) StartNodeAt(cp Checkpoint, kind SyntaxKind) {
	if cp.depth != len(b.stack) {
		panic("syntax: checkpoint belongs to another node")
	}
	top := &b.stack[len(b.stack)-1]
	if cp.index > len(top.children) {
		panic("syntax: stale checkpoint")
	}
	adopted := append([]edge(nil), top.children[cp.index:]...)
	top.children = top.children[:cp.index]
	b.stack = append(b.stack, frame{kind: kind, start: cp.offset, children: adopted})
}

// Error records an error covering rng.
func (b *Builder) Error(msg string, rng TextRange) {
	b.errors = append(b.errors, SyntaxError{Range: rng, Msg: msg})
}

// Finish completes the tree. Every started node must have been finished
// and exactly one root must exist.
func (b *Builder) Finish(filename string) *Tree {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("syntax: %d unfinished nodes", len(b.stack)))
	}
	if b.tree.root == noParent {
		panic("syntax: empty tree")
	}

	t := b.tree
	b.tree = &Tree{root: noParent}

	t.filename = filename
	t.text = b.text.String()
	t.lines = NewLineIndex(filename, t.text)

	sort.SliceStable(b.errors, func(i, j int) bool {
		return b.errors[i].Range.Start() < b.errors[j].Range.Start()
	})
	for i := range b.errors {
		b.errors[i].Pos = t.lines.Pos(b.errors[i].Range.Start())
	}
	t.errors = b.errors
	b.errors = nil
	return t
}
