package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree below node to w, one element
// per line:
//
//	BIN_EXPR@[0; 5)
//	  PATH_EXPR@[0; 1)
//	    NAME_REF@[0; 1)
//	      IDENT@[0; 1) "a"
//	  WHITESPACE@[1; 2) " "
//	  ...
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintErrors writes the errors of t, one per line, as "pos: msg".
func FprintErrors(w io.Writer, t *Tree) {
	for i := range t.errors {
		fmt.Fprintln(w, t.errors[i].Error())
	}
}

// Dump returns the dump Fprint would write.
func Dump(node Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if !node.IsValid() {
		return
	}

	p.printf("%s\n", node)
	p.indent++
	for e := range node.ChildrenWithTokens() {
		if n, ok := e.AsNode(); ok {
			p.print(n)
			continue
		}
		p.printf("%s\n", e)
	}
	p.indent--
}
