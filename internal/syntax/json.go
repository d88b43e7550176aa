package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the tree below node to w.
// Nodes carry "kind", "range", "pos" and "children"; tokens carry "kind",
// "range" and "text".
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if !node.IsValid() {
		return nil
	}

	children := make([]interface{}, 0)
	for e := range node.ChildrenWithTokens() {
		if n, ok := e.AsNode(); ok {
			children = append(children, toJSON(n))
			continue
		}
		tok, _ := e.AsToken()
		children = append(children, map[string]interface{}{
			"kind":  tok.Kind().String(),
			"range": rangeJSON(tok.TextRange()),
			"text":  tok.Text(),
		})
	}

	return map[string]interface{}{
		"kind":     node.Kind().String(),
		"range":    rangeJSON(node.TextRange()),
		"pos":      node.Tree().Pos(node.TextRange().Start()).String(),
		"children": children,
	}
}

func rangeJSON(r TextRange) []TextSize {
	return []TextSize{r.Start(), r.End()}
}
