package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/foeb/mun/internal/syntax"
)

// RenderOptions control Render.
type RenderOptions struct {
	Color bool // colorize the text format
}

// Render writes reports to w in the given format: "text", "table", "json"
// or "yaml".
func Render(w io.Writer, format string, reports []Report, opts RenderOptions) error {
	switch format {
	case "text", "":
		return renderText(w, reports, opts)
	case "table":
		return renderTable(w, reports)
	case "json":
		return renderJSON(w, reports)
	case "yaml":
		return renderYAML(w, reports)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// ----------------------------------------------------------------------------
// Text

type palette struct {
	pos, class, note, caret, err *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		pos:   color.New(color.Bold),
		class: color.New(color.FgCyan),
		note:  color.New(color.FgYellow),
		caret: color.New(color.FgGreen, color.Bold),
		err:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.pos, p.class, p.note, p.caret, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// renderText prints each fact as a position line followed by the source
// line with the focus underlined:
//
//	a.mun:2:5: binary Add
//	    a + b
//	      ^
func renderText(w io.Writer, reports []Report, opts RenderOptions) error {
	p := newPalette(opts.Color)
	for _, r := range reports {
		for _, d := range r.Errors {
			if _, err := fmt.Fprintf(w, "%s: %s %s\n", p.pos.Sprint(d.Pos), p.err.Sprint("error:"), d.Msg); err != nil {
				return err
			}
		}
		for _, f := range r.Facts {
			class := f.Class
			if class == "" {
				class = "?"
			}
			line := fmt.Sprintf("%s: %s %s", p.pos.Sprint(f.Pos), f.Production, p.class.Sprint(class))
			if f.Note != "" {
				line += " " + p.note.Sprintf("(%s)", f.Note)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			if r.tree != nil {
				src, marks := underline(r.tree, syntax.TextSize(f.FocusStart), syntax.TextSize(f.FocusEnd))
				if _, err := fmt.Fprintf(w, "    %s\n    %s\n", src, p.caret.Sprint(marks)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// underline returns the source line holding start and a line of carets
// under [start, end), clipped to that line. An empty range gets a single
// caret.
func underline(t *syntax.Tree, start, end syntax.TextSize) (string, string) {
	text := t.Text()
	li := t.LineIndex()
	pos := li.Pos(start)
	lr, ok := li.LineRange(pos.Line(), text)
	if !ok {
		return "", "^"
	}
	line := lr.Slice(text)

	if end > lr.End() {
		end = lr.End()
	}
	if end < start {
		end = start
	}
	var b strings.Builder
	for _, r := range text[lr.Start():start] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	n := len([]rune(text[start:end]))
	if n == 0 {
		n = 1
	}
	b.WriteString(strings.Repeat("^", n))
	return line, b.String()
}

// ----------------------------------------------------------------------------
// Table

func renderTable(w io.Writer, reports []Report) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Position", "Production", "Class", "Text", "Note"})

	rows := 0
	for _, r := range reports {
		for _, d := range r.Errors {
			t.AppendRow(table.Row{d.Pos, "error", "", "", d.Msg})
			rows++
		}
		for _, f := range r.Facts {
			t.AppendRow(table.Row{f.Pos, f.Production, f.Class, oneLine(f.Text), f.Note})
			rows++
		}
	}

	if rows == 0 {
		_, err := fmt.Fprintln(w, "(0 facts)")
		return err
	}
	t.Render()
	return nil
}

// oneLine shortens multi-line text to its first line.
func oneLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

// ----------------------------------------------------------------------------
// JSON and YAML

func renderJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func renderYAML(w io.Writer, reports []Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}
