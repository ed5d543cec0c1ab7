// Package debugdump prints document trees and rendered HTS labels for
// interactive inspection while developing or diagnosing the pipeline. It is
// never on the hot path of Process/Synthesize.
package debugdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/k0kubun/pp"

	"github.com/thuhcsi/crystal-tts/doc"
)

// Tree writes an indented, colorized rendering of t to w: elements in cyan
// with their attributes, text nodes in the default color, quoted.
func Tree(w io.Writer, t *doc.Tree) {
	dumpNode(w, t, t.Root(), 0)
}

func dumpNode(w io.Writer, t *doc.Tree, ref doc.NodeRef, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t.Kind(ref) {
	case doc.KindElement:
		attrs := t.Attrs(ref)
		var b strings.Builder
		for _, a := range attrs {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		fmt.Fprintf(w, "%s%s\n", indent, color.Cyan.Sprintf("<%s%s>", t.Name(ref), b.String()))
	case doc.KindText:
		fmt.Fprintf(w, "%s%q\n", indent, t.Content(ref))
	default:
		fmt.Fprintf(w, "%s%s\n", indent, color.Gray.Sprintf("(%s)", t.Kind(ref)))
	}
	for _, c := range t.Children(ref) {
		dumpNode(w, t, c, depth+1)
	}
}

// Value pretty-prints any Go value (a *hmm.SegInfo slice, a lexicon.Entry,
// and so on) with field names, for ad hoc inspection during development.
func Value(v interface{}) string {
	return pp.Sprint(v)
}

// Labels writes one colorized line per rendered HTS label, numbering them
// so a long sentence's segment stream is easy to scan.
func Labels(w io.Writer, lines []string) {
	for i, l := range lines {
		fmt.Fprintf(w, "%s %s\n", color.Yellow.Sprintf("%4d", i), l)
	}
}
