package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// Expander plugs a specialized say-as expansion into TextNormalize: given the
// interpret-as/format/detail attributes and the say-as's text, it returns the
// spoken-form alias and a POS hint for the downstream segmenter. Returning
// ok=false falls back to the identity expansion (§4.6's base contract).
type Expander func(interpretAs, format, detail, text string) (alias, pos string, ok bool)

// DefaultExpanders covers the punctuation say-as produced by TextSegment: a
// sentence/paragraph terminator's spoken form is a short pause marker, with
// POS "w" (punctuation word class) so WordSegment treats it as already
// classified rather than running forward-match over it.
var DefaultExpanders = []Expander{expandPunctuation}

func expandPunctuation(interpretAs, format, _, text string) (string, string, bool) {
	if interpretAs != "punctuation" {
		return "", "", false
	}
	switch format {
	case "p":
		return "_pause", "w", true
	case "s":
		return "_break", "w", true
	default:
		return "", "", false
	}
}

// TextNormalize expands each say-as into a sub alias=... element (§4.6). The
// base fallback is alias=original text, POS="x"; expanders may override both.
func TextNormalize(t *doc.Tree, expanders []Expander, logger zerolog.Logger) {
	logger.Trace().Str("stage", "TextNormalize").Msg("enter")

	var sayAsNodes []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElSayAs {
			sayAsNodes = append(sayAsNodes, ref)
			return true // contents are one unit, not recursed into further
		}
		return false
	}, nil)

	for _, sayAs := range sayAsNodes {
		textChild := findChildKind(t, sayAs, doc.KindText)
		if textChild == doc.NilRef {
			continue
		}
		original := t.Content(textChild)
		interpretAs, _ := t.GetAttr(sayAs, "interpret-as")
		format, _ := t.GetAttr(sayAs, "format")
		detail, _ := t.GetAttr(sayAs, "detail")

		alias, pos := original, "x"
		for _, exp := range expanders {
			if a, p, ok := exp(interpretAs, format, detail, original); ok {
				alias, pos = a, p
				break
			}
		}

		sub := t.NewElement(ElSub)
		t.SetAttr(sub, "alias", alias)
		// "role" carries the POS noted for the downstream segmenter (§4.6);
		// WordSegment treats anything other than the base "x" as already
		// classified and skips forward-matching it.
		t.SetAttr(sub, "role", pos)
		t.AppendChild(sub, t.NewText(original))
		t.InsertBefore(sayAs, sub)
		t.Remove(sayAs)
	}

	logger.Trace().Str("stage", "TextNormalize").Int("expanded", len(sayAsNodes)).Msg("leave")
}

func findChildKind(t *doc.Tree, parent doc.NodeRef, kind doc.Kind) doc.NodeRef {
	for _, c := range t.Children(parent) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return doc.NilRef
}
