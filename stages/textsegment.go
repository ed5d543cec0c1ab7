package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// TextSegment splits every text node outside an opaque element (§3.2's
// w/break/say-as/phoneme/sub) into a sequence of plain-text pieces
// interleaved with "say-as" punctuation markers (§4.4).
func TextSegment(t *doc.Tree, logger zerolog.Logger) {
	logger.Trace().Str("stage", "TextSegment").Msg("enter")

	var textNodes []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindText {
			textNodes = append(textNodes, ref)
			return false
		}
		if t.Kind(ref) == doc.KindElement && opaqueElements[t.Name(ref)] {
			return true // skip subtree: already one unit
		}
		return false
	}, nil)

	for _, node := range textNodes {
		pieces := segmentText(t.Content(node))
		for _, piece := range pieces {
			var newNode doc.NodeRef
			if piece.interpretAs != "" {
				sayAs := t.NewElement(ElSayAs)
				t.SetAttr(sayAs, "interpret-as", piece.interpretAs)
				if piece.format != "" {
					t.SetAttr(sayAs, "format", piece.format)
				}
				if piece.detail != "" {
					t.SetAttr(sayAs, "detail", piece.detail)
				}
				t.AppendChild(sayAs, t.NewText(piece.text))
				newNode = sayAs
			} else {
				newNode = t.NewText(piece.text)
			}
			t.InsertBefore(node, newNode)
		}
		t.Remove(node)
	}

	logger.Trace().Str("stage", "TextSegment").Int("texts", len(textNodes)).Msg("leave")
}

type textPiece struct {
	text        string
	interpretAs string
	format      string
	detail      string
}

// segmentText implements §4.4's punctuation scan. Unlike the reference
// implementation's stray reuse of the loop-scoped offset for the final
// piece (spec.md §9 Open Questions), the trailing text here is always the
// full remaining suffix after the last punctuation match.
func segmentText(input string) []textPiece {
	var pieces []textPiece
	remaining := []rune(input)

	for len(remaining) > 0 {
		start, length, ok := detectPunctuation(remaining)
		if !ok {
			break
		}
		if start != 0 {
			pieces = append(pieces, textPiece{text: string(remaining[:start])})
		}
		if length != 0 {
			symbol := remaining[start : start+length]
			interpretAs, format, detail := detectFormat(symbol)
			pieces = append(pieces, textPiece{text: string(symbol), interpretAs: interpretAs, format: format, detail: detail})
		}
		remaining = remaining[start+length:]
	}

	if len(remaining) > 0 {
		pieces = append(pieces, textPiece{text: string(remaining)})
	}
	return pieces
}
