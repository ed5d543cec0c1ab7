package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/lexicon"
)

// WordSegment performs forward-maximum-match against the lexicon over every
// text/sub/phoneme piece inside each "s" not already inside a "w" (§4.7).
// Pieces already wrapped in "w" keep their POS; a bare "phoneme" is wrapped
// in a synthesized "w"; a "sub" whose role was already classified upstream
// (TextNormalize) is wrapped verbatim rather than re-segmented.
func WordSegment(t *doc.Tree, lex lexicon.Lexicon, logger zerolog.Logger) {
	logger.Trace().Str("stage", "WordSegment").Msg("enter")

	var sentences []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElS {
			sentences = append(sentences, ref)
			return true // direct children only; this stage owns the layout
		}
		return false
	}, nil)

	for _, s := range sentences {
		segmentSentence(t, s, lex, logger)
	}

	logger.Trace().Str("stage", "WordSegment").Int("sentences", len(sentences)).Msg("leave")
}

func segmentSentence(t *doc.Tree, s doc.NodeRef, lex lexicon.Lexicon, logger zerolog.Logger) {
	for _, child := range t.Children(s) {
		switch {
		case t.Kind(child) == doc.KindElement && t.Name(child) == ElW:
			continue // already a word, POS kept as-is

		case t.Kind(child) == doc.KindElement && t.Name(child) == ElBreak:
			continue

		case t.Kind(child) == doc.KindElement && t.Name(child) == ElPhoneme:
			w := t.NewElement(ElW)
			t.SetAttr(w, "role", "x")
			t.InsertBefore(child, w)
			t.Unlink(child)
			t.AppendChild(w, child)

		case t.Kind(child) == doc.KindElement && t.Name(child) == ElSub:
			role, _ := t.GetAttr(child, "role")
			alias, _ := t.GetAttr(child, "alias")
			if role != "" && role != "x" {
				w := t.NewElement(ElW)
				t.SetAttr(w, "role", role)
				t.InsertBefore(child, w)
				t.Unlink(child)
				t.AppendChild(w, child)
				continue
			}
			words := forwardMatch(lex, alias)
			for _, wm := range words {
				w := t.NewElement(ElW)
				t.SetAttr(w, "role", wm.pos)
				t.AppendChild(w, t.NewText(wm.text))
				t.InsertBefore(child, w)
			}
			t.Remove(child)

		case t.Kind(child) == doc.KindText:
			words := forwardMatch(lex, t.Content(child))
			for _, wm := range words {
				w := t.NewElement(ElW)
				t.SetAttr(w, "role", wm.pos)
				t.AppendChild(w, t.NewText(wm.text))
				t.InsertBefore(child, w)
			}
			t.Remove(child)
		}
	}
}

type wordMatch struct {
	text string
	pos  string
}

// forwardMatch is the exact algorithm of
// original_source/.../wdseg_wordsegment.cpp's forwardMatch: repeatedly take
// the longest prefix (capped at the lexicon's max word length) that matches a
// lexicon entry, shrinking by one character until a match is found or only
// one character remains (unknown-character fallback, POS "x").
func forwardMatch(lex lexicon.Lexicon, text string) []wordMatch {
	runes := []rune(text)
	maxWordLen := lex.WordMaxLen()
	if maxWordLen <= 0 {
		maxWordLen = 1
	}

	var out []wordMatch
	lastPos := 0
	for lastPos < len(runes) {
		curLen := len(runes) - lastPos
		if curLen > maxWordLen {
			curLen = maxWordLen
		}
		piece := runes[lastPos : lastPos+curLen]

		var entries []lexicon.Entry
		for len(piece) >= 1 {
			e, err := lex.LookupWord(string(piece))
			if err == nil && len(e) > 0 {
				entries = e
				break
			}
			piece = piece[:len(piece)-1]
		}

		if len(entries) > 0 {
			out = append(out, wordMatch{text: string(piece), pos: entries[0].POS})
			lastPos += len(piece)
		} else {
			out = append(out, wordMatch{text: string(runes[lastPos : lastPos+1]), pos: "x"})
			lastPos++
		}
	}
	return out
}
