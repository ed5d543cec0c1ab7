package stages

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// UnitSegment aligns each word's phoneme string back to surface graphemes,
// emitting one "unit" child per syllable (§4.10). Pass 1 splits the phoneme
// string on "/" and on whitespace into raw (undivided) syllables; the
// per-syllable initial/final/tone decomposition (pass 2, §4.12.3) is left to
// Synthesize, matching the original implementation's division of labor.
// Erhua retroflection folds a following "儿"/"兒" grapheme into the current
// unit instead of starting a new one, when the current syllable's own Pinyin
// ends in "r" (and isn't exactly "er") — the same test as the original's
// isRetroflex, not a grapheme/syllable count proxy. If syllables outlast
// graphemes, the trailing syllables still get their own unit, with empty
// text (§3.6 invariant 4, §8.3); if graphemes outlast syllables, the
// surplus is appended onto the last unit's text rather than spawning
// phoneme-less units of their own. Only a word whose ph yields no syllable
// at all gets a single unit carrying the text and no "syl" attribute.
func UnitSegment(t *doc.Tree, logger zerolog.Logger) {
	logger.Trace().Str("stage", "UnitSegment").Msg("enter")

	var words []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElW {
			words = append(words, ref)
			return true
		}
		return false
	}, nil)

	for _, w := range words {
		segmentUnits(t, w)
	}

	logger.Trace().Str("stage", "UnitSegment").Int("words", len(words)).Msg("leave")
}

func segmentUnits(t *doc.Tree, w doc.NodeRef) {
	phNode := findChildByName(t, w, ElPhoneme)
	textChild := findChildKind(t, w, doc.KindText)
	if phNode == doc.NilRef || textChild == doc.NilRef {
		return
	}

	ph, _ := t.GetAttr(phNode, "ph")
	if ph == "" {
		return
	}
	syllables := strings.FieldsFunc(ph, func(r rune) bool { return r == '/' || unicode.IsSpace(r) })
	graphemes := doc.Graphemes(t.Content(textChild))

	gi := 0
	var lastUnit doc.NodeRef = doc.NilRef
	for _, syl := range syllables {
		if syl == "" {
			continue
		}

		var text string
		if gi < len(graphemes) {
			consumed := 1
			if isErhuaSyllable(syl) && gi+1 < len(graphemes) && isErhuaSuffix(graphemes[gi+1]) {
				consumed = 2
			}
			if gi+consumed > len(graphemes) {
				consumed = len(graphemes) - gi
			}
			text = strings.Join(graphemes[gi:gi+consumed], "")
			gi += consumed
		}
		// else: more syllables than graphemes; this unit carries no surface text.

		unit := t.NewElement(ElUnit)
		t.SetAttr(unit, "text", text)
		t.SetAttr(unit, "syl", syl)
		t.AppendChild(w, unit)
		lastUnit = unit
	}

	if gi < len(graphemes) {
		surplus := strings.Join(graphemes[gi:], "")
		if lastUnit != doc.NilRef {
			existing, _ := t.GetAttr(lastUnit, "text")
			t.SetAttr(lastUnit, "text", existing+surplus)
		} else {
			unit := t.NewElement(ElUnit)
			t.SetAttr(unit, "text", surplus)
			t.AppendChild(w, unit)
		}
	}
}

func isErhuaSuffix(g string) bool {
	return g == "儿" || g == "兒"
}

// isErhuaSyllable reports whether syl's own Pinyin ends in the retroflex
// "r" (ignoring its tone digit), matching the original's isRetroflex check.
// "er" itself is excluded: its trailing "r" belongs to the syllable, not to
// a following Erhua suffix.
func isErhuaSyllable(syl string) bool {
	s := syl
	if n := len(s); n > 0 && s[n-1] >= '0' && s[n-1] <= '9' {
		s = s[:n-1]
	}
	return strings.HasSuffix(s, "r") && s != "er"
}
