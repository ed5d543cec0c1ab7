package hmm

import (
	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/stages"
)

// CollectSentenceUnits reads one "s" element's "w"/"unit"/"break" children
// into a flat UnitItem list (§4.12.2). A unit's BoundaryType is the
// strength of the break immediately following it: every unit but a word's
// last carries BoundSyllable (no break element can appear mid-word); a
// word's last unit is promoted to at least BoundLWord, since crossing a "w"
// boundary is always at least a lexicon-word boundary even when
// ProsStructGen left the following break at its "none" default.
func CollectSentenceUnits(t *doc.Tree, sentence doc.NodeRef) []UnitItem {
	var units []UnitItem
	children := t.Children(sentence)

	for i, c := range children {
		if t.Kind(c) != doc.KindElement || t.Name(c) != stages.ElW {
			continue
		}
		unitNodes := wordUnits(t, c)
		for j, u := range unitNodes {
			syl, _ := t.GetAttr(u, "syl")
			boundary := stages.BoundSyllable
			if j == len(unitNodes)-1 {
				boundary = stages.BoundLWord
				if i+1 < len(children) && t.Kind(children[i+1]) == doc.KindElement && t.Name(children[i+1]) == stages.ElBreak {
					if strength, ok := t.GetAttr(children[i+1], "strength"); ok {
						if b, ok := stages.ParseBoundary(strength); ok && b > boundary {
							boundary = b
						}
					}
				}
			}
			units = append(units, UnitItem{Phoneme: syl, BoundaryType: boundary})
		}
	}
	return units
}

func wordUnits(t *doc.Tree, w doc.NodeRef) []doc.NodeRef {
	var out []doc.NodeRef
	for _, c := range t.Children(w) {
		if t.Kind(c) == doc.KindElement && t.Name(c) == stages.ElUnit {
			out = append(out, c)
		}
	}
	return out
}
