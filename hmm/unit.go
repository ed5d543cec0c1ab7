// Package hmm builds HTS-style context labels from the annotated document
// tree (§4.12) and synthesizes them through a pluggable HMM engine (§6.3).
// The label construction — buildContext's drop-through boundary cascade and
// buildLabInfo's segment expansion and ASCII rendering — is ported from
// CSSML2Lab in original_source/engine/ttschinese/synth.hts/hts_ssml2lab.cpp,
// matching its field layout and context-chaining algorithm exactly.
package hmm

import "github.com/thuhcsi/crystal-tts/stages"

// UnitItem is one syllable-level unit of a sentence, read off the document
// tree's "unit" elements (or a synthetic "_pause"/"_break" symbol token).
type UnitItem struct {
	Phoneme      string          // raw Pinyin syllable (e.g. "zhong1"), or a "_"-prefixed symbol token
	BoundaryType stages.Boundary // boundary strength immediately following this unit
}

// isBreak reports whether this unit's trailing boundary should emit a
// literal "sil" segment into the label stream: every boundary at or above
// prosodic-phrase strength does, mirroring buildLabInfo's "add sil for all
// boundaries except lexicon/prosodic word" rule.
func (u UnitItem) isBreak() bool {
	return u.BoundaryType >= stages.BoundPPhrase
}
