package stages

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/lexicon"
	"github.com/thuhcsi/crystal-tts/pinyin"
)

// Grapheme2Phoneme attaches a "phoneme" element to every "w" that doesn't
// already carry one (§4.9). A pre-existing phoneme element came from an
// explicit SSML <phoneme> tag and is left untouched — it is fixed, the same
// way a user-supplied break is fixed in ProsStructGen.
func Grapheme2Phoneme(t *doc.Tree, lex lexicon.Lexicon, logger zerolog.Logger) {
	logger.Trace().Str("stage", "Grapheme2Phoneme").Msg("enter")

	var words []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElW {
			words = append(words, ref)
			return true
		}
		return false
	}, nil)

	for _, w := range words {
		assignPhoneme(t, w, lex, logger)
	}

	logger.Trace().Str("stage", "Grapheme2Phoneme").Int("words", len(words)).Msg("leave")
}

func assignPhoneme(t *doc.Tree, w doc.NodeRef, lex lexicon.Lexicon, logger zerolog.Logger) {
	if existing := findChildByName(t, w, ElPhoneme); existing != doc.NilRef {
		return
	}
	textChild := findChildKind(t, w, doc.KindText)
	if textChild == doc.NilRef {
		return
	}

	surface := t.Content(textChild)
	pos, _ := t.GetAttr(w, "role")
	fallback := fallbackPhoneme(surface)

	ph, err := lex.Phoneme(surface, pos, fallback)
	if err != nil {
		logger.Debug().Str("stage", "Grapheme2Phoneme").Str("surface", surface).Err(err).Msg("lookup failed, using fallback only")
		ph = fallback
	}
	if ph == "" {
		return
	}

	phNode := t.NewElement(ElPhoneme)
	t.SetAttr(phNode, "ph", ph)
	t.SetAttr(phNode, "alphabet", lex.Alphabet())
	t.AppendChild(w, phNode)
}

// fallbackPhoneme romanizes surface via go-pinyin, rendering the raw
// "/"-delimited syllable sequence (e.g. "zhong1/guo2"), used when the
// surface word has no lexicon entry. The raw (undivided) syllable form is
// kept here; decomposing a syllable into initial/final/tone segments is
// UnitSegment and hts's job (§4.12.3), same split as §3.4, applied later.
func fallbackPhoneme(surface string) string {
	return strings.Join(pinyin.Lookup(surface), "/")
}
