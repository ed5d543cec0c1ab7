package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// Decider assigns a boundary strength to the break immediately following a
// word. The base implementation (BaseDecider) always returns BoundSyllable;
// language-specific implementations fill in PWORD/PPHRASE decisions (§4.8).
type Decider func(t *doc.Tree, word doc.NodeRef) Boundary

// BaseDecider is the language-agnostic default: leave boundaries at
// SYLLABLE, letting ProsStructGen's sentence-initial/break-coalescing
// machinery run with no further promotion.
func BaseDecider(t *doc.Tree, word doc.NodeRef) Boundary { return BoundSyllable }

// ProsStructGen inserts/updates "break strength=…" between words (§4.8).
// Any break element already present when this stage starts is user-supplied
// and is marked "fixed" so it is never weakened by a later promotion.
func ProsStructGen(t *doc.Tree, decide Decider, logger zerolog.Logger) {
	logger.Trace().Str("stage", "ProsStructGen").Msg("enter")

	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElBreak {
			if _, ok := t.GetAttr(ref, "fixed"); !ok {
				t.SetAttr(ref, "fixed", "true")
			}
		}
		return false
	}, nil)

	var sentences []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElS {
			sentences = append(sentences, ref)
			return true
		}
		return false
	}, nil)

	for _, s := range sentences {
		processSentenceProsody(t, s, decide)
	}

	logger.Trace().Str("stage", "ProsStructGen").Int("sentences", len(sentences)).Msg("leave")
}

func processSentenceProsody(t *doc.Tree, s doc.NodeRef, decide Decider) {
	children := t.Children(s)
	var firstWord doc.NodeRef
	for _, c := range children {
		if t.Name(c) == ElW {
			firstWord = c
			break
		}
	}
	if firstWord == doc.NilRef {
		return
	}

	if prev := t.PrevSibling(firstWord); !(prev != doc.NilRef && t.Name(prev) == ElBreak) {
		br := t.NewElement(ElBreak)
		t.SetAttr(br, "strength", BoundSentence.String())
		t.InsertBefore(firstWord, br)
	}

	children = dedupeBreaks(t, t.Children(s))

	for i, c := range children {
		if t.Name(c) != ElW {
			continue
		}
		wanted := decide(t, c)

		var nextBreak doc.NodeRef
		if i+1 < len(children) && t.Name(children[i+1]) == ElBreak {
			nextBreak = children[i+1]
		}

		if nextBreak == doc.NilRef {
			br := t.NewElement(ElBreak)
			t.SetAttr(br, "strength", wanted.String())
			t.InsertAfter(c, br)
			continue
		}

		if fixed, _ := t.GetAttr(nextBreak, "fixed"); fixed == "true" {
			continue
		}
		cur, _ := t.GetAttr(nextBreak, "strength")
		curB, ok := ParseBoundary(cur)
		if !ok || wanted > curB {
			t.SetAttr(nextBreak, "strength", wanted.String())
		}
	}
}

func dedupeBreaks(t *doc.Tree, children []doc.NodeRef) []doc.NodeRef {
	var out []doc.NodeRef
	for _, c := range children {
		if t.Name(c) == ElBreak && len(out) > 0 && t.Name(out[len(out)-1]) == ElBreak {
			out[len(out)-1] = mergeBreaks(t, out[len(out)-1], c)
			continue
		}
		out = append(out, c)
	}
	return out
}

func mergeBreaks(t *doc.Tree, a, b doc.NodeRef) doc.NodeRef {
	aStr, _ := t.GetAttr(a, "strength")
	bStr, _ := t.GetAttr(b, "strength")
	ab, _ := ParseBoundary(aStr)
	bb, _ := ParseBoundary(bStr)
	aFixed, _ := t.GetAttr(a, "fixed")
	bFixed, _ := t.GetAttr(b, "fixed")

	strongest := ab
	if bb > strongest {
		strongest = bb
	}
	keep, drop := a, b
	if bFixed == "true" && aFixed != "true" {
		keep, drop = b, a
	}
	t.SetAttr(keep, "strength", strongest.String())
	if aFixed == "true" || bFixed == "true" {
		t.SetAttr(keep, "fixed", "true")
	}
	t.Remove(drop)
	return keep
}
