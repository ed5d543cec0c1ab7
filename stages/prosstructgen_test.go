package stages

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/doc"
)

func buildSentence(t *doc.Tree, words ...string) doc.NodeRef {
	s := t.NewElement(ElS)
	for _, w := range words {
		el := t.NewElement(ElW)
		t.AppendChild(el, t.NewText(w))
		t.AppendChild(s, el)
	}
	return s
}

func TestProsStructGenInsertsSentenceInitialBreak(t *testing.T) {
	tr := doc.NewTree()
	speak := tr.NewElement(ElSpeak)
	tr.AppendChild(tr.Root(), speak)
	s := buildSentence(tr, "你好", "世界")
	tr.AppendChild(speak, s)

	ProsStructGen(tr, BaseDecider, zerolog.Nop())

	children := tr.Children(s)
	require.Equal(t, ElBreak, tr.Name(children[0]))
	strength, _ := tr.GetAttr(children[0], "strength")
	require.Equal(t, "x-strong", strength)
}

func TestProsStructGenPreservesFixedBreak(t *testing.T) {
	tr := doc.NewTree()
	speak := tr.NewElement(ElSpeak)
	tr.AppendChild(tr.Root(), speak)
	s := buildSentence(tr, "你好", "世界")
	tr.AppendChild(speak, s)

	words := tr.Children(s)
	userBreak := tr.NewElement(ElBreak)
	tr.SetAttr(userBreak, "strength", "weak")
	tr.InsertAfter(words[0], userBreak)

	ProsStructGen(tr, BaseDecider, zerolog.Nop())

	strength, _ := tr.GetAttr(userBreak, "strength")
	require.Equal(t, "weak", strength, "a pre-existing break must never be weakened or promoted")
	fixed, _ := tr.GetAttr(userBreak, "fixed")
	require.Equal(t, "true", fixed)
}

func TestDedupeBreaksMergesAdjacent(t *testing.T) {
	tr := doc.NewTree()
	a := tr.NewElement(ElBreak)
	tr.SetAttr(a, "strength", "weak")
	b := tr.NewElement(ElBreak)
	tr.SetAttr(b, "strength", "strong")

	out := dedupeBreaks(tr, []doc.NodeRef{a, b})
	require.Len(t, out, 1)
	strength, _ := tr.GetAttr(out[0], "strength")
	require.Equal(t, "strong", strength)
}
