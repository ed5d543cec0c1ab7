package hmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/stages"
)

func buildWord(t *doc.Tree, syls ...string) doc.NodeRef {
	w := t.NewElement(stages.ElW)
	for _, syl := range syls {
		u := t.NewElement(stages.ElUnit)
		t.SetAttr(u, "syl", syl)
		t.AppendChild(w, u)
	}
	return w
}

func TestCollectSentenceUnitsPromotesWordBoundary(t *testing.T) {
	tr := doc.NewTree()
	s := tr.NewElement(stages.ElS)
	w1 := buildWord(tr, "zhong1", "guo2")
	tr.AppendChild(s, w1)
	br := tr.NewElement(stages.ElBreak)
	tr.SetAttr(br, "strength", "none")
	tr.AppendChild(s, br)
	w2 := buildWord(tr, "ren2")
	tr.AppendChild(s, w2)
	tr.AppendChild(tr.Root(), s)

	units := CollectSentenceUnits(tr, s)

	require.Len(t, units, 3)
	require.Equal(t, stages.BoundSyllable, units[0].BoundaryType) // mid-word, no break possible
	require.Equal(t, stages.BoundLWord, units[1].BoundaryType)    // last syllable of w1, break left at "none"
	require.Equal(t, stages.BoundLWord, units[2].BoundaryType)    // last (only) syllable of w2, no trailing break
}

func TestCollectSentenceUnitsHonorsStrongerBreak(t *testing.T) {
	tr := doc.NewTree()
	s := tr.NewElement(stages.ElS)
	w1 := buildWord(tr, "ni3")
	tr.AppendChild(s, w1)
	br := tr.NewElement(stages.ElBreak)
	tr.SetAttr(br, "strength", "x-strong")
	tr.AppendChild(s, br)
	tr.AppendChild(tr.Root(), s)

	units := CollectSentenceUnits(tr, s)

	require.Len(t, units, 1)
	require.Equal(t, stages.BoundSentence, units[0].BoundaryType)
}

func TestDocumentRoundTripThroughBuildLabInfo(t *testing.T) {
	tr := doc.NewTree()
	s := tr.NewElement(stages.ElS)
	w1 := buildWord(tr, "ni3", "hao3")
	tr.AppendChild(s, w1)
	tr.AppendChild(tr.Root(), s)

	units := CollectSentenceUnits(tr, s)
	segs := BuildLabInfo(units)

	require.NotEmpty(t, segs)
	buf := RenderLabelBuffer(segs)
	require.NotEmpty(t, buf)
}
