package stages

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/doc"
)

func wordWithPhoneme(t *doc.Tree, text, ph string) doc.NodeRef {
	w := t.NewElement(ElW)
	t.AppendChild(w, t.NewText(text))
	phNode := t.NewElement(ElPhoneme)
	t.SetAttr(phNode, "ph", ph)
	t.AppendChild(w, phNode)
	return w
}

func unitTexts(t *doc.Tree, w doc.NodeRef) []string {
	var out []string
	for _, c := range t.Children(w) {
		if t.Kind(c) == doc.KindElement && t.Name(c) == ElUnit {
			txt, _ := t.GetAttr(c, "text")
			out = append(out, txt)
		}
	}
	return out
}

func TestUnitSegmentOneSyllablePerGrapheme(t *testing.T) {
	tr := doc.NewTree()
	w := wordWithPhoneme(tr, "中国", "zhong1/guo2")
	tr.AppendChild(tr.Root(), w)

	UnitSegment(tr, zerolog.Nop())

	require.Equal(t, []string{"中", "国"}, unitTexts(tr, w))
	units := tr.Children(w)
	var unitEls []doc.NodeRef
	for _, c := range units {
		if tr.Name(c) == ElUnit {
			unitEls = append(unitEls, c)
		}
	}
	syl0, _ := tr.GetAttr(unitEls[0], "syl")
	require.Equal(t, "zhong1", syl0)
}

func TestUnitSegmentErhuaFoldsSuffixIntoPrecedingUnit(t *testing.T) {
	tr := doc.NewTree()
	w := wordWithPhoneme(tr, "花儿", "hua1r")
	tr.AppendChild(tr.Root(), w)

	UnitSegment(tr, zerolog.Nop())

	require.Equal(t, []string{"花儿"}, unitTexts(tr, w))
}

func TestUnitSegmentSurplusGraphemesAppendToLastUnit(t *testing.T) {
	tr := doc.NewTree()
	w := wordWithPhoneme(tr, "中ABC", "zhong1")
	tr.AppendChild(tr.Root(), w)

	UnitSegment(tr, zerolog.Nop())

	require.Equal(t, []string{"中ABC"}, unitTexts(tr, w))
	units := tr.Children(w)
	var unitEls []doc.NodeRef
	for _, c := range units {
		if tr.Name(c) == ElUnit {
			unitEls = append(unitEls, c)
		}
	}
	require.Len(t, unitEls, 1)
	syl0, _ := tr.GetAttr(unitEls[0], "syl")
	require.Equal(t, "zhong1", syl0)
}

func TestUnitSegmentSurplusSyllablesGetEmptyTextUnits(t *testing.T) {
	tr := doc.NewTree()
	w := wordWithPhoneme(tr, "中", "zhong1/guo2/ren2")
	tr.AppendChild(tr.Root(), w)

	UnitSegment(tr, zerolog.Nop())

	require.Equal(t, []string{"中", "", ""}, unitTexts(tr, w))
	var syls []string
	for _, c := range tr.Children(w) {
		if tr.Name(c) == ElUnit {
			s, _ := tr.GetAttr(c, "syl")
			syls = append(syls, s)
		}
	}
	require.Equal(t, []string{"zhong1", "guo2", "ren2"}, syls)
}

func TestUnitSegmentErhuaRequiresRetroflexSyllable(t *testing.T) {
	// "儿" here is a standalone character between two non-retroflex
	// syllables, not an Erhua suffix of "zhong1" — it must not get folded
	// into the preceding unit just because graphemes outnumber syllables.
	tr := doc.NewTree()
	w := wordWithPhoneme(tr, "中儿国", "zhong1/guo2")
	tr.AppendChild(tr.Root(), w)

	UnitSegment(tr, zerolog.Nop())

	require.Equal(t, []string{"中", "儿国"}, unitTexts(tr, w))
	var syls []string
	for _, c := range tr.Children(w) {
		if tr.Name(c) == ElUnit {
			s, _ := tr.GetAttr(c, "syl")
			syls = append(syls, s)
		}
	}
	require.Equal(t, []string{"zhong1", "guo2"}, syls)
}
