package stages

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/lexicon"
)

func TestGrapheme2PhonemeUsesLexiconHit(t *testing.T) {
	tr := doc.NewTree()
	w := tr.NewElement(ElW)
	tr.AppendChild(w, tr.NewText("中国"))
	tr.AppendChild(tr.Root(), w)

	lex := lexicon.NewMemStore()
	lex.Add("中国", lexicon.Entry{POS: "n", Phoneme: "zhong1/guo2", Freq: 10})

	Grapheme2Phoneme(tr, lex, zerolog.Nop())

	ph := findChildByName(tr, w, ElPhoneme)
	require.NotEqual(t, doc.NilRef, ph)
	val, _ := tr.GetAttr(ph, "ph")
	require.Equal(t, "zhong1/guo2", val)
	alphabet, _ := tr.GetAttr(ph, "alphabet")
	require.Equal(t, "pinyin", alphabet)
}

func TestGrapheme2PhonemeLeavesExplicitPhonemeUntouched(t *testing.T) {
	tr := doc.NewTree()
	w := tr.NewElement(ElW)
	tr.AppendChild(w, tr.NewText("中国"))
	explicit := tr.NewElement(ElPhoneme)
	tr.SetAttr(explicit, "ph", "zhong4/guo2")
	tr.AppendChild(w, explicit)
	tr.AppendChild(tr.Root(), w)

	Grapheme2Phoneme(tr, lexicon.NewMemStore(), zerolog.Nop())

	var phonemeCount int
	for _, c := range tr.Children(w) {
		if tr.Kind(c) == doc.KindElement && tr.Name(c) == ElPhoneme {
			phonemeCount++
		}
	}
	require.Equal(t, 1, phonemeCount)
	val, _ := tr.GetAttr(explicit, "ph")
	require.Equal(t, "zhong4/guo2", val)
}

func TestGrapheme2PhonemeFallsBackWithoutLexiconHit(t *testing.T) {
	tr := doc.NewTree()
	w := tr.NewElement(ElW)
	tr.AppendChild(w, tr.NewText("中"))
	tr.AppendChild(tr.Root(), w)

	Grapheme2Phoneme(tr, lexicon.NewMemStore(), zerolog.Nop())

	ph := findChildByName(tr, w, ElPhoneme)
	require.NotEqual(t, doc.NilRef, ph)
	val, _ := tr.GetAttr(ph, "ph")
	require.NotEmpty(t, val)
}
