package hmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/stages"
)

func TestBuildLabInfoInsertsSilAtSentenceBoundary(t *testing.T) {
	units := []UnitItem{{Phoneme: "zhong1", BoundaryType: stages.BoundSentence}}

	segs := BuildLabInfo(units)

	require.Len(t, segs, 3) // "zh", "ong1", sil
	require.Equal(t, "zh", segs[0].SegPhoneme)
	require.Equal(t, "ong1", segs[1].SegPhoneme)
	require.Equal(t, "sil", segs[2].SegPhoneme)
	require.Equal(t, "X", segs[2].SylFinal)
}

func TestBuildLabInfoNoSilBelowProsodicPhrase(t *testing.T) {
	units := []UnitItem{
		{Phoneme: "ni3", BoundaryType: stages.BoundSyllable},
		{Phoneme: "hao3", BoundaryType: stages.BoundSentence},
	}

	segs := BuildLabInfo(units)

	for _, s := range segs[:len(segs)-1] {
		require.NotEqual(t, "sil", s.SegPhoneme)
	}
	require.Equal(t, "sil", segs[len(segs)-1].SegPhoneme)
}

func TestBoundaryCodeCollapsesToThreeLevels(t *testing.T) {
	require.Equal(t, 0, boundaryCode(stages.BoundSyllable))
	require.Equal(t, 0, boundaryCode(stages.BoundLWord))
	require.Equal(t, 1, boundaryCode(stages.BoundPWord))
	require.Equal(t, 5, boundaryCode(stages.BoundPPhrase))
	require.Equal(t, 5, boundaryCode(stages.BoundIPhrase))
	require.Equal(t, 5, boundaryCode(stages.BoundSentence))
}

func TestLabelRendersNeighborPlaceholders(t *testing.T) {
	units := []UnitItem{{Phoneme: "ma1", BoundaryType: stages.BoundSentence}}
	segs := BuildLabInfo(units)

	line := segs[0].Label()
	require.Contains(t, line, "X^X-")
	require.Contains(t, line, segs[0].SegPhoneme)
}

func TestUnknownPhonemeTokenFallsBackToWholeSymbol(t *testing.T) {
	units := []UnitItem{{Phoneme: "_pause", BoundaryType: stages.BoundSentence}}

	segs := BuildLabInfo(units)

	require.Equal(t, "_pause", segs[0].SegPhoneme)
	require.Equal(t, "X", segs[0].SylFinal)
}
