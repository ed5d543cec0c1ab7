package stages

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thuhcsi/crystal-tts/doc"
)

func TestProsodyPredictSetsDefaults(t *testing.T) {
	tr := doc.NewTree()
	unit := tr.NewElement(ElUnit)
	tr.AppendChild(tr.Root(), unit)

	ProsodyPredict(tr, zerolog.Nop())

	dur, _ := tr.GetAttr(unit, "dur")
	require.Equal(t, "0", dur)
	f0, _ := tr.GetAttr(unit, "f0scale")
	require.Equal(t, "1.0", f0)
}

func TestProsodyPredictDoesNotOverwriteExisting(t *testing.T) {
	tr := doc.NewTree()
	unit := tr.NewElement(ElUnit)
	tr.SetAttr(unit, "dur", "120")
	tr.AppendChild(tr.Root(), unit)

	ProsodyPredict(tr, zerolog.Nop())

	dur, _ := tr.GetAttr(unit, "dur")
	require.Equal(t, "120", dur)
}
