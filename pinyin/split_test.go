package pinyin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitSyllableTable(t *testing.T) {
	cases := []struct {
		name      string
		syllable  string
		want      Split
	}{
		{
			name:     "scenario 1: erhua (花儿 -> hua1r)",
			syllable: "hua1r",
			want:     Split{Initial: "h", Final: "ua", Retroflex: true, Tone: 1},
		},
		{
			name:     "scenario 2: zi4",
			syllable: "zi4",
			want:     Split{Initial: "z", Final: "ix", Tone: 4},
		},
		{
			name:     "zh/ch/sh/r + i -> iy",
			syllable: "zhi1",
			want:     Split{Initial: "zh", Final: "iy", Tone: 1},
		},
		{
			name:     "j/q/x + u overrides ui/iu/un rewrites: qun2 -> q + vn",
			syllable: "qun2",
			want:     Split{Initial: "q", Final: "vn", Tone: 2},
		},
		{
			name:     "j/q/x + u overrides ui/iu/un rewrites: jun1 -> j + vn",
			syllable: "jun1",
			want:     Split{Initial: "j", Final: "vn", Tone: 1},
		},
		{
			name:     "j/q/x + u overrides ui/iu/un rewrites: xun4 -> x + vn",
			syllable: "xun4",
			want:     Split{Initial: "x", Final: "vn", Tone: 4},
		},
		{
			name:     "un rewrite fires without a j/q/x initial: dun4 -> d + uen",
			syllable: "dun4",
			want:     Split{Initial: "d", Final: "uen", Tone: 4},
		},
		{
			name:     "ui rewrite: hui2 -> h + uei",
			syllable: "hui2",
			want:     Split{Initial: "h", Final: "uei", Tone: 2},
		},
		{
			name:     "iu rewrite: liu2 -> l + iou",
			syllable: "liu2",
			want:     Split{Initial: "l", Final: "iou", Tone: 2},
		},
		{
			name:     "y-initial rewrite: yan2 -> ian",
			syllable: "yan2",
			want:     Split{Final: "ian", Tone: 2},
		},
		{
			name:     "y-initial rewrite to v: yu2 -> v",
			syllable: "yu2",
			want:     Split{Final: "v", Tone: 2},
		},
		{
			name:     "w-initial rewrite: wu3 -> u",
			syllable: "wu3",
			want:     Split{Final: "u", Tone: 3},
		},
		{
			name:     "bare nasal final: n4",
			syllable: "n4",
			want:     Split{Final: "n", Tone: 4},
		},
		{
			name:     "ng collapses to n: hng1",
			syllable: "hng1",
			want:     Split{Initial: "h", Final: "n", Tone: 1},
		},
		{
			name:     "no tone digit defaults to neutral tone 5",
			syllable: "de",
			want:     Split{Initial: "d", Final: "e", Tone: 5},
		},
		{
			name:     "er is not treated as retroflex",
			syllable: "er4",
			want:     Split{Final: "er", Tone: 4},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := SplitSyllable(c.syllable)
			require.True(t, ok)
			require.Equal(t, c.want, got)
		})
	}
}

func TestSplitSyllableRejectsEmptyAndSymbolTokens(t *testing.T) {
	_, ok := SplitSyllable("")
	require.False(t, ok)

	_, ok = SplitSyllable("_pause")
	require.False(t, ok)
}

func TestPhonesRendersInitialFinalToneAndRetroflex(t *testing.T) {
	s, ok := SplitSyllable("hua1r")
	require.True(t, ok)
	require.Equal(t, []string{"h", "ua1", "rr"}, s.Phones())

	s, ok = SplitSyllable("ma3")
	require.True(t, ok)
	require.Equal(t, []string{"m", "a3"}, s.Phones())
}

func TestFinalTone(t *testing.T) {
	s, ok := SplitSyllable("zhong1")
	require.True(t, ok)
	require.Equal(t, "ong1", s.FinalTone())
}
