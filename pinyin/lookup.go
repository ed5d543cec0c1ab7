package pinyin

import (
	gopinyin "github.com/mozillazg/go-pinyin"
)

var numArgs = func() gopinyin.Args {
	a := gopinyin.NewArgs()
	a.Style = gopinyin.Tone2
	a.Heteronym = false
	return a
}()

// Lookup romanizes a Chinese surface string into numbered-tone Pinyin
// syllables, one per grapheme, using go-pinyin. It is used to bootstrap
// lexicon entries (lexicon.JiebaSource, the "lex build" CLI) and is
// deliberately separate from SplitSyllable: this generates a Pinyin string,
// SplitSyllable decomposes one that's already chosen.
func Lookup(surface string) []string {
	readings := gopinyin.Pinyin(surface, numArgs)
	out := make([]string, 0, len(readings))
	for _, r := range readings {
		if len(r) == 0 {
			continue
		}
		out = append(out, r[0])
	}
	return out
}
