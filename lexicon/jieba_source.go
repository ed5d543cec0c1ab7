package lexicon

import (
	"github.com/yanyiwu/gojieba"

	crystalpinyin "github.com/thuhcsi/crystal-tts/pinyin"
)

// JiebaSource bootstraps lexicon entries from gojieba's own bundled
// dictionary and POS tagger, grounded in the teacher's GoJiebaProvider. It is
// a population *source* for SQLStore/MemStore, not a segmenter: WordSegment
// (§4.7) always performs forward-maximum-match itself against whatever
// Lexicon was populated this way.
type JiebaSource struct {
	jieba *gojieba.Jieba
}

// NewJiebaSource opens gojieba with its bundled dictionary paths.
func NewJiebaSource(dictDir, hmmModel, userDict, idf, stopWords string) *JiebaSource {
	return &JiebaSource{jieba: gojieba.NewJieba(dictDir, hmmModel, userDict, idf, stopWords)}
}

func (s *JiebaSource) Close() { s.jieba.Free() }

// Seed walks text with jieba's precise-mode cut + POS tagger and returns one
// Entry per distinct surface word, with a go-pinyin-derived phoneme string
// and a frequency proportional to occurrence count.
func (s *JiebaSource) Seed(text string) map[string]Entry {
	words := s.jieba.Cut(text, true)
	tags := s.jieba.Tag(text)

	pos := make(map[string]string, len(tags))
	for _, t := range tags {
		// gojieba.Tag yields "word/pos" pairs
		word, tag := splitTag(t)
		if word != "" {
			pos[word] = tag
		}
	}

	out := make(map[string]Entry)
	for _, w := range words {
		e, ok := out[w]
		if !ok {
			e = Entry{
				POS:     pos[w],
				Phoneme: joinSyllables(crystalpinyin.Lookup(w)),
			}
		}
		e.Freq++
		out[w] = e
	}
	return out
}

func splitTag(s string) (word, tag string) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func joinSyllables(syls []string) string {
	out := ""
	for i, s := range syls {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
