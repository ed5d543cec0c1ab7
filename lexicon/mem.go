package lexicon

import "sort"

// MemStore is a plain in-memory Lexicon, the default/embedded backend —
// analogous to the teacher always shipping a default provider alongside any
// pluggable one. Safe for concurrent reads after all Add calls finish (per §5,
// the lexicon is shared read-only across engine instances).
type MemStore struct {
	entries map[string][]Entry
	maxLen  int
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]Entry)}
}

// Add registers one entry for surface, ordered entries win ties by
// insertion order per §4.7 ("the first entry wins on ties").
func (m *MemStore) Add(surface string, e Entry) {
	m.entries[surface] = append(m.entries[surface], e)
	if n := len([]rune(surface)); n > m.maxLen {
		m.maxLen = n
	}
	sort.SliceStable(m.entries[surface], func(i, j int) bool {
		return m.entries[surface][i].Freq > m.entries[surface][j].Freq
	})
}

func (m *MemStore) Alphabet() string { return "pinyin" }

func (m *MemStore) WordMaxLen() int { return m.maxLen }

func (m *MemStore) LookupWord(surface string) ([]Entry, error) {
	return m.entries[surface], nil
}

func (m *MemStore) Phoneme(surface, posHint, fallback string) (string, error) {
	entries, _ := m.LookupWord(surface)
	for _, e := range entries {
		if posHint == "" || e.POS == posHint {
			return e.Phoneme, nil
		}
	}
	if len(entries) > 0 {
		return entries[0].Phoneme, nil
	}
	return fallback, nil
}
