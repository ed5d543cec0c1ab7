package lexicon

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLStore is the production Lexicon backend: a SQLite-backed word table,
// grounded in f3rmion-hmm's use of modernc.org/sqlite for its own Pinyin
// store. Reads are simple indexed SELECTs; writes happen only during the
// "lex build" CLI step, never during process()/synthesize(), matching §5's
// "lexicon is loaded once at initialize" resource policy.
type SQLStore struct {
	db     *sql.DB
	maxLen int
}

// OpenSQLStore opens (creating if absent) a SQLite lexicon database at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon db: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS words (
	surface TEXT NOT NULL,
	pos     TEXT NOT NULL,
	phoneme TEXT NOT NULL,
	freq    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_words_surface ON words(surface);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init lexicon schema: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.refreshMaxLen(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) refreshMaxLen() error {
	rows, err := s.db.Query(`SELECT surface FROM words`)
	if err != nil {
		return err
	}
	defer rows.Close()
	max := 0
	for rows.Next() {
		var surface string
		if err := rows.Scan(&surface); err != nil {
			return err
		}
		if n := len([]rune(surface)); n > max {
			max = n
		}
	}
	s.maxLen = max
	return rows.Err()
}

// Insert adds one word entry; callers should call refreshMaxLen (via
// Reindex) after a bulk import.
func (s *SQLStore) Insert(surface string, e Entry) error {
	_, err := s.db.Exec(`INSERT INTO words(surface, pos, phoneme, freq) VALUES (?, ?, ?, ?)`,
		surface, e.POS, e.Phoneme, e.Freq)
	if err != nil {
		return err
	}
	if n := len([]rune(surface)); n > s.maxLen {
		s.maxLen = n
	}
	return nil
}

// Reindex recomputes the cached max word length after bulk inserts.
func (s *SQLStore) Reindex() error { return s.refreshMaxLen() }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Alphabet() string { return "pinyin" }

func (s *SQLStore) WordMaxLen() int { return s.maxLen }

func (s *SQLStore) LookupWord(surface string) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT pos, phoneme, freq FROM words WHERE surface = ? ORDER BY freq DESC`, surface)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.POS, &e.Phoneme, &e.Freq); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) Phoneme(surface, posHint, fallback string) (string, error) {
	entries, err := s.LookupWord(surface)
	if err != nil {
		return "", err
	}
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
