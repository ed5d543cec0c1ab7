package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// LangConvert applies a character-substitution table (e.g. Traditional to
// Simplified Chinese) to every text node. Characters absent from the table
// pass through unchanged; this is a pure mapping with no other state (§4.3).
func LangConvert(t *doc.Tree, table map[rune]rune, logger zerolog.Logger) {
	logger.Trace().Str("stage", "LangConvert").Int("mappings", len(table)).Msg("enter")
	if len(table) == 0 {
		return
	}

	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindText {
			content := t.Content(ref)
			converted := make([]rune, 0, len(content))
			changed := false
			for _, r := range content {
				if m, ok := table[r]; ok {
					converted = append(converted, m)
					changed = true
				} else {
					converted = append(converted, r)
				}
			}
			if changed {
				t.SetContent(ref, string(converted))
			}
		}
		return false
	}, nil)

	logger.Trace().Str("stage", "LangConvert").Msg("leave")
}
