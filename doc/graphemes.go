package doc

import "github.com/rivo/uniseg"

// Graphemes splits text into user-perceived character clusters using uniseg,
// the way UnitSegment's fetchCharacter walks surface text one character at a
// time (§4.10) and the Erhua lookahead inspects "the next character".
func Graphemes(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	remaining := text
	state := -1
	for len(remaining) > 0 {
		g, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		if g == "" {
			break
		}
		out = append(out, g)
		remaining = rest
		state = newState
	}
	return out
}
