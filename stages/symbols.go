package stages

// Punctuation classification grounded in
// original_source/engine/ttsbase/preprocess/dsa_symboldetect.cpp.

const paragraphTerminator = rune(0x19)

var sentenceTerminators = map[rune]bool{
	'。': true, '．': true, '.': true,
	'，': true, ',': true,
	'：': true, ':': true,
	'？': true, '?': true,
	'！': true, '!': true,
}

func isDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '０' && r <= '９')
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}

// judgePunctuation resolves the ambiguous single-character cases of §4.4:
// '.' between two digits or two letters, ',' / ':' between two digits, and
// a quote right after a digit are not terminators.
func judgePunctuation(runes []rune, pos int) bool {
	cur := runes[pos]
	var prev, next rune
	hasPrev, hasNext := pos > 0, pos+1 < len(runes)
	if hasPrev {
		prev = runes[pos-1]
	}
	if hasNext {
		next = runes[pos+1]
	}

	switch cur {
	case ':', '：', ',', '，':
		if hasPrev && hasNext && isDigit(prev) && isDigit(next) {
			return false
		}
		return true
	case '.', '．':
		if hasPrev && hasNext && ((isDigit(prev) && isDigit(next)) || (isLetter(prev) && isLetter(next))) {
			return false
		}
		return true
	case '\'', '"':
		if hasPrev && isDigit(prev) {
			return false
		}
		return true
	default:
		return true
	}
}

// detectPunctuation scans runes for the first terminator that passes
// judgePunctuation, returning its rune index and length (always 1), or
// ok=false if no terminator is found in the remainder.
func detectPunctuation(runes []rune) (start, length int, ok bool) {
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == paragraphTerminator || sentenceTerminators[r] {
			if judgePunctuation(runes, i) {
				return i, 1, true
			}
		}
	}
	return 0, 0, false
}

// detectFormat classifies a punctuation run into the say-as interpret-as/
// format/detail triple.
func detectFormat(symbol []rune) (interpretAs, format, detail string) {
	if len(symbol) == 1 {
		r := symbol[0]
		if r == paragraphTerminator {
			return "punctuation", "p", ""
		}
		if sentenceTerminators[r] {
			return "punctuation", "s", ""
		}
	}
	return "symbol", "", ""
}
