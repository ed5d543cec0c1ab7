// Package pinyin implements the Pinyin syllable decomposition of spec §3.4
// and the phone-emission rules of §4.12.3, ported from the reference
// CPinyin::split algorithm rule-for-rule (initial/final rewrite order
// matters and is preserved exactly).
package pinyin

import "regexp"

// Split is the decomposition of one Pinyin syllable.
type Split struct {
	Initial   string // one of the 23 initials, or "" if none
	Final     string // already rewritten per the table below
	Retroflex bool   // Erhua: trailing "r" plus the surface "儿" character
	Tone      int    // 1..5; 5 is neutral
}

var initialRe = regexp.MustCompile(`^(b|p|m|f|d|t|n|l|g|k|h|j|q|x|zh?|ch?|sh?|r)(.+)$`)

// SplitSyllable decomposes a surface Pinyin syllable (e.g. "hua1r", "zi4",
// "lü4" written as "lv4") into initial/final/retroflex/tone.
//
// Returns ok=false for the empty string or for an underscore-prefixed symbol
// token (those are not Pinyin at all, per §4.12.7's "unknown phoneme token"
// handling, which the caller treats as a whole symbol unit).
func SplitSyllable(p string) (Split, bool) {
	if p == "" || p[0] == '_' {
		return Split{}, false
	}

	r := []rune(p)
	n := len(r)

	// Erhua written after the tone digit ("hua1r")
	retroflex := false
	if n >= 2 && r[n-1] == 'r' && r[n-2] >= '0' && r[n-2] <= '9' {
		r = r[:n-1]
		n--
		retroflex = true
	}

	// extract tone; absent -> neutral (5)
	tone := 0
	if r[n-1] >= '0' && r[n-1] <= '9' {
		tone = int(r[n-1] - '0')
		r = r[:n-1]
		n--
	}
	if tone == 0 {
		tone = 5
	}
	if n == 0 {
		return Split{}, false
	}

	// Erhua before the tone digit ("huar1"): trailing "r", syllable itself isn't "er"
	if !retroflex && r[n-1] == 'r' && string(r) != "er" {
		r = r[:n-1]
		n--
		retroflex = true
	}
	if n == 0 {
		return Split{}, false
	}

	p2 := string(r)
	var initial, final string

	switch {
	case p2[0] == 'y':
		// ya->ia, yan->ian, ..., yu->v, yuan->van, ...
		rest := []rune(p2)
		rest[0] = 'i'
		if len(rest) > 1 && rest[1] == 'u' {
			rest[1] = 'v'
		}
		if len(rest) > 1 && (rest[1] == 'i' || rest[1] == 'v') {
			rest = rest[1:]
		}
		final = string(rest)

	case p2[0] == 'w':
		// wa->ua, ..., wu->u
		rest := []rune(p2)
		rest[0] = 'u'
		if len(rest) > 1 && rest[1] == 'u' {
			rest = rest[1:]
		}
		final = string(rest)

	case p2 == "ng" || p2 == "n" || p2 == "m":
		final = p2

	default:
		m := initialRe.FindStringSubmatch(p2)
		if m != nil {
			initial = m[1]
			final = m[2]
		} else {
			final = p2
		}

		switch {
		case final == "i":
			switch initial {
			case "z", "c", "s":
				final = "ix"
			case "zh", "ch", "sh", "r":
				final = "iy"
			}
		case len(final) > 0 && final[0] == 'u' && (initial == "j" || initial == "q" || initial == "x"):
			final = "v" + final[1:]
		case final == "ui":
			final = "uei"
		case final == "iu":
			final = "iou"
		case final == "un":
			final = "uen"
		}
	}

	if final == "E" {
		final = "ev"
	}
	if final == "ng" {
		final = "n"
	}
	if final == "ev" {
		final = "ei"
	}

	return Split{Initial: initial, Final: final, Retroflex: retroflex, Tone: tone}, true
}

// Phones renders the phone sequence for a decomposed syllable per §4.12.3:
// an optional initial, the final+tone token, and an optional trailing "rr"
// for Erhua.
func (s Split) Phones() []string {
	var out []string
	if s.Initial != "" {
		out = append(out, s.Initial)
	}
	out = append(out, s.Final+toneDigit(s.Tone))
	if s.Retroflex {
		out = append(out, "rr")
	}
	return out
}

// FinalTone renders the final with its tone digit appended (e.g. "ong4"),
// the nucleus phoneme HTS context labels key prosodic fields on (§4.12.4).
func (s Split) FinalTone() string { return s.Final + toneDigit(s.Tone) }

func toneDigit(tone int) string {
	if tone < 0 || tone > 9 {
		return ""
	}
	return string(rune('0' + tone))
}
