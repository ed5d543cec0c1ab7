// Package stages implements the ten annotation stages of §4 (PreProcess
// through ProsodyPredict), each a transformation of the shared document tree
// (doc.Tree).
package stages

// Element vocabulary, §3.2.
const (
	ElSpeak    = "speak"
	ElP        = "p"
	ElS        = "s"
	ElW        = "w"
	ElPhoneme  = "phoneme"
	ElBreak    = "break"
	ElSayAs    = "say-as"
	ElSub      = "sub"
	ElProsody  = "prosody"
	ElEmphasis = "emphasis"
	ElUnit     = "unit"
)

// opaqueElements are never descended into by stages that walk raw text:
// their contained text belongs to one already-formed unit.
var opaqueElements = map[string]bool{
	ElW: true, ElBreak: true, ElSayAs: true, ElPhoneme: true, ElSub: true,
}

// Boundary strengths, §3.3 (ascending).
type Boundary int

const (
	BoundSyllable Boundary = iota
	BoundLWord
	BoundPWord
	BoundPPhrase
	BoundIPhrase
	BoundSentence
)

var boundaryNames = map[Boundary]string{
	BoundSyllable: "none",
	BoundLWord:    "x-weak",
	BoundPWord:    "weak",
	BoundPPhrase:  "medium",
	BoundIPhrase:  "strong",
	BoundSentence: "x-strong",
}

func (b Boundary) String() string { return boundaryNames[b] }

var boundaryFromStrength = map[string]Boundary{
	"none": BoundSyllable, "x-weak": BoundLWord, "weak": BoundPWord,
	"medium": BoundPPhrase, "strong": BoundIPhrase, "x-strong": BoundSentence,
}

// ParseBoundary converts an SSML break "strength" attribute to a Boundary.
func ParseBoundary(strength string) (Boundary, bool) {
	b, ok := boundaryFromStrength[strength]
	return b, ok
}
