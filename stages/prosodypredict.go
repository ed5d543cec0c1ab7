package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// ProsodyPredict allocates the prosody slots ("dur", "f0scale") on every
// unit (§4.11). For an HMM-driven backend the actual prediction happens
// inside the engine from the rendered context label, so this stage is a
// placeholder allocator: every unit lacking them gets neutral defaults
// (dur "0", f0scale "1.0"). Synthesize overwrites "dur" with the engine's
// timing once the engine has run; "f0scale" keeps its default.
func ProsodyPredict(t *doc.Tree, logger zerolog.Logger) {
	logger.Trace().Str("stage", "ProsodyPredict").Msg("enter")

	var units []doc.NodeRef
	doc.WalkTree(t, func(t *doc.Tree, ref doc.NodeRef) bool {
		if t.Kind(ref) == doc.KindElement && t.Name(ref) == ElUnit {
			units = append(units, ref)
		}
		return false
	}, nil)

	for _, u := range units {
		if _, ok := t.GetAttr(u, "dur"); !ok {
			t.SetAttr(u, "dur", "0")
		}
		if _, ok := t.GetAttr(u, "f0scale"); !ok {
			t.SetAttr(u, "f0scale", "1.0")
		}
	}

	logger.Trace().Str("stage", "ProsodyPredict").Int("units", len(units)).Msg("leave")
}
