package stages

import (
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
)

// DocStruct groups flat text/elements into paragraph and sentence subtrees
// (§4.5), running once per fragment tag. For each container it accumulates a
// run of not-yet-wrapped siblings and closes the run (wrapping it in a new
// fragmentTag element) when: the run meets an already-formed fragment of the
// same tag (the left context must be wrapped first); the run reaches the end
// of its container with pending content; or it meets a punctuation
// terminator matching the fragment tag (paragraph terminators always close a
// sentence run too, since a paragraph boundary is always a sentence boundary).
func DocStruct(t *doc.Tree, logger zerolog.Logger) {
	logger.Trace().Str("stage", "DocStruct").Msg("enter")

	speak := findChildByName(t, t.Root(), ElSpeak)
	if speak == doc.NilRef {
		logger.Trace().Str("stage", "DocStruct").Msg("leave: no speak root")
		return
	}

	groupFragments(t, speak, ElP)
	for _, p := range t.Children(speak) {
		if t.Name(p) == ElP {
			groupFragments(t, p, ElS)
		}
	}

	logger.Trace().Str("stage", "DocStruct").Msg("leave")
}

func findChildByName(t *doc.Tree, parent doc.NodeRef, name string) doc.NodeRef {
	for _, c := range t.Children(parent) {
		if t.Name(c) == name {
			return c
		}
	}
	return doc.NilRef
}

func groupFragments(t *doc.Tree, container doc.NodeRef, fragmentTag string) {
	children := t.Children(container)
	var pending []doc.NodeRef

	flush := func() {
		if len(pending) == 0 {
			return
		}
		frag := t.NewElement(fragmentTag)
		t.InsertBefore(pending[0], frag)
		for _, c := range pending {
			t.Unlink(c)
			t.AppendChild(frag, c)
		}
		pending = nil
	}

	for i, c := range children {
		if t.Name(c) == fragmentTag {
			flush()
			continue
		}
		pending = append(pending, c)
		last := i == len(children)-1
		if isFragmentTerminator(t, c, fragmentTag) || last {
			flush()
		}
	}
}

func isFragmentTerminator(t *doc.Tree, ref doc.NodeRef, fragmentTag string) bool {
	if t.Kind(ref) != doc.KindElement || t.Name(ref) != ElSayAs {
		return false
	}
	interpretAs, _ := t.GetAttr(ref, "interpret-as")
	if interpretAs != "punctuation" {
		return false
	}
	format, _ := t.GetAttr(ref, "format")
	return format == "p" || format == fragmentTag
}
