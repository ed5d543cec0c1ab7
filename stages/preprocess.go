package stages

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/barbashov/iso639-3"
	"github.com/rs/zerolog"

	"github.com/thuhcsi/crystal-tts/doc"
	"github.com/thuhcsi/crystal-tts/errs"
)

// InputKind is the shape of text accepted by PreProcess, §4.2/§6.1.
type InputKind int

const (
	InputRaw InputKind = iota
	InputPartialSSML
	InputFullSSML
)

// PreProcess wraps raw or partial-SSML input inside a synthetic "speak" root,
// or parses a full-SSML document. The Tree returned always has a single
// "speak" child of the Document root. SSML markup is parsed by decodeInto
// below, which preserves attribute order but keeps unrecognized elements as
// ordinary Elements; it does not produce Unknown nodes.
func PreProcess(input string, kind InputKind, lang string, logger zerolog.Logger) (*doc.Tree, error) {
	logger.Trace().Str("stage", "PreProcess").Int("kind", int(kind)).Msg("enter")

	if lang != "" {
		if _, ok := iso.FromAnyCode(lang); !ok {
			return nil, errs.New(errs.InvalidInput, "language tag %q is not a valid ISO 639 code", lang)
		}
	}

	t := doc.NewTree()

	switch kind {
	case InputFullSSML:
		root, err := decodeInto(t, t.Root(), input)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, err, "full SSML input failed well-formedness check")
		}
		if root == doc.NilRef || t.Name(root) != ElSpeak {
			return nil, errs.New(errs.InvalidInput, "full SSML input must have a %q root element", ElSpeak)
		}
		if lang != "" {
			t.SetAttr(root, "lang", lang)
		}

	case InputPartialSSML:
		speak := t.NewElement(ElSpeak)
		t.AppendChild(t.Root(), speak)
		if lang != "" {
			t.SetAttr(speak, "lang", lang)
		}
		wrapper, err := decodeInto(t, speak, "<speak>"+input+"</speak>")
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, err, "partial SSML input failed well-formedness check")
		}
		// the parse wrapper's children move up into the synthetic root
		for _, c := range t.Children(wrapper) {
			t.Unlink(c)
			t.AppendChild(speak, c)
		}
		t.Unlink(wrapper)

	default: // InputRaw
		speak := t.NewElement(ElSpeak)
		t.AppendChild(t.Root(), speak)
		if lang != "" {
			t.SetAttr(speak, "lang", lang)
		}
		if strings.TrimSpace(input) != "" {
			t.AppendChild(speak, t.NewText(input))
		}
	}

	logger.Trace().Str("stage", "PreProcess").Msg("leave")
	return t, nil
}

// decodeInto streams xmlText through encoding/xml and materializes it as
// doc.Tree nodes under parent, returning the outermost element's ref.
// Unrecognized element names still become real Elements (the accepted
// vocabulary is enforced by later stages, not the parser) to keep the
// parser itself generic. Comments become Comment nodes; directives (such as
// doctypes) and processing instructions are dropped, and no Unknown node is
// ever created.
func decodeInto(t *doc.Tree, parent doc.NodeRef, xmlText string) (doc.NodeRef, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	dec.Strict = true

	stack := []doc.NodeRef{parent}
	var outermost doc.NodeRef

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return doc.NilRef, err
		}

		cur := stack[len(stack)-1]
		switch tt := tok.(type) {
		case xml.StartElement:
			el := t.NewElement(tt.Name.Local)
			for _, a := range tt.Attr {
				t.SetAttr(el, a.Name.Local, a.Value)
			}
			t.AppendChild(cur, el)
			stack = append(stack, el)
			if outermost == doc.NilRef {
				outermost = el
			}

		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if s := string(tt); s != "" {
				t.AppendChild(cur, t.NewText(s))
			}

		case xml.Comment:
			t.AppendChild(cur, t.NewComment(string(tt)))
		}
	}
	return outermost, nil
}
