package doc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendChildAndAttrs(t *testing.T) {
	tr := NewTree()
	speak := tr.NewElement("speak")
	tr.AppendChild(tr.Root(), speak)
	tr.SetAttr(speak, "lang", "cmn")
	tr.SetAttr(speak, "lang", "cmn-Hans")

	v, ok := tr.GetAttr(speak, "lang")
	require.True(t, ok)
	require.Equal(t, "cmn-Hans", v)
	require.Len(t, tr.Attrs(speak), 1)
	require.Equal(t, speak, tr.FirstChild(tr.Root()))
}

func TestInsertBeforeAfterAndUnlink(t *testing.T) {
	tr := NewTree()
	p := tr.NewElement("p")
	tr.AppendChild(tr.Root(), p)

	s1 := tr.NewElement("s")
	tr.AppendChild(p, s1)
	s3 := tr.NewElement("s")
	tr.AppendChild(p, s3)
	s2 := tr.NewElement("s")
	tr.InsertBefore(s3, s2)

	require.Equal(t, []NodeRef{s1, s2, s3}, tr.Children(p))

	mid := tr.NewElement("s")
	tr.InsertAfter(s1, mid)
	require.Equal(t, []NodeRef{s1, mid, s2, s3}, tr.Children(p))

	tr.Unlink(s2)
	require.NotContains(t, tr.Children(p), s2)
	require.Equal(t, NilRef, tr.Parent(s2))
}

func TestWalkOrderingAndSkip(t *testing.T) {
	tr := NewTree()
	speak := tr.NewElement("speak")
	tr.AppendChild(tr.Root(), speak)
	w := tr.NewElement("w")
	tr.AppendChild(speak, w)
	inner := tr.NewText("skipped")
	tr.AppendChild(w, inner)
	tail := tr.NewText("tail")
	tr.AppendChild(speak, tail)

	var entered []NodeRef
	WalkTree(tr, func(t *Tree, ref NodeRef) bool {
		entered = append(entered, ref)
		return t.Kind(ref) == KindElement && t.Name(ref) == "w"
	}, nil)

	require.NotContains(t, entered, inner)
	require.Contains(t, entered, tail)
}

func TestWalkVisitsAppendedChildren(t *testing.T) {
	tr := NewTree()
	speak := tr.NewElement("speak")
	tr.AppendChild(tr.Root(), speak)

	var entered []NodeRef
	WalkTree(tr, func(t *Tree, ref NodeRef) bool {
		entered = append(entered, ref)
		if ref == speak {
			child := t.NewText("born-during-enter")
			t.AppendChild(speak, child)
		}
		return false
	}, nil)

	require.Len(t, entered, 3) // Document root, speak, and the text appended during enter
}
