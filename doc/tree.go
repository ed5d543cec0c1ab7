// Package doc implements the annotated document tree shared by every pipeline
// stage: an arena of nodes addressed by index, doubly-linked siblings, and a
// depth-first traversal harness with explicit enter/leave callbacks.
package doc

// Kind distinguishes the node variants of §3.1.
type Kind int

const (
	KindInvalid Kind = iota
	KindDocument
	KindElement
	KindText
	KindComment
	KindDeclaration
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindDeclaration:
		return "Declaration"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Attr is one ordered name/value pair. Attribute names within one element are
// unique; SetAttr on an existing name updates its value in place, preserving
// its original position.
type Attr struct {
	Name  string
	Value string
}

// NodeRef addresses a node in a Tree's arena. The zero value is the nil ref.
type NodeRef int

const NilRef NodeRef = 0

type node struct {
	kind    Kind
	name    string // element/unknown tag name
	content string // text/comment content, or raw markup for Unknown
	attrs   []Attr

	parent, firstChild, lastChild, prev, next NodeRef
	freed                                     bool
}

// Tree is an arena-allocated forest: one Document root plus its descendants.
// NodeRefs are stable indices for the lifetime of the Tree; Unlink never
// reuses a slot, matching the per-process-call allocation scope of §5.
type Tree struct {
	nodes []node
	root  NodeRef
}

// NewTree allocates a fresh Tree with a single Document root node.
func NewTree() *Tree {
	t := &Tree{nodes: make([]node, 1)} // index 0 reserved as NilRef
	t.nodes = append(t.nodes, node{kind: KindDocument})
	t.root = NodeRef(1)
	return t
}

func (t *Tree) Root() NodeRef { return t.root }

func (t *Tree) alloc(n node) NodeRef {
	t.nodes = append(t.nodes, n)
	return NodeRef(len(t.nodes) - 1)
}

// NewElement allocates a detached Element node with the given tag name.
func (t *Tree) NewElement(name string) NodeRef {
	return t.alloc(node{kind: KindElement, name: name})
}

// NewText allocates a detached Text node.
func (t *Tree) NewText(content string) NodeRef {
	return t.alloc(node{kind: KindText, content: content})
}

// NewComment allocates a detached Comment node.
func (t *Tree) NewComment(content string) NodeRef {
	return t.alloc(node{kind: KindComment, content: content})
}

// NewDeclaration allocates a detached Declaration node; version/encoding/
// standalone are stored as attributes for simplicity of the arena schema.
func (t *Tree) NewDeclaration(version, encoding, standalone string) NodeRef {
	ref := t.alloc(node{kind: KindDeclaration})
	t.SetAttr(ref, "version", version)
	t.SetAttr(ref, "encoding", encoding)
	t.SetAttr(ref, "standalone", standalone)
	return ref
}

// NewUnknown allocates a detached pass-through node carrying raw markup.
func (t *Tree) NewUnknown(raw string) NodeRef {
	return t.alloc(node{kind: KindUnknown, content: raw})
}

func (t *Tree) n(ref NodeRef) *node {
	if ref == NilRef || int(ref) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[ref]
}

func (t *Tree) Kind(ref NodeRef) Kind {
	if n := t.n(ref); n != nil {
		return n.kind
	}
	return KindInvalid
}

// Name returns the element/unknown tag name, or "" for other kinds.
func (t *Tree) Name(ref NodeRef) string {
	if n := t.n(ref); n != nil {
		return n.name
	}
	return ""
}

// Content returns the text/comment/unknown payload.
func (t *Tree) Content(ref NodeRef) string {
	if n := t.n(ref); n != nil {
		return n.content
	}
	return ""
}

func (t *Tree) SetContent(ref NodeRef, content string) {
	if n := t.n(ref); n != nil {
		n.content = content
	}
}

func (t *Tree) Parent(ref NodeRef) NodeRef      { return t.field(ref, func(n *node) NodeRef { return n.parent }) }
func (t *Tree) FirstChild(ref NodeRef) NodeRef   { return t.field(ref, func(n *node) NodeRef { return n.firstChild }) }
func (t *Tree) LastChild(ref NodeRef) NodeRef    { return t.field(ref, func(n *node) NodeRef { return n.lastChild }) }
func (t *Tree) PrevSibling(ref NodeRef) NodeRef  { return t.field(ref, func(n *node) NodeRef { return n.prev }) }
func (t *Tree) NextSibling(ref NodeRef) NodeRef  { return t.field(ref, func(n *node) NodeRef { return n.next }) }

func (t *Tree) field(ref NodeRef, get func(*node) NodeRef) NodeRef {
	if n := t.n(ref); n != nil {
		return get(n)
	}
	return NilRef
}

// Children returns the child refs of ref in insertion order.
func (t *Tree) Children(ref NodeRef) []NodeRef {
	var out []NodeRef
	for c := t.FirstChild(ref); c != NilRef; c = t.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

// Attrs returns the ordered attribute list of an element/declaration.
func (t *Tree) Attrs(ref NodeRef) []Attr {
	if n := t.n(ref); n != nil {
		return n.attrs
	}
	return nil
}

// GetAttr looks up an attribute by name.
func (t *Tree) GetAttr(ref NodeRef, name string) (string, bool) {
	n := t.n(ref)
	if n == nil {
		return "", false
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or updates an attribute, preserving insertion order of the
// attribute list.
func (t *Tree) SetAttr(ref NodeRef, name, value string) {
	n := t.n(ref)
	if n == nil {
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// AppendChild links child as the new last child of parent. child must be
// detached (freshly allocated, or Unlinked).
func (t *Tree) AppendChild(parent, child NodeRef) {
	p, c := t.n(parent), t.n(child)
	if p == nil || c == nil {
		return
	}
	c.parent = parent
	c.prev = p.lastChild
	c.next = NilRef
	if p.lastChild != NilRef {
		t.n(p.lastChild).next = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
}

// InsertBefore links newNode as the immediate previous sibling of ref.
func (t *Tree) InsertBefore(ref, newNode NodeRef) {
	r, nn := t.n(ref), t.n(newNode)
	if r == nil || nn == nil {
		return
	}
	parent := r.parent
	prev := r.prev

	nn.parent = parent
	nn.prev = prev
	nn.next = ref

	if prev != NilRef {
		t.n(prev).next = newNode
	} else if parent != NilRef {
		t.n(parent).firstChild = newNode
	}
	r.prev = newNode
}

// InsertAfter links newNode as the immediate next sibling of ref.
func (t *Tree) InsertAfter(ref, newNode NodeRef) {
	r, nn := t.n(ref), t.n(newNode)
	if r == nil || nn == nil {
		return
	}
	parent := r.parent
	next := r.next

	nn.parent = parent
	nn.prev = ref
	nn.next = next

	if next != NilRef {
		t.n(next).prev = newNode
	} else if parent != NilRef {
		t.n(parent).lastChild = newNode
	}
	r.next = newNode
}

// Unlink detaches ref (and its whole subtree) from its parent/siblings in
// O(1) at the attach point. The subtree remains internally intact and may be
// re-attached elsewhere.
func (t *Tree) Unlink(ref NodeRef) {
	r := t.n(ref)
	if r == nil {
		return
	}
	if r.prev != NilRef {
		t.n(r.prev).next = r.next
	} else if r.parent != NilRef {
		t.n(r.parent).firstChild = r.next
	}
	if r.next != NilRef {
		t.n(r.next).prev = r.prev
	} else if r.parent != NilRef {
		t.n(r.parent).lastChild = r.prev
	}
	r.parent, r.prev, r.next = NilRef, NilRef, NilRef
}

// Remove unlinks ref and marks it (shallowly) freed; present for symmetry
// with the source's CXMLNode::remove and used where a stage intends never to
// reattach the node.
func (t *Tree) Remove(ref NodeRef) {
	t.Unlink(ref)
	if n := t.n(ref); n != nil {
		n.freed = true
	}
}
