package proptree

// Value is the payload of a Leaf or an item of a List. It is one of Scalar,
// List or *Tree.
type Value interface {
	isValue()
}

// Scalar is a single string value.
type Scalar string

// List is an ordered sequence of values. Items may themselves be scalars,
// lists or mappings.
type List []Value

func (Scalar) isValue() {}
func (List) isValue()   {}
func (*Tree) isValue()  {}

// Leaf is a terminal node: a value plus the comment lines that preceded it.
type Leaf struct {
	Value    Value
	Comments []string
}

// NewLeaf creates a leaf, copying comments so the caller may reuse its slice.
func NewLeaf(value Value, comments []string) *Leaf {
	var cs []string
	if len(comments) > 0 {
		cs = make([]string, len(comments))
		copy(cs, comments)
	}
	return &Leaf{Value: value, Comments: cs}
}

func (*Leaf) isNode() {}
