package proptree

import "strconv"

// FlatEntry is a dotted key and its scalar value.
type FlatEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Flatten walks t in iteration order and joins every path to a scalar with
// ".". List items are addressed as key[i].
func Flatten(t *Tree) []FlatEntry {
	var out []FlatEntry
	flattenTree(t, "", &out)
	return out
}

func flattenTree(t *Tree, prefix string, out *[]FlatEntry) {
	for key, n := range t.All() {
		full := joinKey(prefix, key)
		switch n := n.(type) {
		case *Tree:
			flattenTree(n, full, out)
		case *Leaf:
			flattenValue(n.Value, full, out)
		}
	}
}

func flattenValue(v Value, key string, out *[]FlatEntry) {
	switch v := v.(type) {
	case Scalar:
		*out = append(*out, FlatEntry{Key: key, Value: string(v)})
	case List:
		for i, item := range v {
			flattenValue(item, key+"["+strconv.Itoa(i)+"]", out)
		}
	case *Tree:
		flattenTree(v, key, out)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}
