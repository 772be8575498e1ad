package xmlparser

import "strings"

// Find returns the first non-empty value stored under any of keys. Keys are
// tried in the order given; for each key the tree is walked depth first in
// document order, and an object's own entry is checked before its children.
// Key comparison ignores case.
func Find(n *Node, keys ...string) (*Node, bool) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if found := findKey(n, key); found != nil {
			return found, true
		}
	}
	return nil, false
}

func findKey(n *Node, key string) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Object:
		for _, k := range n.Keys {
			if strings.EqualFold(k, key) && !n.Fields[k].IsEmpty() {
				return n.Fields[k]
			}
		}
		for _, k := range n.Keys {
			if found := findKey(n.Fields[k], key); found != nil {
				return found
			}
		}
	case Array:
		for _, item := range n.Items {
			if found := findKey(item, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// itemElements returns the elements of an item list: the entries of an
// array, or those of a wrapper whose only child is the repeated element
// (<parcelas><parcela/>...</parcelas>). A wrapper around a single item
// yields that item.
func itemElements(n *Node) []*Node {
	switch n.Kind {
	case Array:
		return n.Items
	case Object:
		if len(n.Keys) != 1 {
			return nil
		}
		child := n.Fields[n.Keys[0]]
		switch child.Kind {
		case Array:
			return child.Items
		case Object:
			return []*Node{child}
		}
	}
	return nil
}
