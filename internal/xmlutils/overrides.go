package xmlutils

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/xmlpath.v2"
)

// Overrides holds compiled per-field XPath expressions. The zero value and a
// nil *Overrides have no entries.
type Overrides struct {
	paths map[string]*xmlpath.Path
}

// CompileOverrides compiles a field → XPath map. Blank expressions are
// skipped; an expression that does not compile is an error naming the field.
func CompileOverrides(exprs map[string]string) (*Overrides, error) {
	o := &Overrides{paths: make(map[string]*xmlpath.Path, len(exprs))}
	for field, expr := range exprs {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		path, err := xmlpath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid XPath for field %s: %w", field, err)
		}
		o.paths[field] = path
	}
	return o, nil
}

// Empty reports whether no override is configured.
func (o *Overrides) Empty() bool {
	return o == nil || len(o.paths) == 0
}

// Fields lists the overridden fields in sorted order.
func (o *Overrides) Fields() []string {
	if o.Empty() {
		return nil
	}
	out := make([]string, 0, len(o.paths))
	for f := range o.paths {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Lookup evaluates the override for field and returns the first non-empty
// match, whitespace-collapsed.
func (o *Overrides) Lookup(root *xmlpath.Node, field string) (string, bool) {
	if o.Empty() || root == nil {
		return "", false
	}
	path, ok := o.paths[field]
	if !ok {
		return "", false
	}
	iter := path.Iter(root)
	for iter.Next() {
		if v := CleanText(iter.Node().String()); v != "" {
			return v, true
		}
	}
	return "", false
}
