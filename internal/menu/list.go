package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// MalformedStoreError is returned when a stored list is not a mapping.
type MalformedStoreError struct {
	Found string
}

func (e *MalformedStoreError) Error() string {
	return fmt.Sprintf("expected to load a mapping, but found %s instead", e.Found)
}

// LoadError is returned when no candidate variant accepts a stored entry.
type LoadError struct {
	Key     string
	Tried   []string
	Reasons []error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("could not create any item from %q, tried %s", e.Key, strings.Join(e.Tried, ", "))
	if len(e.Reasons) > 0 {
		reasons := make([]string, len(e.Reasons))
		for i, r := range e.Reasons {
			reasons[i] = r.Error()
		}
		msg += " (" + strings.Join(reasons, "; ") + ")"
	}
	return msg
}

// List is an ordered, persistable collection of items. Its variants are the
// candidate types tried, in order, for every stored entry on load; more
// specific variants must come before generic ones.
type List struct {
	variants []Variant
	items    []Serialisable
}

// NewList returns a list holding items that loads entries with variants.
func NewList(variants []Variant, items ...Serialisable) *List {
	return &List{
		variants: append([]Variant(nil), variants...),
		items:    append([]Serialisable(nil), items...),
	}
}

// Load reads a list from r, resolving each entry to the first variant that
// accepts its shape. Entries keep their stored order.
func Load(r io.Reader, variants []Variant) (*List, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedStoreError{Found: "an empty document"}
		}
		return nil, fmt.Errorf("failed to parse item list: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &MalformedStoreError{Found: describeNode(root)}
	}

	list := NewList(variants)
	for i := 0; i+1 < len(root.Content); i += 2 {
		item, err := list.resolve(root.Content[i], root.Content[i+1])
		if err != nil {
			return nil, err
		}
		list.items = append(list.items, item)
	}
	return list, nil
}

func (l *List) resolve(keyNode, valueNode *yaml.Node) (Serialisable, error) {
	key := keyNode.Value
	loadErr := &LoadError{Key: key, Tried: l.VariantNames()}

	if keyNode.Kind != yaml.ScalarNode {
		loadErr.Reasons = append(loadErr.Reasons, fmt.Errorf("key is a %s", describeNode(keyNode)))
		return nil, loadErr
	}
	if valueNode.Kind != yaml.MappingNode {
		loadErr.Reasons = append(loadErr.Reasons, fmt.Errorf("value is %s, not a mapping", describeNode(valueNode)))
		return nil, loadErr
	}

	var values map[string]any
	if err := valueNode.Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}

	for _, v := range l.variants {
		item, err := FromDict(v, Dict{key: values})
		if err == nil {
			return item, nil
		}
		if !IsStructural(err) {
			return nil, fmt.Errorf("failed to decode %q as %s: %w", key, v.Name, err)
		}
		loadErr.Reasons = append(loadErr.Reasons, err)
	}
	return nil, loadErr
}

// Save writes the list to w in list order. Items sharing a name collapse into
// one entry: the last item's values win, at the first item's position.
func (l *List) Save(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	index := make(map[string]int, len(l.items))

	for _, item := range l.items {
		for name, values := range ToDict(item) {
			valueNode := &yaml.Node{}
			if err := valueNode.Encode(values); err != nil {
				return fmt.Errorf("failed to encode %q: %w", name, err)
			}
			if at, ok := index[name]; ok {
				root.Content[at+1] = valueNode
				continue
			}
			index[name] = len(root.Content)
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
			root.Content = append(root.Content, keyNode, valueNode)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to write item list: %w", err)
	}
	return enc.Close()
}

// Items returns a copy of the items in order.
func (l *List) Items() []Serialisable {
	return append([]Serialisable(nil), l.items...)
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns the i-th item.
func (l *List) At(i int) Serialisable { return l.items[i] }

// Append adds item at the end. Names are not checked for uniqueness.
func (l *List) Append(item Serialisable) {
	l.items = append(l.items, item)
}

// Remove deletes the first occurrence of item and reports whether it was found.
func (l *List) Remove(item Serialisable) bool {
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Named returns all items called name, in order.
func (l *List) Named(name string) []Serialisable {
	var out []Serialisable
	for _, it := range l.items {
		if it.Name() == name {
			out = append(out, it)
		}
	}
	return out
}

// RemoveNamed deletes every item called name and returns them.
func (l *List) RemoveNamed(name string) []Serialisable {
	removed := l.Named(name)
	for _, it := range removed {
		l.Remove(it)
	}
	return removed
}

// VariantNames lists the candidate variants in try order.
func (l *List) VariantNames() []string {
	names := make([]string, len(l.variants))
	for i, v := range l.variants {
		names[i] = v.Name
	}
	return names
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "an empty document"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!int":
			return "an integer"
		case "!!float":
			return "a float"
		case "!!bool":
			return "a boolean"
		default:
			return "a string"
		}
	}
	return "an unknown value"
}
