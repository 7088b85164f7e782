// Package mustache implements the logic-light template dialect used for
// external content rendering: variable substitution, truthy and inverted
// sections, array iteration, dot-path lookups, and case-insensitive keys.
// Templates are trusted editor content, so substitution is literal with no
// output escaping, and literal text is preserved byte for byte.
package mustache

import (
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-external-content/graph"
)

// MaxDepth caps binding-scope nesting during evaluation. Exceeding it aborts
// the render so cyclic or adversarial templates cannot expand unboundedly.
const MaxDepth = 10

// ErrMaxDepth is returned when section nesting exceeds MaxDepth.
var ErrMaxDepth = errors.New("mustache: max section depth exceeded")

// Render evaluates a template against a normalized binding. Syntactically
// balanced templates never fail regardless of the data shape; unbalanced
// sections, unclosed tags, and depth overruns return an error.
func Render(template string, data map[string]graph.Value) (string, error) {
	nodes, err := parse(template)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(template))
	scopes := []graph.Value{graph.Map(data)}
	if err := renderNodes(&out, nodes, scopes); err != nil {
		return "", err
	}
	return out.String(), nil
}

func renderNodes(out *strings.Builder, nodes []node, scopes []graph.Value) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case textNode:
			out.WriteString(string(node))
		case varNode:
			if value, ok := lookup(scopes, node.path); ok {
				out.WriteString(value.Text())
			}
		case *sectionNode:
			if err := renderSection(out, node, scopes); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderSection(out *strings.Builder, section *sectionNode, scopes []graph.Value) error {
	value, ok := lookup(scopes, section.path)
	falsy := !ok || !value.Truthy()

	if section.inverted {
		if falsy {
			return renderNodes(out, section.children, scopes)
		}
		return nil
	}
	if falsy {
		return nil
	}

	if len(scopes) > MaxDepth {
		return ErrMaxDepth
	}

	if value.Kind() == graph.KindList {
		for _, element := range value.ListVal() {
			if err := renderNodes(out, section.children, append(scopes, element)); err != nil {
				return err
			}
		}
		return nil
	}
	return renderNodes(out, section.children, append(scopes, value))
}

// lookup resolves a dot path against the binding-scope stack. The first
// segment is searched from the innermost scope outward; once a scope claims
// it, the remaining segments resolve relative to that scope only. The path
// "." names the innermost scope itself.
func lookup(scopes []graph.Value, path string) (graph.Value, bool) {
	if path == "." {
		top := scopes[len(scopes)-1]
		if top.IsNull() {
			return graph.Value{}, false
		}
		return top, true
	}

	segments := strings.Split(path, ".")
	for i := len(scopes) - 1; i >= 0; i-- {
		frame := scopes[i]
		if frame.Kind() != graph.KindMap {
			continue
		}
		value, ok := lookupKey(frame.MapVal(), segments[0])
		if !ok {
			continue
		}
		for _, segment := range segments[1:] {
			if value.Kind() != graph.KindMap {
				return graph.Value{}, false
			}
			value, ok = lookupKey(value.MapVal(), segment)
			if !ok {
				return graph.Value{}, false
			}
		}
		if value.IsNull() {
			return graph.Value{}, false
		}
		return value, true
	}
	return graph.Value{}, false
}

// lookupKey matches exactly first, then case-insensitively. The fold scan
// walks keys in sorted order so a template with ambiguous casing resolves
// deterministically.
func lookupKey(entries map[string]graph.Value, key string) (graph.Value, bool) {
	if value, ok := entries[key]; ok {
		return value, true
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return entries[k], true
		}
	}
	return graph.Value{}, false
}
