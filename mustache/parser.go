package mustache

import (
	"fmt"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// UnclosedTagError reports a tag opener without a matching closer.
type UnclosedTagError struct {
	Offset int
}

func (e *UnclosedTagError) Error() string {
	return fmt.Sprintf("mustache: unclosed tag at offset %d", e.Offset)
}

// UnclosedSectionError reports a section opened but never closed.
type UnclosedSectionError struct {
	Key string
}

func (e *UnclosedSectionError) Error() string {
	return fmt.Sprintf("mustache: unclosed section %q", e.Key)
}

// SectionMismatchError reports a close tag that does not match the
// innermost open section.
type SectionMismatchError struct {
	Open  string
	Close string
}

func (e *SectionMismatchError) Error() string {
	if e.Open == "" {
		return fmt.Sprintf("mustache: unexpected close tag %q", e.Close)
	}
	return fmt.Sprintf("mustache: close tag %q does not match open section %q", e.Close, e.Open)
}

type node interface{}

// textNode holds literal template text, preserved byte for byte.
type textNode string

// varNode substitutes the value found at a dot path.
type varNode struct {
	path string
}

// sectionNode renders its children zero or more times depending on the
// truthiness and shape of the value at its path.
type sectionNode struct {
	path     string
	inverted bool
	children []node
}

// parse tokenizes a template into a node tree. Literal text outside tags is
// kept untouched, including all whitespace.
func parse(template string) ([]node, error) {
	root := make([]node, 0, 4)
	stack := []*sectionNode{}
	appendNode := func(n node) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, n)
			return
		}
		root = append(root, n)
	}

	rest := template
	offset := 0
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			if rest != "" {
				appendNode(textNode(rest))
			}
			break
		}
		if start > 0 {
			appendNode(textNode(rest[:start]))
		}
		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end < 0 {
			return nil, &UnclosedTagError{Offset: offset + start}
		}
		tag := strings.TrimSpace(rest[start+len(openDelim) : start+len(openDelim)+end])
		consumed := start + len(openDelim) + end + len(closeDelim)

		switch {
		case strings.HasPrefix(tag, "#"):
			section := &sectionNode{path: strings.TrimSpace(tag[1:])}
			appendNode(section)
			stack = append(stack, section)
		case strings.HasPrefix(tag, "^"):
			section := &sectionNode{path: strings.TrimSpace(tag[1:]), inverted: true}
			appendNode(section)
			stack = append(stack, section)
		case strings.HasPrefix(tag, "/"):
			key := strings.TrimSpace(tag[1:])
			if len(stack) == 0 {
				return nil, &SectionMismatchError{Close: key}
			}
			top := stack[len(stack)-1]
			if !strings.EqualFold(top.path, key) {
				return nil, &SectionMismatchError{Open: top.path, Close: key}
			}
			stack = stack[:len(stack)-1]
		default:
			appendNode(varNode{path: tag})
		}

		rest = rest[consumed:]
		offset += consumed
	}

	if len(stack) > 0 {
		return nil, &UnclosedSectionError{Key: stack[len(stack)-1].path}
	}
	return root, nil
}
