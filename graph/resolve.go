package graph

import "strings"

// DefaultTitleFields lists the field names tried when a template does not
// configure an explicit title field.
var DefaultTitleFields = []string{"name", "title", "Name", "Title", "displayName", "DisplayName"}

// DefaultThumbnailFields lists the field names tried when a template does not
// configure an explicit thumbnail field.
var DefaultThumbnailFields = []string{"thumbnail", "image", "thumbnailUrl", "imageUrl", "Thumbnail", "Image"}

// thumbnailURLKey is the sub-key tried when a candidate resolves to an
// object, e.g. an image asset shaped as {"url": "...", "alt": "..."}.
const thumbnailURLKey = "url"

// Resolve finds a logical field in a normalized item. When override is
// non-empty it is the only candidate; otherwise the fallbacks are tried
// verbatim, in order. Candidates support dot-separated nested paths. The
// first candidate resolving to a present, non-null value wins; a candidate
// resolving to a map is retried through its "url" sub-key before being
// skipped. The second return is false when no candidate resolves.
func Resolve(item map[string]Value, override string, fallbacks []string) (Value, bool) {
	candidates := fallbacks
	if strings.TrimSpace(override) != "" {
		candidates = []string{override}
	}

	for _, candidate := range candidates {
		value, ok := LookupPath(item, candidate)
		if !ok || value.IsNull() {
			continue
		}
		if value.Kind() == KindMap {
			nested, nestedOK := value.MapVal()[thumbnailURLKey]
			if nestedOK && !nested.IsNull() {
				return nested, true
			}
			continue
		}
		return value, true
	}

	return Value{}, false
}

// LookupPath descends through nested maps following a dot-separated path.
// Key matching is exact; traversal stops as soon as a segment is missing or
// the current value is not a map.
func LookupPath(item map[string]Value, path string) (Value, bool) {
	segments := strings.Split(path, ".")
	current := Map(item)
	for _, segment := range segments {
		if current.Kind() != KindMap {
			return Value{}, false
		}
		next, ok := current.MapVal()[segment]
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}
