package content

import (
	"sort"

	extcontent "github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/graph"
	exttemplates "github.com/goliatone/go-external-content/templates"
)

// idFields lists the paths tried when extracting an item's identifier.
var idFields = []string{"id", "_id", "contentLink.id"}

// parseItems locates the item collection inside a graph response and
// normalizes each entry. Responses carry items either as the first list
// value, or inside the first object value holding an "items" list. Keys are
// scanned in sorted order so the choice is deterministic when a response
// carries several collections.
func parseItems(result map[string]graph.Value, definition *exttemplates.Definition) []*extcontent.Item {
	keys := make([]string, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := result[key]
		switch value.Kind() {
		case graph.KindList:
			return parseItemList(value.ListVal(), definition)
		case graph.KindMap:
			nested, ok := value.MapVal()["items"]
			if ok && nested.Kind() == graph.KindList {
				return parseItemList(nested.ListVal(), definition)
			}
		}
	}
	return nil
}

func parseItemList(entries []graph.Value, definition *exttemplates.Definition) []*extcontent.Item {
	items := make([]*extcontent.Item, 0, len(entries))
	for _, entry := range entries {
		if item := parseItem(entry, definition); item != nil {
			items = append(items, item)
		}
	}
	return items
}

// parseItem normalizes a single response entry. Entries that are not objects
// carry no addressable fields and are skipped.
func parseItem(entry graph.Value, definition *exttemplates.Definition) *extcontent.Item {
	if entry.Kind() != graph.KindMap {
		return nil
	}
	data := entry.MapVal()

	item := &extcontent.Item{
		ContentType: definition.ContentTypeName,
		Data:        data,
	}

	for _, field := range idFields {
		if value, ok := graph.LookupPath(data, field); ok && !value.IsNull() {
			item.ID = value.Text()
			break
		}
	}

	titleOverride := ""
	if definition.TitleFieldName != nil {
		titleOverride = *definition.TitleFieldName
	}
	if value, ok := graph.Resolve(data, titleOverride, graph.DefaultTitleFields); ok {
		item.Title = value.Text()
	}

	thumbnailOverride := ""
	if definition.ThumbnailFieldName != nil {
		thumbnailOverride = *definition.ThumbnailFieldName
	}
	if value, ok := graph.Resolve(data, thumbnailOverride, graph.DefaultThumbnailFields); ok {
		item.ThumbnailURL = value.Text()
	}

	return item
}

// extractTotal pulls the total result count from a response, falling back to
// the parsed item count when the response does not report one.
func extractTotal(result map[string]graph.Value, itemCount int) int {
	if value, ok := result["total"]; ok {
		switch value.Kind() {
		case graph.KindInt:
			return int(value.IntVal())
		case graph.KindFloat:
			return int(value.FloatVal())
		}
	}
	return itemCount
}
