package posts

import "strings"

// FilterByCategory keeps the records tagged with category, in order.
func FilterByCategory(records []Record, category string) []Record {
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if record.HasCategory(category) {
			out = append(out, record)
		}
	}
	return out
}

// Search keeps the records whose title or content contains query, ignoring
// case. A blank query matches everything.
func Search(records []Record, query string) []Record {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return append([]Record(nil), records...)
	}
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Title), needle) ||
			strings.Contains(strings.ToLower(record.Content), needle) {
			out = append(out, record)
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order. Tags are not
// included.
func Categories(records []Record) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, record := range records {
		for _, category := range record.Categories {
			if _, ok := seen[category]; ok {
				continue
			}
			seen[category] = struct{}{}
			out = append(out, category)
		}
	}
	return out
}
