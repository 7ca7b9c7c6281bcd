package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-blogfront/internal/posts"
)

const defaultFeedItems = 20

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	Categories  []string
	PublishedAt time.Time
}

type feedDocument struct {
	Title       string
	Link        string
	Description string
	Language    string
	Items       []feedItem
}

// buildFeedDocument lists records newest first, as the repository returns
// them, keeping at most limit items.
func buildFeedDocument(cfg Config, records []posts.Record, links map[string]string, limit int) feedDocument {
	if limit <= 0 {
		limit = defaultFeedItems
	}
	doc := feedDocument{
		Title:       siteTitle(cfg),
		Link:        baseURLWithFallback(cfg.BaseURL) + "/",
		Description: feedDescription(cfg),
		Language:    cfg.Language,
	}
	for _, record := range records {
		if len(doc.Items) == limit {
			break
		}
		link, ok := links[record.File]
		if !ok {
			continue
		}
		doc.Items = append(doc.Items, feedItem{
			Title:       record.Title,
			Summary:     normalizeWhitespace(record.Excerpt),
			Link:        link,
			GUID:        record.ID.String(),
			Categories:  record.Categories,
			PublishedAt: record.Published,
		})
	}
	return doc
}

func buildRSSFeed(doc feedDocument, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(doc.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(doc.Link)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(doc.Description)))
	if doc.Language != "" {
		builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(doc.Language)))
	}
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range doc.Items {
		pub := item.PublishedAt
		if pub.IsZero() {
			pub = generatedAt
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"false\">%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		for _, category := range item.Categories {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(category)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func siteTitle(cfg Config) string {
	if title := strings.TrimSpace(cfg.SiteName); title != "" {
		return title
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		return base
	}
	return "Blog"
}

func feedDescription(cfg Config) string {
	if desc := strings.TrimSpace(cfg.Description); desc != "" {
		return desc
	}
	return "Latest posts"
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	if strings.HasPrefix(route, "http://") || strings.HasPrefix(route, "https://") {
		return route
	}
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func normalizeWhitespace(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
