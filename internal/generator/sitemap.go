package generator

import (
	"fmt"
	"strings"
	"time"
)

// sitemapDate is the W3C date form; post dates carry no time of day.
const sitemapDate = "2006-01-02"

type sitemapEntry struct {
	loc        string
	lastMod    time.Time
	changeFreq string
	priority   string
}

func sitemapHints(route string) (string, string) {
	switch {
	case route == "/":
		return "daily", "1.0"
	case strings.HasPrefix(route, "/categories/"):
		return "weekly", "0.5"
	}
	return "monthly", "0.8"
}

// buildSitemap lists pages in build order: the listing, categories, then
// articles newest first. Pages without a date use fallback.
func buildSitemap(baseURL string, pages []RenderedPage, fallback time.Time) string {
	seen := make(map[string]struct{}, len(pages))
	entries := make([]sitemapEntry, 0, len(pages))
	for _, page := range pages {
		loc := absoluteURL(baseURL, page.Route)
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		lastMod := page.LastModified
		if lastMod.IsZero() {
			lastMod = fallback
		}
		freq, priority := sitemapHints(page.Route)
		entries = append(entries, sitemapEntry{loc: loc, lastMod: lastMod, changeFreq: freq, priority: priority})
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "  <url><loc>%s</loc>", escapeXML(entry.loc))
		if !entry.lastMod.IsZero() {
			fmt.Fprintf(&b, "<lastmod>%s</lastmod>", entry.lastMod.UTC().Format(sitemapDate))
		}
		fmt.Fprintf(&b, "<changefreq>%s</changefreq><priority>%s</priority></url>\n", entry.changeFreq, entry.priority)
	}
	b.WriteString("</urlset>\n")
	return b.String()
}

// buildRobots allows every crawler and points at the sitemap when one is
// generated.
func buildRobots(baseURL string, includeSitemap bool) string {
	robots := "User-agent: *\nAllow: /\n"
	if includeSitemap {
		robots += "\nSitemap: " + baseURLWithFallback(baseURL) + "/sitemap.xml\n"
	}
	return robots
}
