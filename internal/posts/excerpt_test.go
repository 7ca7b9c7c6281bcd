package posts

import (
	"strings"
	"testing"
)

func TestCutExcerptStopsAtMarker(t *testing.T) {
	if got := cutExcerpt("Hello <!--more--> World"); got != "Hello " {
		t.Fatalf("expected %q, got %q", "Hello ", got)
	}
	if got := Excerpt("Hello <!--more--> World"); got != "Hello" {
		t.Fatalf("expected trimmed %q, got %q", "Hello", got)
	}
}

func TestExcerptUsesFirstMarkerOnly(t *testing.T) {
	got := Excerpt("one <!--more--> two <!--more--> three")
	if got != "one" {
		t.Fatalf("expected %q, got %q", "one", got)
	}
}

func TestExcerptTruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)

	got := Excerpt(body)

	want := strings.Repeat("a", 60) + " " + strings.Repeat("b", 39) + "..."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExcerptStripsMarkdownSymbols(t *testing.T) {
	got := Excerpt("# Title\n**bold** `code` $x$ ![img](a.png) [link](b)<!--more-->rest")
	want := "Title bold code x img(a.png) link(b)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExcerptCountsRunes(t *testing.T) {
	body := strings.Repeat("字", 120)
	got := Excerpt(body)
	if got != strings.Repeat("字", 100)+"..." {
		t.Fatalf("expected 100 runes plus ellipsis, got %d runes", len([]rune(got)))
	}
}

func TestExcerptShortBodyStillGetsEllipsis(t *testing.T) {
	if got := Excerpt("short"); got != "short..." {
		t.Fatalf("expected %q, got %q", "short...", got)
	}
}
