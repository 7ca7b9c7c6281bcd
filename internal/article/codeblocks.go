package article

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// LanguageAttr on a pre element names the code block language.
	LanguageAttr    = "data-lang"
	defaultLanguage = "CODE"
	languagePrefix  = "language-"

	// CopyButton is appended to every labelled code block. The page script
	// copies the block's code on click.
	CopyButton = `<button type="button" class="copy-btn" aria-label="Copy code">Copy</button>`
)

// LabelCodeBlocks sets LanguageAttr on every pre element wrapping a code
// element and appends CopyButton to it. The label is the upper-cased
// language-* class, or CODE.
func LabelCodeBlocks(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	blocks := doc.Find("pre > code")
	if blocks.Length() == 0 {
		return body, nil
	}
	blocks.Each(func(_ int, code *goquery.Selection) {
		pre := code.Parent()
		pre.SetAttr(LanguageAttr, codeLanguage(code.AttrOr("class", "")))
		pre.AppendHtml(CopyButton)
	})
	return doc.Find("body").Html()
}

func codeLanguage(class string) string {
	for _, name := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(name, languagePrefix); ok && lang != "" {
			return strings.ToUpper(lang)
		}
	}
	return defaultLanguage
}
