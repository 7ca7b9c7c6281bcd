// Package markdown converts post bodies into HTML with goldmark.
package markdown
