// internal/app/system/sanitize/sanitize.go

// Package sanitize cleans user-authored text before it is persisted.
// Messages and notes accept limited formatting; everything else is
// stripped so stored documents never carry active content.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// richText allows basic formatting tags only: bold/italic, lists,
	// paragraphs, line breaks. No links, no images, no attributes.
	richText = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "i", "em", "u", "p", "br", "ul", "ol", "li")
		return p
	}()

	strict = bluemonday.StrictPolicy()
)

// RichText sanitizes user text while preserving basic formatting.
func RichText(s string) string {
	return strings.TrimSpace(richText.Sanitize(s))
}

// Plain strips all markup from user text.
func Plain(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
