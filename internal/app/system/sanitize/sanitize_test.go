package sanitize_test

import (
	"testing"

	"github.com/strivefit/coachhub/internal/app/system/sanitize"
)

func TestRichText_KeepsBasicFormatting(t *testing.T) {
	got := sanitize.RichText("<p>Great <strong>session</strong> today</p>")
	want := "<p>Great <strong>session</strong> today</p>"
	if got != want {
		t.Errorf("RichText: got %q, want %q", got, want)
	}
}

func TestRichText_StripsScriptsAndLinks(t *testing.T) {
	got := sanitize.RichText(`<script>alert(1)</script><a href="https://evil.test">hi</a>`)
	if got != "hi" {
		t.Errorf("RichText: got %q, want %q", got, "hi")
	}
}

func TestPlain_StripsAllMarkup(t *testing.T) {
	got := sanitize.Plain("<b>keep the text</b>")
	if got != "keep the text" {
		t.Errorf("Plain: got %q, want %q", got, "keep the text")
	}
}
