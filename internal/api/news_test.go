package api

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("under limit changed: %q", got)
	}

	long := strings.Repeat("a", 50)
	got := truncateText(long, 20)
	if len(got) != 20 || !strings.HasSuffix(got, "...") {
		t.Errorf("ascii truncation = %q (len %d)", got, len(got))
	}

	// The cut point lands mid-rune; the result must still be valid UTF-8.
	multi := strings.Repeat("é", 50) // 2 bytes each
	got = truncateText(multi, 20)
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if len(got) > 20 {
		t.Errorf("truncation over limit: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}
