package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("Educación", 8); got != "Educació..." {
		t.Errorf("multi-byte runes should not be split, got %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := JoinNonEmpty([]string{"a", "", "  ", "b"}, ","); got != "a,b" {
		t.Errorf("got %q", got)
	}
	if got := JoinNonEmpty(nil, ","); got != "" {
		t.Errorf("got %q", got)
	}
}
