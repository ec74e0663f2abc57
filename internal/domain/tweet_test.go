package domain

import (
	"strings"
	"testing"
)

func TestSplitIntoTweets_ShortText(t *testing.T) {
	parts := SplitIntoTweets("hello world", 0)
	if len(parts) != 1 || parts[0] != "hello world" {
		t.Errorf("got %v, want single part", parts)
	}
}

func TestSplitIntoTweets_Empty(t *testing.T) {
	if parts := SplitIntoTweets("   ", 0); len(parts) != 0 {
		t.Errorf("blank input: got %v, want none", parts)
	}
}

func TestSplitIntoTweets_CutsAtSpace(t *testing.T) {
	parts := SplitIntoTweets("alpha beta gamma delta", 11)
	want := []string{"alpha beta", "gamma delta"}
	if len(parts) != len(want) {
		t.Fatalf("got %v, want %v", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d: got %q, want %q", i, parts[i], want[i])
		}
	}
}

func TestSplitIntoTweets_NoSpaceHardCut(t *testing.T) {
	parts := SplitIntoTweets(strings.Repeat("x", 25), 10)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3: %v", len(parts), parts)
	}
	for i, p := range parts {
		if len(p) > 10 {
			t.Errorf("part %d exceeds limit: %q", i, p)
		}
	}
}

func TestSplitIntoTweets_DefaultLimit(t *testing.T) {
	text := strings.Repeat("word ", 100)
	for i, p := range SplitIntoTweets(text, 0) {
		if len(p) > TweetLimit {
			t.Errorf("part %d exceeds %d chars: %d", i, TweetLimit, len(p))
		}
		if p != strings.TrimSpace(p) {
			t.Errorf("part %d not trimmed: %q", i, p)
		}
	}
}
