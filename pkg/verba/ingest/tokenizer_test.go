package ingest

import (
	"strings"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tokens := Tokenize("Call me Ishmael")

	expected := []string{"call", "me", "ishmael"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("Token %d: got %q, want %q", i, tokens[i], want)
		}
	}
}

func TestTokenizeKeepsShortTokens(t *testing.T) {
	tokens := Tokenize("I am a 7")

	expected := []string{"i", "am", "a", "7"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("Token %d: got %q, want %q", i, tokens[i], want)
		}
	}
}

func TestTokenizeUnderscoreAndDigits(t *testing.T) {
	tokens := Tokenize("chapter_1 begins at 09:30")

	expected := []string{"chapter_1", "begins", "at", "09", "30"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("Token %d: got %q, want %q", i, tokens[i], want)
		}
	}
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	tokens := Tokenize("whale-road; the sea's call.")

	// Hyphens and apostrophes are separators, not token characters.
	expected := []string{"whale", "road", "the", "sea", "s", "call"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("Token %d: got %q, want %q", i, tokens[i], want)
		}
	}
}

func TestTokenizeLowercases(t *testing.T) {
	tokens := Tokenize("MOBY Dick CALL")

	for _, tok := range tokens {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %q should be lowercased", tok)
		}
	}
}

func TestTokenizeUnicode(t *testing.T) {
	tokens := Tokenize("Café Müller straße")

	expected := []string{"café", "müller", "straße"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i, want := range expected {
		if tokens[i] != want {
			t.Errorf("Token %d: got %q, want %q", i, tokens[i], want)
		}
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Errorf("Empty input should yield no tokens, got %v", tokens)
	}
	if tokens := Tokenize("...!?  \n\t"); len(tokens) != 0 {
		t.Errorf("Separator-only input should yield no tokens, got %v", tokens)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	text := "Title: Moby Dick\nCall me Ishmael. Some years ago I went to sea."

	once := Tokenize(text)
	twice := Tokenize(strings.Join(once, " "))

	if len(once) != len(twice) {
		t.Fatalf("Re-tokenizing changed token count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Token %d changed on re-tokenize: %q vs %q", i, once[i], twice[i])
		}
	}
}
