package enhance

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Language is the optional NLP capability: sentence segmentation and
// noun-phrase extraction. It is selected once at startup and injected;
// callers never probe for availability themselves.
type Language interface {
	// Sentences segments text into sentences, in document order.
	// Returns nil when segmentation is unavailable.
	Sentences(text string) []string

	// NounPhrases returns up to max noun-phrase spans in document
	// order. Returns nil when tagging is unavailable.
	NounPhrases(text string, max int) []string
}

// NewLanguage returns the prose-backed capability when enabled, else
// the deterministic truncation/empty-list fallback.
func NewLanguage(enabled bool) Language {
	if enabled {
		return proseLanguage{}
	}
	return noLanguage{}
}

// proseLanguage implements Language with jdkato/prose.
type proseLanguage struct{}

func (proseLanguage) Sentences(text string) []string {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return nil
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, strings.TrimSpace(s.Text))
	}
	return out
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func isAdjectiveTag(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}

// NounPhrases groups consecutive noun tokens (optionally led by
// adjectives) into phrases, in document order.
func (proseLanguage) NounPhrases(text string, max int) []string {
	if text == "" || max <= 0 {
		return nil
	}
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var (
		phrases []string
		words   []string
		hasNoun bool
	)
	flush := func() {
		if hasNoun && len(words) > 0 {
			phrases = append(phrases, strings.Join(words, " "))
		}
		words = nil
		hasNoun = false
	}

	for _, tok := range doc.Tokens() {
		switch {
		case isNounTag(tok.Tag):
			words = append(words, tok.Text)
			hasNoun = true
		case isAdjectiveTag(tok.Tag) && len(words) == 0:
			words = append(words, tok.Text)
		default:
			flush()
		}
		if len(phrases) >= max {
			return phrases
		}
	}
	flush()

	if len(phrases) > max {
		phrases = phrases[:max]
	}
	return phrases
}

// noLanguage is the unavailable variant: deterministic fallbacks only.
type noLanguage struct{}

func (noLanguage) Sentences(string) []string        { return nil }
func (noLanguage) NounPhrases(string, int) []string { return nil }
