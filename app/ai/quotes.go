package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// quoteRegex matches the attributed form: "Quote text" - Author (Source)
var quoteRegex = regexp.MustCompile(`^"(.+?)"(?: - (.+?)(?: \((.+?)\))?)?$`)

// GeneratedQuote is a quote produced by an AI provider
type GeneratedQuote struct {
	Text   string
	Author string
	Source string
}

// QuoteGenerator produces short unfiltered-truth quotes via an AI provider
type QuoteGenerator struct {
	provider Provider
}

// NewQuoteGenerator creates a new quote generator backed by the given provider
func NewQuoteGenerator(provider Provider) *QuoteGenerator {
	return &QuoteGenerator{provider: provider}
}

// Available returns true if the underlying provider is configured
func (q *QuoteGenerator) Available() bool {
	return q.provider != nil && q.provider.Available()
}

// Generate asks the provider for a single quote about the given topic
func (q *QuoteGenerator) Generate(ctx context.Context, topic string) (*GeneratedQuote, error) {
	if !q.Available() {
		return nil, fmt.Errorf("quote provider not available")
	}

	if topic == "" {
		topic = "life, wisdom, or philosophy"
	}

	prompt := fmt.Sprintf(`Generate a brutal, unfiltered truth quote about %s.
The quote must capture an essential, raw insight.
Style: Direct, impactful, thought-provoking. No fluff.
Length: Maximum 280 characters, ideally one concise sentence.
Tone: Intelligent, slightly edgy, and honest.
If possible, attribute to a known philosopher, thinker, or a relevant classic book ONLY if it's a genuine and fitting attribution. Prioritize a powerful original quote if a natural attribution isn't available or strong.
Output format should be just the quote, or "Quote text" - Author (Source) if attributed.`, topic)

	resp, err := q.provider.Generate(ctx, Request{
		UserPrompt:  prompt,
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote: %w", err)
	}

	quote := ParseQuote(resp.Content)
	if quote == nil {
		return nil, fmt.Errorf("provider returned an empty quote")
	}

	return quote, nil
}

// ParseQuote extracts text, author and source from the provider's output.
// Unattributed output becomes a quote with only the text set. Empty output
// returns nil.
func ParseQuote(content string) *GeneratedQuote {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil
	}

	if parts := quoteRegex.FindStringSubmatch(text); parts != nil {
		return &GeneratedQuote{
			Text:   strings.TrimSpace(parts[1]),
			Author: strings.TrimSpace(parts[2]),
			Source: strings.TrimSpace(parts[3]),
		}
	}

	// Unattributed quote, possibly still wrapped in quotation marks
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) > 1 {
		text = text[1 : len(text)-1]
	}

	return &GeneratedQuote{Text: strings.TrimSpace(text)}
}
