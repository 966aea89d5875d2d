package ai

import (
	"context"
	"testing"
)

func TestParseQuoteFullAttribution(t *testing.T) {
	quote := ParseQuote(`"The unexamined life is not worth living." - Socrates (Plato's Apology)`)
	if quote == nil {
		t.Fatal("Expected a parsed quote")
	}

	if quote.Text != "The unexamined life is not worth living." {
		t.Errorf("Unexpected quote text: %q", quote.Text)
	}
	if quote.Author != "Socrates" {
		t.Errorf("Expected author 'Socrates', got '%s'", quote.Author)
	}
	if quote.Source != "Plato's Apology" {
		t.Errorf("Expected source 'Plato's Apology', got '%s'", quote.Source)
	}
}

func TestParseQuoteAuthorOnly(t *testing.T) {
	quote := ParseQuote(`"Man is condemned to be free." - Sartre`)
	if quote == nil {
		t.Fatal("Expected a parsed quote")
	}

	if quote.Author != "Sartre" {
		t.Errorf("Expected author 'Sartre', got '%s'", quote.Author)
	}
	if quote.Source != "" {
		t.Errorf("Expected empty source, got '%s'", quote.Source)
	}
}

func TestParseQuoteUnattributed(t *testing.T) {
	quote := ParseQuote(`"Comfort is a slow death."`)
	if quote == nil {
		t.Fatal("Expected a parsed quote")
	}

	if quote.Text != "Comfort is a slow death." {
		t.Errorf("Unexpected quote text: %q", quote.Text)
	}
	if quote.Author != "" {
		t.Errorf("Expected no author, got '%s'", quote.Author)
	}
}

func TestParseQuoteBareText(t *testing.T) {
	quote := ParseQuote("Nobody is coming to save you.")
	if quote == nil {
		t.Fatal("Expected a parsed quote")
	}

	if quote.Text != "Nobody is coming to save you." {
		t.Errorf("Unexpected quote text: %q", quote.Text)
	}
}

func TestParseQuoteEmpty(t *testing.T) {
	if ParseQuote("") != nil {
		t.Error("Expected nil for empty content")
	}
	if ParseQuote("   \n  ") != nil {
		t.Error("Expected nil for whitespace-only content")
	}
}

func TestGenerateQuote(t *testing.T) {
	provider := &fakeProvider{
		content:   `"Discipline is choosing what you want most over what you want now." - Abraham Lincoln`,
		available: true,
	}

	generator := NewQuoteGenerator(provider)
	quote, err := generator.Generate(context.Background(), "discipline")
	if err != nil {
		t.Fatal(err)
	}

	if quote.Author != "Abraham Lincoln" {
		t.Errorf("Expected author 'Abraham Lincoln', got '%s'", quote.Author)
	}
	if provider.lastReq.JSONResponse {
		t.Error("Quote generation should not request JSON output")
	}
}

func TestGenerateQuoteUnavailable(t *testing.T) {
	generator := NewQuoteGenerator(&fakeProvider{available: false})
	if _, err := generator.Generate(context.Background(), ""); err == nil {
		t.Error("Expected error when provider is unavailable")
	}
}
