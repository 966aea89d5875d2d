package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/freetic/freetic/app/catalog"
)

// fenceRegex strips markdown code fences some models wrap JSON output in.
var fenceRegex = regexp.MustCompile("(?s)^```(?:\\w*)?\\s*\n?(.*?)\n?\\s*```$")

// Recommender matches free-text reader queries against the catalog using an
// AI provider. The provider returns book ids; unknown ids are discarded.
type Recommender struct {
	provider Provider
}

// NewRecommender creates a new recommender backed by the given provider
func NewRecommender(provider Provider) *Recommender {
	return &Recommender{provider: provider}
}

// Available returns true if the underlying provider is configured
func (r *Recommender) Available() bool {
	return r.provider != nil && r.provider.Available()
}

// catalogEntry is the subset of book fields shared with the provider
type catalogEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Hook     string   `json:"hook"`
	Truth    string   `json:"truth"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// Recommend returns the ids of 3-5 catalog books matching the user's query,
// in the order chosen by the provider.
func (r *Recommender) Recommend(ctx context.Context, query string, books []catalog.Book) ([]string, error) {
	if !r.Available() {
		return nil, fmt.Errorf("recommendation provider not available")
	}

	entries := make([]catalogEntry, 0, len(books))
	known := make(map[string]bool, len(books))
	for _, book := range books {
		entries = append(entries, catalogEntry{
			ID:       book.ID,
			Title:    book.Title,
			Summary:  book.Summary,
			Hook:     book.OneLinerHook,
			Truth:    book.BrutalTruth,
			Tags:     book.Tags,
			Category: book.Category,
		})
		known[book.ID] = true
	}

	catalogJSON, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}

	prompt := fmt.Sprintf(`You are a world-class book recommendation assistant for an app called Freetic. Your task is to analyze a user's free-text input describing their problem, goal, or feeling, and recommend 3 to 5 of the most relevant books from the provided catalog.

**Instructions:**
1. Carefully analyze the user's query: %q. Identify the core intent, emotion, and desired outcome.
2. Scan the provided book catalog. Match the user's intent with the book's title, summary, hook, truth, tags, and category.
3. Prioritize books that directly address the user's stated problem.
4. You MUST return your response as a JSON object.
5. The JSON object must have a single key: "recommended_book_ids".
6. The value of "recommended_book_ids" must be an array of strings.
7. Each string in the array must be the exact 'id' of a book from the catalog.
8. Do not include books that are not a strong match. It's better to recommend 3 great matches than 5 weak ones.
9. Do NOT add any explanation or text outside of the JSON object.

**Available Book Catalog:**
%s`, query, catalogJSON)

	resp, err := r.provider.Generate(ctx, Request{
		UserPrompt:   prompt,
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	ids, err := parseRecommendationIDs(resp.Content)
	if err != nil {
		return nil, err
	}

	// Keep only ids that exist in the catalog, preserving provider order
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			result = append(result, id)
		}
	}

	return result, nil
}

// parseRecommendationIDs extracts the recommended_book_ids array from the
// provider's JSON output, tolerating markdown code fences.
func parseRecommendationIDs(content string) ([]string, error) {
	jsonStr := strings.TrimSpace(content)
	if match := fenceRegex.FindStringSubmatch(jsonStr); match != nil {
		jsonStr = strings.TrimSpace(match[1])
	}

	var parsed struct {
		RecommendedBookIDs []string `json:"recommended_book_ids"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	return parsed.RecommendedBookIDs, nil
}
