package catalog

import (
	"math/rand"
	"testing"
)

func TestRanker_Filter_SearchAndSelector(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Title: "The Intelligent Investor", Author: "Benjamin Graham", Category: CategoryFinance, Tags: []string{"investing"}},
		{ID: "2", Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: CategoryPsychology, Tags: []string{"decision-making"}},
	}

	// Search and filter must both match (logical AND).
	result := ranker.Filter(books, "Graham", CategoryFinance)
	if len(result) != 1 || result[0].ID != "1" {
		t.Errorf("Expected only the Graham book for search=Graham filter=Finance, got %d items", len(result))
	}

	// Same search term, mismatching category filter.
	result = ranker.Filter(books, "Graham", CategoryPsychology)
	if len(result) != 0 {
		t.Errorf("Expected no items for search=Graham filter=Psychology, got %d", len(result))
	}
}

func TestRanker_Filter_CaseInsensitive(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Title: "Atomic Habits", Author: "James Clear", Category: CategorySelfGrowth, Tags: []string{"Productivity"}},
	}

	for _, term := range []string{"ATOMIC", "james CLEAR", "productivity", "self-growth"} {
		if len(ranker.Filter(books, term, FilterAll)) != 1 {
			t.Errorf("Expected search %q to match", term)
		}
	}

	if len(ranker.Filter(books, "cosmos", FilterAll)) != 0 {
		t.Error("Expected no match for unrelated search term")
	}
}

func TestRanker_Filter_EmptyTermMatchesAll(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Category: CategoryScience},
		{ID: "2", Category: CategoryHistory},
	}

	result := ranker.Filter(books, "", FilterAll)
	if len(result) != 2 {
		t.Errorf("Expected all books for empty search, got %d", len(result))
	}

	// Order must be preserved (stable filter).
	if result[0].ID != "1" || result[1].ID != "2" {
		t.Error("Filter should preserve input order")
	}
}

func TestRanker_Filter_PseudoSelectors(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Category: CategoryScience, Flags: Flags{Trending: true}},
		{ID: "2", Category: CategoryHistory, Flags: Flags{StaffPick: true}},
		{ID: "3", Category: CategoryHistory},
	}

	tests := []struct {
		selector string
		wantIDs  []string
	}{
		{FilterAll, []string{"1", "2", "3"}},
		{FilterTrending, []string{"1"}},
		{FilterStaffPicks, []string{"2"}},
		{CategoryHistory, []string{"2", "3"}},
		{"No Such Filter", nil},
	}

	for _, tt := range tests {
		result := ranker.Filter(books, "", tt.selector)
		if len(result) != len(tt.wantIDs) {
			t.Errorf("selector %q: expected %d books, got %d", tt.selector, len(tt.wantIDs), len(result))
			continue
		}
		for i, id := range tt.wantIDs {
			if result[i].ID != id {
				t.Errorf("selector %q: expected %s at position %d, got %s", tt.selector, id, i, result[i].ID)
			}
		}
	}
}

func TestScore_FirstMatchingFlagWins(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  int
	}{
		{"pushed to top", Flags{PushedToTop: true}, 6},
		{"trending", Flags{Trending: true}, 5},
		{"staff pick", Flags{StaffPick: true}, 4},
		{"hot", Flags{Hot: true}, 3},
		{"recommended", Flags{Recommended: true}, 2},
		{"signature", Flags{Signature: true}, 1},
		{"no flags", Flags{}, 0},
		{"pushed wins over trending", Flags{PushedToTop: true, Trending: true}, 6},
		{"hot wins over signature", Flags{Hot: true, Signature: true}, 3},
		{"featured flags do not score", Flags{FeaturedToday: true, FeaturedInCarousel: true}, 0},
	}

	for _, tt := range tests {
		if got := Score(Book{Flags: tt.flags}); got != tt.want {
			t.Errorf("%s: expected score %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestRanker_RankByPriority_Ordering(t *testing.T) {
	ranker := NewRanker()

	a := Book{ID: "A", Flags: Flags{PushedToTop: true}}
	b := Book{ID: "B", Flags: Flags{Trending: true}}
	c := Book{ID: "C"}

	// Any input order must yield [A, B, C].
	inputs := [][]Book{
		{a, b, c},
		{c, b, a},
		{b, c, a},
	}

	for _, input := range inputs {
		ranked := ranker.RankByPriority(input)
		if ranked[0].ID != "A" || ranked[1].ID != "B" || ranked[2].ID != "C" {
			t.Errorf("Expected [A B C], got [%s %s %s]", ranked[0].ID, ranked[1].ID, ranked[2].ID)
		}
	}
}

func TestRanker_RankByPriority_StableForEqualScores(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1"},
		{ID: "2"},
		{ID: "3", Flags: Flags{Hot: true}},
		{ID: "4"},
	}

	ranked := ranker.RankByPriority(books)
	want := []string{"3", "1", "2", "4"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, ranked[i].ID)
		}
	}

	// Input must not be mutated.
	if books[0].ID != "1" {
		t.Error("RankByPriority mutated its input")
	}
}

func TestRanker_RankByPriority_Deterministic(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Title: "One", Flags: Flags{Signature: true}},
		{ID: "2", Title: "Two", Flags: Flags{Trending: true}},
		{ID: "3", Title: "Three"},
		{ID: "4", Title: "Four", Flags: Flags{Trending: true}},
	}

	first := ranker.RankByPriority(ranker.Filter(books, "", FilterAll))
	for i := 0; i < 20; i++ {
		again := ranker.RankByPriority(ranker.Filter(books, "", FilterAll))
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("Ranking not deterministic on run %d at position %d", i, j)
			}
		}
	}
}

func TestRanker_ExcludeFeatured(t *testing.T) {
	ranker := NewRanker()

	books := []Book{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	result := ranker.ExcludeFeatured(books, "2")
	if len(result) != 2 || result[0].ID != "1" || result[1].ID != "3" {
		t.Errorf("Expected [1 3], got %v", result)
	}

	// Absent id and empty id leave the list unchanged.
	if len(ranker.ExcludeFeatured(books, "missing")) != 3 {
		t.Error("Absent featured id should leave list unchanged")
	}
	if len(ranker.ExcludeFeatured(books, "")) != 3 {
		t.Error("Empty featured id should leave list unchanged")
	}
}

func TestRanker_FeaturedID_RespectsFilter(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Category: CategoryScience, Flags: Flags{FeaturedToday: true}},
		{ID: "2", Category: CategoryHistory},
	}

	filtered := ranker.Filter(books, "", FilterAll)
	if got := ranker.FeaturedID(filtered); got != "1" {
		t.Errorf("Expected featured id 1, got %q", got)
	}

	// The featured book is hidden when the active filter excludes it.
	filtered = ranker.Filter(books, "", CategoryHistory)
	if got := ranker.FeaturedID(filtered); got != "" {
		t.Errorf("Expected no featured id under History filter, got %q", got)
	}
}

func TestRanker_Shuffle_Uniformity(t *testing.T) {
	ranker := NewRanker()
	rng := rand.New(rand.NewSource(42))

	books := []Book{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}

	const runs = 10000
	counts := make(map[string][]int, len(books))
	for _, b := range books {
		counts[b.ID] = make([]int, len(books))
	}

	for i := 0; i < runs; i++ {
		shuffled := ranker.Shuffle(books, rng)
		if len(shuffled) != len(books) {
			t.Fatalf("Shuffle changed length: %d", len(shuffled))
		}
		for pos, b := range shuffled {
			counts[b.ID][pos]++
		}
	}

	// Each of the 25 (item, position) cells should be near runs/5. A biased
	// shuffle (e.g. random-comparator sort) deviates far beyond 10%.
	expected := float64(runs) / float64(len(books))
	tolerance := expected * 0.10
	for id, positions := range counts {
		for pos, count := range positions {
			diff := float64(count) - expected
			if diff < -tolerance || diff > tolerance {
				t.Errorf("Item %s at position %d: %d occurrences, expected %.0f±%.0f", id, pos, count, expected, tolerance)
			}
		}
	}

	// Input order untouched.
	if books[0].ID != "a" || books[4].ID != "e" {
		t.Error("Shuffle mutated its input")
	}
}

func TestRanker_BuildFeed_EndToEnd(t *testing.T) {
	ranker := NewRanker()

	bookA := Book{ID: "A", Title: "BookA", Category: CategoryScience, Flags: Flags{Trending: true}}
	bookB := Book{ID: "B", Title: "BookB", Category: CategoryHistory, Flags: Flags{StaffPick: true}}
	bookC := Book{ID: "C", Title: "BookC", Category: CategoryFinance}
	books := []Book{bookC, bookB, bookA}

	// Deterministic part: filter then rank yields A, B, C.
	ranked := ranker.RankByPriority(ranker.Filter(books, "", FilterAll))
	if ranked[0].ID != "A" || ranked[1].ID != "B" || ranked[2].ID != "C" {
		t.Fatalf("Expected ranked order [A B C], got [%s %s %s]", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}

	// Full pipeline: a permutation of the same three books, no featured id.
	rng := rand.New(rand.NewSource(7))
	grid, featuredID := ranker.BuildFeed(books, "", FilterAll, rng)
	if featuredID != "" {
		t.Errorf("Expected no featured id, got %q", featuredID)
	}
	if len(grid) != 3 {
		t.Fatalf("Expected 3 books in grid, got %d", len(grid))
	}
	seen := map[string]bool{}
	for _, b := range grid {
		seen[b.ID] = true
	}
	if !seen["A"] || !seen["B"] || !seen["C"] {
		t.Errorf("Grid is not a permutation of the input: %v", seen)
	}

	// A refresh (second call) may yield a different permutation; over many
	// refreshes at least two distinct orders must appear.
	orders := map[string]bool{}
	for i := 0; i < 50; i++ {
		grid, _ = ranker.BuildFeed(books, "", FilterAll, rng)
		key := ""
		for _, b := range grid {
			key += b.ID
		}
		orders[key] = true
	}
	if len(orders) < 2 {
		t.Error("Expected refresh to produce differing permutations")
	}
}

func TestRanker_BuildFeed_FeaturedExcludedFromGrid(t *testing.T) {
	ranker := NewRanker()

	books := []Book{
		{ID: "1", Category: CategoryScience, Flags: Flags{FeaturedToday: true}},
		{ID: "2", Category: CategoryScience},
	}

	grid, featuredID := ranker.BuildFeed(books, "", FilterAll, rand.New(rand.NewSource(1)))
	if featuredID != "1" {
		t.Fatalf("Expected featured id 1, got %q", featuredID)
	}
	if len(grid) != 1 || grid[0].ID != "2" {
		t.Errorf("Expected grid to hold only book 2, got %v", grid)
	}
}
