package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Filter bar pseudo-selectors. Any other selector value is treated as an
// exact category match, so an unknown selector simply matches nothing.
const (
	FilterAll        = "All"
	FilterTrending   = "Trending Now"
	FilterStaffPicks = "Staff Picks"
)

// foldString lowercases for caseless matching. A cases.Caser is stateful, so
// one is created per call rather than shared across goroutines.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// Ranker derives the ordered list of books for the main discovery grid.
// All methods are pure with respect to their inputs: they never mutate the
// passed slice and always return a fresh one.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Score returns the priority score of a book. The first matching flag wins;
// flags are not cumulative.
func Score(b Book) int {
	switch {
	case b.Flags.PushedToTop:
		return 6
	case b.Flags.Trending:
		return 5
	case b.Flags.StaffPick:
		return 4
	case b.Flags.Hot:
		return 3
	case b.Flags.Recommended:
		return 2
	case b.Flags.Signature:
		return 1
	default:
		return 0
	}
}

// Filter returns the books matching both the search term and the active
// filter selector, preserving the input order.
func (r *Ranker) Filter(books []Book, searchTerm, selector string) []Book {
	term := foldString(searchTerm)

	matched := make([]Book, 0, len(books))
	for _, b := range books {
		if matchesSearch(b, term) && matchesSelector(b, selector) {
			matched = append(matched, b)
		}
	}
	return matched
}

func matchesSearch(b Book, foldedTerm string) bool {
	if foldedTerm == "" {
		return true
	}
	if containsFold(b.Title, foldedTerm) || containsFold(b.Author, foldedTerm) || containsFold(b.Category, foldedTerm) {
		return true
	}
	for _, tag := range b.Tags {
		if containsFold(tag, foldedTerm) {
			return true
		}
	}
	return false
}

func containsFold(value, foldedTerm string) bool {
	return strings.Contains(foldString(value), foldedTerm)
}

func matchesSelector(b Book, selector string) bool {
	switch selector {
	case FilterAll, "":
		return true
	case FilterTrending:
		return b.Flags.Trending
	case FilterStaffPicks:
		return b.Flags.StaffPick
	default:
		return b.Category == selector
	}
}

// RankByPriority sorts books by descending priority score. The sort is
// stable: equal-score books keep their relative input order, which makes the
// ranking deterministic for a fixed input.
func (r *Ranker) RankByPriority(books []Book) []Book {
	ranked := make([]Book, len(books))
	copy(ranked, books)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})
	return ranked
}

// ExcludeFeatured removes the book with featuredID from the list; the
// featured book is displayed separately from the grid. An empty or absent id
// leaves the list unchanged.
func (r *Ranker) ExcludeFeatured(books []Book, featuredID string) []Book {
	if featuredID == "" {
		return books
	}
	remaining := make([]Book, 0, len(books))
	for _, b := range books {
		if b.ID != featuredID {
			remaining = append(remaining, b)
		}
	}
	return remaining
}

// Shuffle returns a uniformly random permutation of books (Fisher-Yates).
// A nil rng uses the process-wide locked source; tests inject a seeded one.
func (r *Ranker) Shuffle(books []Book, rng *rand.Rand) []Book {
	shuffled := make([]Book, len(books))
	copy(shuffled, books)

	swap := func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}
	return shuffled
}

// FeaturedID returns the id of the "today's featured" book, but only if it
// survives the current filter; the featured slot is hidden otherwise.
func (r *Ranker) FeaturedID(filtered []Book) string {
	for _, b := range filtered {
		if b.Flags.FeaturedToday {
			return b.ID
		}
	}
	return ""
}

// BuildFeed computes the displayed grid order:
// shuffle(excludeFeatured(rankByPriority(filter(...)))). Every call
// reshuffles; filtering and ranking are deterministic.
func (r *Ranker) BuildFeed(books []Book, searchTerm, selector string, rng *rand.Rand) (grid []Book, featuredID string) {
	filtered := r.Filter(books, searchTerm, selector)
	featuredID = r.FeaturedID(filtered)
	ranked := r.RankByPriority(filtered)
	grid = r.Shuffle(r.ExcludeFeatured(ranked, featuredID), rng)
	return grid, featuredID
}
