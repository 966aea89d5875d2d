package api

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freetic/freetic/app/ai"
	"github.com/freetic/freetic/app/catalog"
	"github.com/freetic/freetic/app/database"
	"github.com/freetic/freetic/app/tasks"
)

func NewHandler(bookRepo database.BookRepository, historyRepo database.HistoryRepository,
	shelfRepo database.ShelfRepository, adRepo database.AdConfigRepository,
	quoteRepo database.QuoteRepository, recommender *ai.Recommender,
	quoteGen *ai.QuoteGenerator, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		bookRepo:    bookRepo,
		historyRepo: historyRepo,
		shelfRepo:   shelfRepo,
		adRepo:      adRepo,
		quoteRepo:   quoteRepo,
		ranker:      catalog.NewRanker(),
		recommender: recommender,
		quoteGen:    quoteGen,
		scheduler:   scheduler,
	}
}

// GetFeed returns the ranked, shuffled discovery grid. Every request
// reshuffles; the optional integer seed query parameter pins the permutation.
func (h *Handler) GetFeed(c *gin.Context) {
	search := c.Query("search")
	selector := c.DefaultQuery("filter", catalog.FilterAll)

	var rng *rand.Rand
	if seedParam := c.Query("seed"); seedParam != "" {
		seed, err := strconv.ParseInt(seedParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seed parameter"})
			return
		}
		rng = rand.New(rand.NewSource(seed))
	}

	books, err := h.bookRepo.GetPublished()
	if err != nil {
		slog.Error("Database error", "operation", "get_published_books", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	grid, featuredID := h.ranker.BuildFeed(books, search, selector, rng)

	var featured *catalog.Book
	if featuredID != "" {
		for i := range books {
			if books[i].ID == featuredID {
				featured = &books[i]
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"books":    grid,
		"featured": featured,
		"total":    len(grid),
	})
}

func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.bookRepo.GetPublished()
	if err != nil {
		slog.Error("Database error", "operation", "list_books", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"total": len(books),
	})
}

func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := h.bookRepo.GetBook(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *Handler) ListShelves(c *gin.Context) {
	shelves, err := h.shelfRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_shelves", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shelves": shelves,
		"total":   len(shelves),
	})
}

// ListHistory returns the recent reading history, newest first. A storage
// failure is reported as an error, never as an empty list.
func (h *Handler) ListHistory(c *gin.Context) {
	entries, err := h.historyRepo.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": entries,
		"total":   len(entries),
	})
}

func (h *Handler) AddHistory(c *gin.Context) {
	var input database.HistoryEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.BookID == "" || input.BookTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookId and bookTitle are required"})
		return
	}
	switch input.Mode {
	case catalog.ModeRead, catalog.ModeAudio:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be 'read' or 'audio'"})
		return
	}
	if input.OpenedAt == 0 {
		input.OpenedAt = time.Now().UnixMilli()
	}

	if err := h.historyRepo.Add(input); err != nil {
		slog.Error("Database error", "operation", "add_history", "book_id", input.BookID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record history"})
		return
	}

	c.Status(http.StatusCreated)
}

func (h *Handler) DeleteHistoryEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history entry id"})
		return
	}

	if err := h.historyRepo.Delete(id); err != nil {
		slog.Error("Database error", "operation", "delete_history", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete history entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.historyRepo.Clear(); err != nil {
		slog.Error("Database error", "operation", "clear_history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetRecommendations(c *gin.Context) {
	if h.recommender == nil || !h.recommender.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recommendation service not configured"})
		return
	}

	var input struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	books, err := h.bookRepo.GetPublished()
	if err != nil {
		slog.Error("Database error", "operation", "get_published_books", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	ids, err := h.recommender.Recommend(c.Request.Context(), input.Query, books)
	if err != nil {
		slog.Error("Recommendation error", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendedBookIds": ids,
	})
}

// GetRandomQuote serves an AI-generated quote when a provider is configured,
// falling back to a stored quote otherwise.
func (h *Handler) GetRandomQuote(c *gin.Context) {
	topic := c.Query("topic")

	if h.quoteGen != nil && h.quoteGen.Available() {
		generated, err := h.quoteGen.Generate(c.Request.Context(), topic)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"text":       generated.Text,
				"author":     generated.Author,
				"sourceBook": generated.Source,
				"generated":  true,
			})
			return
		}
		slog.Warn("Quote generation failed, using stored quote", "error", err)
	}

	quote, err := h.quoteRepo.GetRandom()
	if err != nil {
		slog.Error("Database error", "operation", "get_random_quote", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if quote == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quotes available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":       quote.Text,
		"author":     quote.Author,
		"sourceBook": quote.SourceBook,
		"generated":  false,
	})
}

func (h *Handler) GetAdConfig(c *gin.Context) {
	config, err := h.adRepo.Get()
	if err != nil {
		slog.Error("Database error", "operation", "get_ad_config", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config": config,
		"active": config.Active(time.Now().UnixMilli()),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if bookCount, err := h.bookRepo.GetBookCount(); err == nil {
		health["books"] = bookCount
	}

	if historyCount, err := h.historyRepo.Count(); err == nil {
		health["history_entries"] = historyCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if bookCount, err := h.bookRepo.GetBookCount(); err == nil {
		stats["books"] = bookCount
	}

	if quoteCount, err := h.quoteRepo.GetQuoteCount(); err == nil {
		stats["quotes"] = quoteCount
	}

	if shelves, err := h.shelfRepo.GetAll(); err == nil {
		stats["shelves"] = len(shelves)
	}

	if historyCount, err := h.historyRepo.Count(); err == nil {
		stats["history_entries"] = historyCount
	}

	stats["recommendations_available"] = h.recommender != nil && h.recommender.Available()

	c.JSON(http.StatusOK, stats)
}
