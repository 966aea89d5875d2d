package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freetic/freetic/app/catalog"
	"github.com/freetic/freetic/app/database"
	"github.com/freetic/freetic/app/tasks"
)

func (h *Handler) APICreateBook(c *gin.Context) {
	var book catalog.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if book.Title == "" || book.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		return
	}
	if !catalog.ValidCategory(book.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	created, err := h.bookRepo.Insert(book)
	if err != nil {
		slog.Error("Database error", "operation", "create_book", "title", book.Title, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) APIUpdateBook(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.bookRepo.GetBook(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var book catalog.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if book.Title == "" || book.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		return
	}
	if !catalog.ValidCategory(book.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	book.ID = id
	book.CreatedAt = existing.CreatedAt

	if err := h.bookRepo.Update(book); err != nil {
		slog.Error("Database error", "operation", "update_book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, book)
}

// APIDeleteBook removes a book and its shelf placements. History entries
// referencing the book are kept; they carry a title snapshot.
func (h *Handler) APIDeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.shelfRepo.RemoveBookEverywhere(id); err != nil {
		slog.Error("Database error", "operation", "remove_book_from_shelves", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.bookRepo.Delete(id); err != nil {
		slog.Error("Database error", "operation", "delete_book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APICreateShelf(c *gin.Context) {
	var input struct {
		Name    string   `json:"name"`
		BookIDs []string `json:"bookIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	shelf, err := h.shelfRepo.Create(input.Name, input.BookIDs)
	if err != nil {
		if errors.Is(err, database.ErrShelfExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "A shelf with this name already exists"})
			return
		}
		slog.Error("Database error", "operation", "create_shelf", "name", input.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, shelf)
}

func (h *Handler) APIRenameShelf(c *gin.Context) {
	id := c.Param("id")

	shelf, err := h.shelfRepo.GetShelf(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_shelf", "shelf_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if shelf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelf not found"})
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.shelfRepo.Rename(id, input.Name); err != nil {
		if errors.Is(err, database.ErrShelfExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "A shelf with this name already exists"})
			return
		}
		slog.Error("Database error", "operation", "rename_shelf", "shelf_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APIDeleteShelf(c *gin.Context) {
	id := c.Param("id")

	if err := h.shelfRepo.Delete(id); err != nil {
		slog.Error("Database error", "operation", "delete_shelf", "shelf_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APIAddShelfBook(c *gin.Context) {
	id := c.Param("id")

	shelf, err := h.shelfRepo.GetShelf(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_shelf", "shelf_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if shelf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelf not found"})
		return
	}

	var input struct {
		BookID string `json:"bookId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.BookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookId is required"})
		return
	}

	book, err := h.bookRepo.GetBook(input.BookID)
	if err != nil {
		slog.Error("Database error", "operation", "get_book", "book_id", input.BookID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	if err := h.shelfRepo.AddBook(id, input.BookID); err != nil {
		slog.Error("Database error", "operation", "add_shelf_book", "shelf_id", id, "book_id", input.BookID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APIRemoveShelfBook(c *gin.Context) {
	id := c.Param("id")
	bookID := c.Param("bookId")

	if err := h.shelfRepo.RemoveBook(id, bookID); err != nil {
		slog.Error("Database error", "operation", "remove_shelf_book", "shelf_id", id, "book_id", bookID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// APIPublishDue enqueues an immediate pass over scheduled drafts instead of
// waiting for the next scheduler tick.
func (h *Handler) APIPublishDue(c *gin.Context) {
	task := tasks.NewPublishScheduledBooksTask(h.bookRepo)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing publish task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue publish task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

var validPlacements = map[string]bool{
	"after_hero":    true,
	"between_rows":  true,
	"before_footer": true,
	"sidebar":       true,
}

func (h *Handler) APIPutAdConfig(c *gin.Context) {
	var config database.AdConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if config.Placement != "" && !validPlacements[config.Placement] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid placement"})
		return
	}
	if config.StartAt != 0 && config.EndAt != 0 && config.EndAt < config.StartAt {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adEndAt must not precede adStartAt"})
		return
	}

	if err := h.adRepo.Put(config); err != nil {
		slog.Error("Database error", "operation", "put_ad_config", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, config)
}
