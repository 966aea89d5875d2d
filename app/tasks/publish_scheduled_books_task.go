package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freetic/freetic/app/catalog"
	"github.com/freetic/freetic/app/database"
)

// PublishScheduledBooksTask promotes drafts whose scheduled publish time has
// passed to Published.
type PublishScheduledBooksTask struct {
	Task
	bookRepo database.BookRepository
}

func NewPublishScheduledBooksTask(bookRepo database.BookRepository) *PublishScheduledBooksTask {
	return &PublishScheduledBooksTask{
		Task:     NewTask(TaskTypePublishScheduled),
		bookRepo: bookRepo,
	}
}

func (t *PublishScheduledBooksTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now().UnixMilli()

	due, err := t.bookRepo.GetDueForPublishing(now)
	if err != nil {
		return fmt.Errorf("failed to get books due for publishing: %w", err)
	}

	if len(due) == 0 {
		return nil
	}

	publishedCount := 0
	errorCount := 0

	for _, book := range due {
		if err := t.bookRepo.SetStatus(book.ID, catalog.StatusPublished); err != nil {
			slog.Error("Failed to publish scheduled book", "book_id", book.ID, "title", book.Title, "error", err)
			errorCount++
		} else {
			slog.Info("Published scheduled book", "book_id", book.ID, "title", book.Title)
			publishedCount++
		}
	}

	slog.Info("Task completed",
		"type", "PublishScheduledBooks",
		"duration", t.GetDuration(),
		"published", publishedCount,
		"errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("failed to publish %d of %d due books", errorCount, len(due))
	}

	return nil
}
