package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freetic/freetic/app/catalog"
)

type bookRepository struct {
	db *DB
}

func NewBookRepository(db *DB) BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, title, author, publication_year, cover_image_url, caption, tags,
	summary, brutal_truth, core_value, one_liner_hook, category, difficulty,
	podcast_url, podcast_title, podcast_duration, trailer_url, external_link,
	status, scheduled_publish_at, created_at,
	pushed_to_top, trending, staff_pick, hot, recommended, signature,
	featured_today, featured_in_carousel`

func (r *bookRepository) GetAll() ([]catalog.Book, error) {
	return r.queryBooks(`SELECT ` + bookColumns + ` FROM books ORDER BY created_at, id`)
}

func (r *bookRepository) GetPublished() ([]catalog.Book, error) {
	return r.queryBooks(`SELECT `+bookColumns+` FROM books WHERE status = ? ORDER BY created_at, id`,
		catalog.StatusPublished)
}

func (r *bookRepository) queryBooks(query string, args ...interface{}) ([]catalog.Book, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []catalog.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

func (r *bookRepository) GetBook(id string) (*catalog.Book, error) {
	row := r.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book, nil
}

func (r *bookRepository) GetBookCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get book count: %w", err)
	}
	return count, nil
}

func (r *bookRepository) Insert(book catalog.Book) (catalog.Book, error) {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	if book.CreatedAt == 0 {
		book.CreatedAt = time.Now().UnixMilli()
	}
	if book.Status == "" {
		book.Status = catalog.StatusPublished
	}

	tags, err := json.Marshal(tagsOrEmpty(book.Tags))
	if err != nil {
		return catalog.Book{}, fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, book.ID, book.Title, book.Author, book.PublicationYear, book.CoverImageURL,
		book.Caption, string(tags), book.Summary, book.BrutalTruth, book.CoreValue,
		book.OneLinerHook, book.Category, book.Difficulty,
		book.PodcastURL, book.PodcastTitle, book.PodcastDuration, book.TrailerURL, book.ExternalLink,
		book.Status, book.ScheduledPublishAt, book.CreatedAt,
		book.Flags.PushedToTop, book.Flags.Trending, book.Flags.StaffPick, book.Flags.Hot,
		book.Flags.Recommended, book.Flags.Signature, book.Flags.FeaturedToday, book.Flags.FeaturedInCarousel)

	if err != nil {
		return catalog.Book{}, fmt.Errorf("failed to insert book: %w", err)
	}

	return book, nil
}

func (r *bookRepository) Update(book catalog.Book) error {
	tags, err := json.Marshal(tagsOrEmpty(book.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE books
		SET title = ?, author = ?, publication_year = ?, cover_image_url = ?, caption = ?,
		    tags = ?, summary = ?, brutal_truth = ?, core_value = ?, one_liner_hook = ?,
		    category = ?, difficulty = ?,
		    podcast_url = ?, podcast_title = ?, podcast_duration = ?, trailer_url = ?, external_link = ?,
		    status = ?, scheduled_publish_at = ?,
		    pushed_to_top = ?, trending = ?, staff_pick = ?, hot = ?,
		    recommended = ?, signature = ?, featured_today = ?, featured_in_carousel = ?
		WHERE id = ?
	`, book.Title, book.Author, book.PublicationYear, book.CoverImageURL, book.Caption,
		string(tags), book.Summary, book.BrutalTruth, book.CoreValue, book.OneLinerHook,
		book.Category, book.Difficulty,
		book.PodcastURL, book.PodcastTitle, book.PodcastDuration, book.TrailerURL, book.ExternalLink,
		book.Status, book.ScheduledPublishAt,
		book.Flags.PushedToTop, book.Flags.Trending, book.Flags.StaffPick, book.Flags.Hot,
		book.Flags.Recommended, book.Flags.Signature, book.Flags.FeaturedToday, book.Flags.FeaturedInCarousel,
		book.ID)

	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("book not found: %s", book.ID)
	}

	return nil
}

func (r *bookRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// GetDueForPublishing returns draft books whose scheduled publish time has
// passed.
func (r *bookRepository) GetDueForPublishing(nowMs int64) ([]catalog.Book, error) {
	return r.queryBooks(`
		SELECT `+bookColumns+`
		FROM books
		WHERE status = ?
		  AND scheduled_publish_at > 0
		  AND scheduled_publish_at <= ?
		ORDER BY scheduled_publish_at
	`, catalog.StatusDraft, nowMs)
}

// SetStatus updates a book's status. Publishing clears the scheduled publish
// time so the schedule marker never outlives the draft.
func (r *bookRepository) SetStatus(id string, status string) error {
	query := "UPDATE books SET status = ? WHERE id = ?"
	if status == catalog.StatusPublished {
		query = "UPDATE books SET status = ?, scheduled_publish_at = 0 WHERE id = ?"
	}

	_, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set book status: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanBook(row scannable) (catalog.Book, error) {
	var book catalog.Book
	var tags string

	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.PublicationYear, &book.CoverImageURL,
		&book.Caption, &tags, &book.Summary, &book.BrutalTruth, &book.CoreValue,
		&book.OneLinerHook, &book.Category, &book.Difficulty,
		&book.PodcastURL, &book.PodcastTitle, &book.PodcastDuration, &book.TrailerURL, &book.ExternalLink,
		&book.Status, &book.ScheduledPublishAt, &book.CreatedAt,
		&book.Flags.PushedToTop, &book.Flags.Trending, &book.Flags.StaffPick, &book.Flags.Hot,
		&book.Flags.Recommended, &book.Flags.Signature, &book.Flags.FeaturedToday, &book.Flags.FeaturedInCarousel,
	)
	if err != nil {
		return catalog.Book{}, err
	}

	if err := json.Unmarshal([]byte(tags), &book.Tags); err != nil {
		return catalog.Book{}, fmt.Errorf("failed to decode tags: %w", err)
	}

	return book, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
