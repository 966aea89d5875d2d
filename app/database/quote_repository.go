package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type quoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// GetRandom returns a random stored quote, or nil when none exist.
func (r *quoteRepository) GetRandom() (*Quote, error) {
	var quote Quote
	err := r.db.QueryRow(`
		SELECT id, text, author, source_book
		FROM quotes ORDER BY RANDOM() LIMIT 1
	`).Scan(&quote.ID, &quote.Text, &quote.Author, &quote.SourceBook)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random quote: %w", err)
	}

	return &quote, nil
}

func (r *quoteRepository) GetQuoteCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM quotes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote count: %w", err)
	}
	return count, nil
}

func (r *quoteRepository) Insert(quote Quote) (Quote, error) {
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO quotes (id, text, author, source_book)
		VALUES (?, ?, ?, ?)
	`, quote.ID, quote.Text, quote.Author, quote.SourceBook)

	if err != nil {
		return Quote{}, fmt.Errorf("failed to insert quote: %w", err)
	}

	return quote, nil
}
