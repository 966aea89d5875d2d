package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type shelfRepository struct {
	db *DB
}

func NewShelfRepository(db *DB) ShelfRepository {
	return &shelfRepository{db: db}
}

func (r *shelfRepository) GetAll() ([]Shelf, error) {
	rows, err := r.db.Query("SELECT id, name, created_at FROM shelves ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query shelves: %w", err)
	}
	defer rows.Close()

	var shelves []Shelf
	for rows.Next() {
		var shelf Shelf
		if err := rows.Scan(&shelf.ID, &shelf.Name, &shelf.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shelf row: %w", err)
		}
		shelves = append(shelves, shelf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shelf rows: %w", err)
	}

	for i := range shelves {
		bookIDs, err := r.getBookIDs(shelves[i].ID)
		if err != nil {
			return nil, err
		}
		shelves[i].BookIDs = bookIDs
	}

	return shelves, nil
}

func (r *shelfRepository) GetShelf(id string) (*Shelf, error) {
	var shelf Shelf
	err := r.db.QueryRow("SELECT id, name, created_at FROM shelves WHERE id = ?", id).
		Scan(&shelf.ID, &shelf.Name, &shelf.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shelf: %w", err)
	}

	shelf.BookIDs, err = r.getBookIDs(shelf.ID)
	if err != nil {
		return nil, err
	}

	return &shelf, nil
}

func (r *shelfRepository) getBookIDs(shelfID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT book_id FROM shelf_books
		WHERE shelf_id = ?
		ORDER BY position
	`, shelfID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shelf books: %w", err)
	}
	defer rows.Close()

	bookIDs := []string{}
	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, fmt.Errorf("failed to scan shelf book row: %w", err)
		}
		bookIDs = append(bookIDs, bookID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shelf book rows: %w", err)
	}

	return bookIDs, nil
}

// Create inserts a new shelf. Shelf names are unique case-insensitively;
// ErrShelfExists is returned on a duplicate.
func (r *shelfRepository) Create(name string, bookIDs []string) (Shelf, error) {
	shelf := Shelf{
		ID:        uuid.NewString(),
		Name:      name,
		BookIDs:   bookIDs,
		CreatedAt: time.Now().UnixMilli(),
	}
	if shelf.BookIDs == nil {
		shelf.BookIDs = []string{}
	}

	var existing int
	err := r.db.QueryRow("SELECT COUNT(*) FROM shelves WHERE name = ?", name).Scan(&existing)
	if err != nil {
		return Shelf{}, fmt.Errorf("failed to check shelf name: %w", err)
	}
	if existing > 0 {
		return Shelf{}, ErrShelfExists
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Shelf{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO shelves (id, name, created_at) VALUES (?, ?, ?)",
		shelf.ID, shelf.Name, shelf.CreatedAt)
	if err != nil {
		return Shelf{}, fmt.Errorf("failed to insert shelf: %w", err)
	}

	for i, bookID := range shelf.BookIDs {
		_, err = tx.Exec("INSERT INTO shelf_books (shelf_id, book_id, position) VALUES (?, ?, ?)",
			shelf.ID, bookID, i)
		if err != nil {
			return Shelf{}, fmt.Errorf("failed to insert shelf book: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Shelf{}, fmt.Errorf("failed to commit shelf: %w", err)
	}

	return shelf, nil
}

func (r *shelfRepository) Rename(id string, name string) error {
	var existing int
	err := r.db.QueryRow("SELECT COUNT(*) FROM shelves WHERE name = ? AND id != ?", name, id).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check shelf name: %w", err)
	}
	if existing > 0 {
		return ErrShelfExists
	}

	result, err := r.db.Exec("UPDATE shelves SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename shelf: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("shelf not found: %s", id)
	}

	return nil
}

func (r *shelfRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM shelves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete shelf: %w", err)
	}
	return nil
}

// AddBook appends a book to the shelf. Adding a book already on the shelf is
// a no-op.
func (r *shelfRepository) AddBook(shelfID, bookID string) error {
	_, err := r.db.Exec(`
		INSERT INTO shelf_books (shelf_id, book_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM shelf_books WHERE shelf_id = ?))
		ON CONFLICT (shelf_id, book_id) DO NOTHING
	`, shelfID, bookID, shelfID)
	if err != nil {
		return fmt.Errorf("failed to add book to shelf: %w", err)
	}
	return nil
}

func (r *shelfRepository) RemoveBook(shelfID, bookID string) error {
	_, err := r.db.Exec("DELETE FROM shelf_books WHERE shelf_id = ? AND book_id = ?", shelfID, bookID)
	if err != nil {
		return fmt.Errorf("failed to remove book from shelf: %w", err)
	}
	return nil
}

// RemoveBookEverywhere drops a book from every shelf; used when the book
// itself is deleted from the catalog.
func (r *shelfRepository) RemoveBookEverywhere(bookID string) error {
	_, err := r.db.Exec("DELETE FROM shelf_books WHERE book_id = ?", bookID)
	if err != nil {
		return fmt.Errorf("failed to remove book from shelves: %w", err)
	}
	return nil
}
