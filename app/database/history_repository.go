package database

// MaxHistoryEntries caps the interaction history. Insertion beyond the cap
// evicts the oldest entry by insertion order.
const MaxHistoryEntries = 10

type historyRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Add persists a new entry and enforces the capacity bound in the same
// transaction. Eviction is strict FIFO by id (insertion order), not by
// opened_at: clock values may be non-monotonic, insertion order is
// authoritative.
func (r *historyRepository) Add(entry HistoryEntryInput) error {
	tx, err := r.db.Begin()
	if err != nil {
		return persistence("history add", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO history (book_id, book_title, opened_at, mode)
		VALUES (?, ?, ?, ?)
	`, entry.BookID, entry.BookTitle, entry.OpenedAt, entry.Mode)
	if err != nil {
		return persistence("history add", err)
	}

	_, err = tx.Exec(`
		DELETE FROM history
		WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)
	`, MaxHistoryEntries)
	if err != nil {
		return persistence("history add", err)
	}

	if err := tx.Commit(); err != nil {
		return persistence("history add", err)
	}

	return nil
}

// List returns all entries, most recent first. Ties on opened_at are broken
// by id so the later insert wins.
func (r *historyRepository) List() ([]HistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, book_id, book_title, opened_at, mode
		FROM history
		ORDER BY opened_at DESC, id DESC
	`)
	if err != nil {
		return nil, persistence("history list", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, MaxHistoryEntries)
	for rows.Next() {
		var entry HistoryEntry
		err := rows.Scan(&entry.ID, &entry.BookID, &entry.BookTitle, &entry.OpenedAt, &entry.Mode)
		if err != nil {
			return nil, persistence("history list", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence("history list", err)
	}

	return entries, nil
}

// Delete removes the entry with the given id. Deleting an absent id is a
// no-op, not an error.
func (r *historyRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return persistence("history delete", err)
	}
	return nil
}

func (r *historyRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM history")
	if err != nil {
		return persistence("history clear", err)
	}
	return nil
}

func (r *historyRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, persistence("history count", err)
	}
	return count, nil
}
