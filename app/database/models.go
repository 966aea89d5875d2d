package database

// HistoryEntry is one recorded "book opened" interaction. Entries are never
// mutated after creation; id is assigned by SQLite AUTOINCREMENT and is the
// sole key for deletion.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	BookID    string `json:"bookId"`    // may dangle if the book was deleted
	BookTitle string `json:"bookTitle"` // title snapshot at record time
	OpenedAt  int64  `json:"openedAt"`  // ms since epoch
	Mode      string `json:"mode"`      // "read" or "audio"
}

// HistoryEntryInput is a history entry before the store assigns its id.
type HistoryEntryInput struct {
	BookID    string `json:"bookId"`
	BookTitle string `json:"bookTitle"`
	OpenedAt  int64  `json:"openedAt"`
	Mode      string `json:"mode"`
}

// Shelf is a named, ordered collection of book ids.
type Shelf struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BookIDs   []string `json:"bookIds"`
	CreatedAt int64    `json:"createdAt"`
}

// AdConfig is the singleton ad injection configuration.
type AdConfig struct {
	Script     string `json:"script"`
	Enabled    bool   `json:"isEnabled"`
	Placement  string `json:"placement"`  // after_hero, between_rows, before_footer, sidebar
	Dimensions string `json:"dimensions"` // e.g. 728x90, 300x250
	StartAt    int64  `json:"adStartAt,omitempty"` // ms since epoch, 0 = open-ended
	EndAt      int64  `json:"adEndAt,omitempty"`
}

// Active reports whether the ad should currently be displayed.
func (a AdConfig) Active(nowMs int64) bool {
	if !a.Enabled || a.Script == "" {
		return false
	}
	if a.StartAt != 0 && nowMs < a.StartAt {
		return false
	}
	if a.EndAt != 0 && nowMs > a.EndAt {
		return false
	}
	return true
}

// Quote is a stored wisdom quote, used as fallback when the AI provider is
// unavailable.
type Quote struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author,omitempty"`
	SourceBook string `json:"sourceBook,omitempty"`
}
