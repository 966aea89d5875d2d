package database

import (
	"github.com/freetic/freetic/app/catalog"
)

type BookRepository interface {
	GetAll() ([]catalog.Book, error)
	GetPublished() ([]catalog.Book, error)
	GetBook(id string) (*catalog.Book, error)
	GetBookCount() (int, error)

	Insert(book catalog.Book) (catalog.Book, error)
	Update(book catalog.Book) error
	Delete(id string) error

	GetDueForPublishing(nowMs int64) ([]catalog.Book, error)
	SetStatus(id string, status string) error
}

type HistoryRepository interface {
	Add(entry HistoryEntryInput) error
	List() ([]HistoryEntry, error)
	Delete(id int64) error
	Clear() error
	Count() (int, error)
}

type ShelfRepository interface {
	GetAll() ([]Shelf, error)
	GetShelf(id string) (*Shelf, error)

	Create(name string, bookIDs []string) (Shelf, error)
	Rename(id string, name string) error
	Delete(id string) error

	AddBook(shelfID, bookID string) error
	RemoveBook(shelfID, bookID string) error
	RemoveBookEverywhere(bookID string) error
}

type AdConfigRepository interface {
	Get() (AdConfig, error)
	Put(config AdConfig) error
}

type QuoteRepository interface {
	GetRandom() (*Quote, error)
	GetQuoteCount() (int, error)
	Insert(quote Quote) (Quote, error)
}
