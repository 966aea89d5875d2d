package seed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/freetic/freetic/app/catalog"
)

// Loader handles loading and validation of catalog seed files
type Loader struct {
	seedsDir string
}

// NewLoader creates a new seed loader
func NewLoader(seedsDir string) *Loader {
	return &Loader{seedsDir: seedsDir}
}

// LoadAll loads all YAML seed files from the seeds directory
func (l *Loader) LoadAll() ([]catalog.Book, []Quote, error) {
	var books []catalog.Book
	var quotes []Quote

	// Check if seeds directory exists
	if _, err := os.Stat(l.seedsDir); os.IsNotExist(err) {
		return books, quotes, nil // Nothing to seed
	}

	files, err := filepath.Glob(filepath.Join(l.seedsDir, "*.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	// Also check for .yml extension
	ymlFiles, err := filepath.Glob(filepath.Join(l.seedsDir, "*.yml"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		seedFile, err := l.loadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(seedFile); err != nil {
			return nil, nil, fmt.Errorf("invalid seed file %s: %w", file, err)
		}

		books = append(books, seedFile.Books...)
		quotes = append(quotes, seedFile.Quotes...)

		slog.Info("Loaded seed file", "file", file, "books", len(seedFile.Books), "quotes", len(seedFile.Quotes))
	}

	return books, quotes, nil
}

// loadFile loads a single YAML seed file
func (l *Loader) loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var seedFile File
	if err := yaml.Unmarshal(data, &seedFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Set defaults
	l.setDefaults(&seedFile)

	return &seedFile, nil
}

// setDefaults applies default values to seeded records
func (l *Loader) setDefaults(seedFile *File) {
	for i := range seedFile.Books {
		if seedFile.Books[i].Status == "" {
			seedFile.Books[i].Status = catalog.StatusPublished
		}
		if seedFile.Books[i].Tags == nil {
			seedFile.Books[i].Tags = []string{}
		}
	}
}

// validate validates the seed file contents
func (l *Loader) validate(seedFile *File) error {
	for i, book := range seedFile.Books {
		if book.Title == "" {
			return fmt.Errorf("book at index %d: title is required", i)
		}
		if book.Author == "" {
			return fmt.Errorf("book at index %d: author is required", i)
		}
		if !catalog.ValidCategory(book.Category) {
			return fmt.Errorf("book at index %d: invalid category: %s", i, book.Category)
		}
		switch book.Status {
		case catalog.StatusDraft, catalog.StatusPublished, catalog.StatusArchived:
		default:
			return fmt.Errorf("book at index %d: invalid status: %s", i, book.Status)
		}
	}

	for i, quote := range seedFile.Quotes {
		if quote.Text == "" {
			return fmt.Errorf("quote at index %d: text is required", i)
		}
	}

	return nil
}
