package seed

import "github.com/freetic/freetic/app/catalog"

// File represents a single catalog seed file. A file may carry books,
// quotes or both.
type File struct {
	Books  []catalog.Book `yaml:"books"`
	Quotes []Quote        `yaml:"quotes"`
}

// Quote is a seeded literary quote shown when no AI provider is configured.
type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
	Source string `yaml:"source"`
}
