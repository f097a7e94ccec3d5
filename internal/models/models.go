package models

import "github.com/google/uuid"

// Page is a fetched and cleaned web page. Content is flattened plain text
// and is immutable once the page has been created or loaded from cache.
type Page struct {
	ID       string
	URL      string
	Title    string
	Content  string
	Metadata map[string]interface{}
}

// NewPage creates a Page with a fresh ID.
func NewPage(url, title, content string) Page {
	return Page{
		ID:       uuid.NewString(),
		URL:      url,
		Title:    title,
		Content:  content,
		Metadata: make(map[string]interface{}),
	}
}

// Answer pairs a question with the response produced for it.
type Answer struct {
	Question string
	Response string
}
