package service

import "errors"

var (
	// ErrInsufficientSources means synthesis found no qualifying corpus
	// documents, by similarity or by keyword. User-actionable ("broaden
	// your topic"), not a system failure.
	ErrInsufficientSources = errors.New("no qualifying source articles found for this topic")

	ErrArticleNotFound = errors.New("article not found")

	ErrEmptyMessage = errors.New("message is required")

	ErrEmptyTopic = errors.New("topic is required")
)
