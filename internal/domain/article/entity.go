package article

import "time"

// Article represents a published piece of content.
type Article struct {
	ID        int64     // ID is the unique identifier for the article
	Title     string    // Title is the headline, at most 255 characters
	Body      string    // Body is the article text
	CreatedAt time.Time // CreatedAt is when the article was created
	UpdatedAt time.Time // UpdatedAt is the last modification time
}

// Patch carries the allow-listed fields of a partial update.
// A nil field is left unchanged.
type Patch struct {
	Title *string
	Body  *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Body == nil
}
