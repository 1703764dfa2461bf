package genre

import "time"

// Genre represents a category that many books can reference.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldName = "name"
)
