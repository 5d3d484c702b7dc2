package model

// Resource is a curated learning resource shown alongside tasks
// (tutorials, guides, documentation). Read-mostly reference data.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link"`
	Category    string `json:"category"`
}
