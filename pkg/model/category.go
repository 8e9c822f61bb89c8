package model

// Category is a tag-like reference entity used for filtering events
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
