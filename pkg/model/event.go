package model

import "golang.org/x/exp/slices"

// Event is the primary listed entity. It is owned by the backend, values held here are transient copies.
type Event struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	CategoryIDs []uint `json:"categoryIds"`
	CreatedBy   uint   `json:"createdBy"`
}

// HasCategory reports whether id is one of the event's category references.
func (e Event) HasCategory(id uint) bool {
	return slices.Contains(e.CategoryIDs, id)
}
