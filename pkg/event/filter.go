package event

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dhis2-sre/im-events/pkg/model"
)

// Filter returns the events whose title contains searchQuery, ignoring case, and which reference the
// category filterCategory. An empty searchQuery or filterCategory doesn't filter at all.
func Filter(events []model.Event, searchQuery, filterCategory string) []model.Event {
	filtered := make([]model.Event, 0, len(events))
	for _, event := range events {
		if matchesSearch(event, searchQuery) && matchesCategory(event, filterCategory) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func matchesSearch(event model.Event, searchQuery string) bool {
	if searchQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(event.Title), strings.ToLower(searchQuery))
}

// matchesCategory never matches a filterCategory that isn't a whole number, like "music" or "2.5".
func matchesCategory(event model.Event, filterCategory string) bool {
	if filterCategory == "" {
		return true
	}
	id, err := strconv.ParseFloat(strings.TrimSpace(filterCategory), 64)
	if err != nil || id < 0 || id != math.Trunc(id) || id > math.MaxUint32 {
		return false
	}
	return event.HasCategory(uint(id))
}

// Summary is what the list view shows of an event.
type Summary struct {
	ID          uint
	Title       string
	Description string
	Image       string
	StartTime   string
	EndTime     string
	Path        string
}

// Summarize uses placeholderImage for events without an image.
func Summarize(events []model.Event, placeholderImage string) []Summary {
	summaries := make([]Summary, len(events))
	for i, event := range events {
		image := event.Image
		if image == "" {
			image = placeholderImage
		}
		summaries[i] = Summary{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Image:       image,
			StartTime:   event.StartTime,
			EndTime:     event.EndTime,
			Path:        Path(event.ID),
		}
	}
	return summaries
}

// Path returns the path of the detail view of the event with given id.
func Path(id uint) string {
	return fmt.Sprintf("/event/%d", id)
}
