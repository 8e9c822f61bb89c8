package event

import (
	"strconv"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/dhis2-sre/im-events/pkg/model"
)

type CreateEventRequest struct {
	Title       string   `form:"title" json:"title" binding:"required"`
	Description string   `form:"description" json:"description" binding:"required"`
	Image       string   `form:"image" json:"image" binding:"required"`
	StartTime   string   `form:"startTime" json:"startTime" binding:"required"`
	EndTime     string   `form:"endTime" json:"endTime" binding:"required"`
	Location    string   `form:"location" json:"location" binding:"required"`
	CategoryIDs []string `form:"categoryIds" json:"categoryIds" binding:"required,min=1,dive,numeric"`
	CreatedBy   string   `form:"createdBy" json:"createdBy" binding:"required,numeric"`
}

// Event converts the request into an event, turning the category and creator ids into numbers.
func (r CreateEventRequest) Event() (model.Event, error) {
	categoryIDs := make([]uint, len(r.CategoryIDs))
	for i, categoryID := range r.CategoryIDs {
		id, err := parseID(categoryID)
		if err != nil {
			return model.Event{}, errdef.NewBadRequest("invalid category id %q: %v", categoryID, err)
		}
		categoryIDs[i] = id
	}

	createdBy, err := parseID(r.CreatedBy)
	if err != nil {
		return model.Event{}, errdef.NewBadRequest("invalid creator id %q: %v", r.CreatedBy, err)
	}

	return model.Event{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		CategoryIDs: categoryIDs,
		CreatedBy:   createdBy,
	}, nil
}

// Selected reports whether the category with given id was picked, used to repopulate the form.
func (r CreateEventRequest) Selected(id uint) bool {
	for _, categoryID := range r.CategoryIDs {
		if parsed, err := parseID(categoryID); err == nil && parsed == id {
			return true
		}
	}
	return false
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
