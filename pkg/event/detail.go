package event

import (
	"context"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/dhis2-sre/im-events/pkg/model"
)

// Mode of the detail view.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Draft is an uncommitted copy of the editable fields of an event.
type Draft struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Image       string `form:"image" json:"image"`
	StartTime   string `form:"startTime" json:"startTime"`
	EndTime     string `form:"endTime" json:"endTime"`
	Location    string `form:"location" json:"location"`
}

func NewDraft(event model.Event) Draft {
	return Draft{
		Title:       event.Title,
		Description: event.Description,
		Image:       event.Image,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		Location:    event.Location,
	}
}

// Apply returns a copy of event with the drafted fields replaced.
func (d Draft) Apply(event model.Event) model.Event {
	event.Title = d.Title
	event.Description = d.Description
	event.Image = d.Image
	event.StartTime = d.StartTime
	event.EndTime = d.EndTime
	event.Location = d.Location
	event.CategoryIDs = append([]uint(nil), event.CategoryIDs...)
	return event
}

type updater interface {
	UpdateEvent(ctx context.Context, id uint, event model.Event) error
}

type deleter interface {
	DeleteEvent(ctx context.Context, id uint) error
}

// Detail is the state of the detail view of a single event. A Draft only exists while Editing.
type Detail struct {
	Event model.Event
	Mode  Mode
	Draft *Draft
}

func NewDetail(event model.Event) *Detail {
	return &Detail{
		Event: event,
		Mode:  Viewing,
	}
}

// Edit starts editing a draft of the event.
func (d *Detail) Edit() error {
	if d.Mode != Viewing {
		return errdef.NewConflict("can't edit event %d while %s", d.Event.ID, d.Mode)
	}
	draft := NewDraft(d.Event)
	d.Draft = &draft
	d.Mode = Editing
	return nil
}

// Cancel discards the draft without sending it.
func (d *Detail) Cancel() error {
	if d.Mode != Editing {
		return errdef.NewConflict("can't cancel editing event %d while %s", d.Event.ID, d.Mode)
	}
	d.Draft = nil
	d.Mode = Viewing
	return nil
}

// Save replaces the event with the drafted one. The detail stays in editing mode with its draft
// intact if the update fails.
func (d *Detail) Save(ctx context.Context, updater updater) error {
	if d.Mode != Editing {
		return errdef.NewConflict("can't save event %d while %s", d.Event.ID, d.Mode)
	}

	event := d.Draft.Apply(d.Event)
	if err := updater.UpdateEvent(ctx, d.Event.ID, event); err != nil {
		return err
	}

	d.Event = event
	d.Draft = nil
	d.Mode = Viewing
	return nil
}

// Delete deletes the event once the user confirmed it. The detail is left untouched otherwise.
func (d *Detail) Delete(ctx context.Context, deleter deleter, confirmed bool) error {
	if d.Mode != Viewing {
		return errdef.NewConflict("can't delete event %d while %s", d.Event.ID, d.Mode)
	}
	if !confirmed {
		return errdef.NewBadRequest("deletion of event %d wasn't confirmed", d.Event.ID)
	}
	return deleter.DeleteEvent(ctx, d.Event.ID)
}

// Resume restores a detail in editing mode from a draft submitted by the edit form.
func Resume(event model.Event, draft Draft) *Detail {
	return &Detail{
		Event: event,
		Mode:  Editing,
		Draft: &draft,
	}
}
