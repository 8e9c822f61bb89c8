package event

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/dhis2-sre/im-events/internal/handler"
	"github.com/dhis2-sre/im-events/internal/util"
	"github.com/dhis2-sre/im-events/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger *slog.Logger, basePath string, placeholderImage string, eventClient eventClient, references references) Handler {
	return Handler{
		logger:           logger,
		basePath:         basePath,
		placeholderImage: placeholderImage,
		eventClient:      eventClient,
		references:       references,
	}
}

type Handler struct {
	logger           *slog.Logger
	basePath         string
	placeholderImage string
	eventClient      eventClient
	references       references
}

type eventClient interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) error
	UpdateEvent(ctx context.Context, id uint, event model.Event) error
	DeleteEvent(ctx context.Context, id uint) error
}

type references interface {
	References
	Loading() bool
	Categories() []model.Category
	Users() []model.User
}

// Layout is the data shared by every page.
type Layout struct {
	Title    string
	BasePath string
	Flash    *util.Flash
}

type listPage struct {
	Layout
	SearchQuery    string
	FilterCategory string
	Categories     []model.Category
	Events         []Summary
}

type detailPage struct {
	Layout
	Path          string
	Event         model.Event
	Mode          Mode
	Draft         *Draft
	CategoryNames string
	Creator       model.User
}

type formPage struct {
	Layout
	Alert      string
	Request    CreateEventRequest
	Categories []model.Category
	Users      []model.User
}

// DeleteEventRequest carries the title shown on the confirmation page so the page can be rendered
// again without the backend.
type DeleteEventRequest struct {
	Confirm string `form:"confirm" json:"confirm" binding:"required,oneOf=yes no"`
	Title   string `form:"title" json:"title"`
}

// List events
func (h Handler) List(c *gin.Context) {
	layout := h.layout(c, "Events")
	if h.references.Loading() {
		c.HTML(http.StatusOK, "loading.html", layout)
		return
	}

	ctx := c.Request.Context()
	searchQuery := c.Query("q")
	filterCategory := c.Query("category")

	status := http.StatusOK
	events, err := h.eventClient.ListEvents(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to fetch events", "error", err)
		_ = c.Error(err)
		status = http.StatusBadGateway
		layout.Flash = &util.Flash{Status: util.FlashError, Title: "Failed to fetch events!", Description: err.Error()}
	}

	c.HTML(status, "events.html", listPage{
		Layout:         layout,
		SearchQuery:    searchQuery,
		FilterCategory: filterCategory,
		Categories:     h.references.Categories(),
		Events:         Summarize(Filter(events, searchQuery, filterCategory), h.placeholderImage),
	})
}

// Find renders the event in viewing mode
func (h Handler) Find(c *gin.Context) {
	layout := h.layout(c, "")
	if h.references.Loading() {
		c.HTML(http.StatusOK, "loading.html", layout)
		return
	}

	detail, ok := h.load(c, layout)
	if !ok {
		return
	}

	h.renderDetail(c, http.StatusOK, layout, detail)
}

// EditForm renders the event in editing mode
func (h Handler) EditForm(c *gin.Context) {
	layout := h.layout(c, "Edit Event")
	detail, ok := h.load(c, layout)
	if !ok {
		return
	}

	if err := detail.Edit(); err != nil {
		_ = c.Error(err)
		return
	}

	h.renderDetail(c, http.StatusOK, layout, detail)
}

// Update saves the submitted draft. The edit form is rendered again, keeping the draft, if saving fails.
func (h Handler) Update(c *gin.Context) {
	layout := h.layout(c, "Edit Event")

	var draft Draft
	if err := handler.DataBinder(c, &draft); err != nil {
		_ = c.Error(err)
		return
	}

	current, ok := h.load(c, layout)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	detail := Resume(current.Event, draft)
	if err := detail.Save(ctx, h.eventClient); err != nil {
		h.logger.ErrorContext(ctx, "Error updating event", "id", detail.Event.ID, "error", err)
		_ = c.Error(err)
		layout.Flash = &util.Flash{Status: util.FlashError, Title: "Failed to update event!"}
		h.renderDetail(c, http.StatusBadGateway, layout, detail)
		return
	}

	util.SetFlash(c, util.Flash{Status: util.FlashSuccess, Title: "Event updated successfully!"})
	c.Redirect(http.StatusSeeOther, h.basePath+Path(detail.Event.ID))
}

// Cancel drops the draft and returns to viewing the event
func (h Handler) Cancel(c *gin.Context) {
	id, err := handler.GetPathParameter(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	detail := Resume(model.Event{ID: id}, Draft{})
	if err := detail.Cancel(); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusSeeOther, h.basePath+Path(detail.Event.ID))
}

// DeleteForm asks the user to confirm the deletion
func (h Handler) DeleteForm(c *gin.Context) {
	layout := h.layout(c, "Delete Event")
	detail, ok := h.load(c, layout)
	if !ok {
		return
	}

	h.renderPage(c, http.StatusOK, "event_delete.html", layout, detail)
}

// Delete deletes the event if the user confirmed it. The confirmation page is rendered again if
// deleting fails. The event isn't fetched for that since the backend may be unreachable.
func (h Handler) Delete(c *gin.Context) {
	id, err := handler.GetPathParameter(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request DeleteEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	detail := NewDetail(model.Event{ID: id, Title: request.Title})
	err = detail.Delete(ctx, h.eventClient, request.Confirm == "yes")
	if err == nil {
		util.SetFlash(c, util.Flash{Status: util.FlashSuccess, Title: "Event deleted successfully!"})
		c.Redirect(http.StatusSeeOther, h.basePath+"/")
		return
	}

	if errdef.IsBadRequest(err) {
		c.Redirect(http.StatusSeeOther, h.basePath+Path(id))
		return
	}

	h.logger.ErrorContext(ctx, "Error deleting event", "id", id, "error", err)
	_ = c.Error(err)
	layout := h.layout(c, "Delete Event")
	if errdef.IsNetwork(err) {
		layout.Flash = &util.Flash{Status: util.FlashError, Title: "An error occurred while deleting the event.", Description: err.Error()}
	} else {
		layout.Flash = &util.Flash{Status: util.FlashError, Title: "Failed to delete the event."}
	}
	h.renderPage(c, http.StatusBadGateway, "event_delete.html", layout, detail)
}

// AddForm renders an empty creation form
func (h Handler) AddForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, h.layout(c, "Add Event"), CreateEventRequest{}, "")
}

// Create event from the submitted form. The form is rendered again, populated, if that fails.
func (h Handler) Create(c *gin.Context) {
	layout := h.layout(c, "Add Event")

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		status := http.StatusBadRequest
		if errdef.IsUnsupportedMediaType(err) {
			status = http.StatusUnsupportedMediaType
		}
		h.renderForm(c, status, layout, request, err.Error())
		return
	}

	event, err := request.Event()
	if err != nil {
		_ = c.Error(err)
		h.renderForm(c, http.StatusBadRequest, layout, request, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.eventClient.CreateEvent(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Error adding event", "title", event.Title, "error", err)
		_ = c.Error(err)
		h.renderForm(c, http.StatusBadGateway, layout, request, "Failed to add event!")
		return
	}

	c.Redirect(http.StatusSeeOther, h.basePath+"/")
}

// layout pops the flash set by the previous request.
func (h Handler) layout(c *gin.Context, title string) Layout {
	flash, _ := util.PopFlash(c)
	return Layout{
		Title:    title,
		BasePath: h.basePath,
		Flash:    flash,
	}
}

// load fetches the event identified by the id path parameter. If that fails, the not found page is
// rendered and false returned.
func (h Handler) load(c *gin.Context, layout Layout) (*Detail, bool) {
	id, err := handler.GetPathParameter(c, "id")
	if err != nil {
		h.renderNotFound(c, layout, err)
		return nil, false
	}

	ctx := c.Request.Context()
	event, err := h.eventClient.GetEvent(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error fetching event", "id", id, "error", err)
		h.renderNotFound(c, layout, err)
		return nil, false
	}
	if event == nil {
		h.renderNotFound(c, layout, errdef.NewNotFound("event %d doesn't exist", id))
		return nil, false
	}

	return NewDetail(*event), true
}

func (h Handler) renderNotFound(c *gin.Context, layout Layout, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusNotFound, "not_found.html", layout)
}

func (h Handler) renderDetail(c *gin.Context, status int, layout Layout, detail *Detail) {
	name := "event.html"
	if detail.Mode == Editing {
		name = "event_edit.html"
	}
	h.renderPage(c, status, name, layout, detail)
}

func (h Handler) renderPage(c *gin.Context, status int, name string, layout Layout, detail *Detail) {
	if layout.Title == "" {
		layout.Title = detail.Event.Title
	}
	c.HTML(status, name, detailPage{
		Layout:        layout,
		Path:          Path(detail.Event.ID),
		Event:         detail.Event,
		Mode:          detail.Mode,
		Draft:         detail.Draft,
		CategoryNames: CategoryNames(detail.Event.CategoryIDs, h.references),
		Creator:       Creator(detail.Event.CreatedBy, h.references),
	})
}

func (h Handler) renderForm(c *gin.Context, status int, layout Layout, request CreateEventRequest, alert string) {
	c.HTML(status, "add_event.html", formPage{
		Layout:     layout,
		Alert:      alert,
		Request:    request,
		Categories: h.references.Categories(),
		Users:      h.references.Users(),
	})
}
