package inttest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/dhis2-sre/im-events/pkg/model"
	"github.com/gin-gonic/gin"
)

// Backend is an in-memory fake of the REST backend owning events, categories and users. It records
// every request it receives and can be told to fail specific ones.
type Backend struct {
	URL    string
	server *httptest.Server

	mu         sync.Mutex
	nextID     uint
	events     map[uint]model.Event
	categories []model.Category
	users      []model.User
	failures   map[string]int
	requests   []BackendRequest
}

// BackendRequest is a request received by the Backend.
type BackendRequest struct {
	Method string
	Path   string
	Body   string
}

// SetupBackend starts a fake REST backend which is stopped once the test finishes.
func SetupBackend(t *testing.T) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		nextID:   1,
		events:   map[uint]model.Event{},
		failures: map[string]int{},
	}

	r := gin.New()
	r.Use(b.record)
	r.GET("/events", b.listEvents)
	r.POST("/events", b.createEvent)
	r.GET("/events/:id", b.findEvent)
	r.PUT("/events/:id", b.updateEvent)
	r.DELETE("/events/:id", b.deleteEvent)
	r.GET("/categories", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.categories)
	})
	r.GET("/users", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c.JSON(http.StatusOK, b.users)
	})

	b.server = httptest.NewServer(r)
	b.URL = b.server.URL
	t.Cleanup(b.Close)

	return b
}

// Close stops the backend. Requests sent afterwards fail at the network level.
func (b *Backend) Close() {
	b.server.Close()
}

// AddEvent stores event under the next free id and returns it.
func (b *Backend) AddEvent(event model.Event) model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if event.ID == 0 {
		event.ID = b.nextID
	}
	if event.ID >= b.nextID {
		b.nextID = event.ID + 1
	}
	b.events[event.ID] = event
	return event
}

func (b *Backend) AddCategories(categories ...model.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = append(b.categories, categories...)
}

func (b *Backend) AddUsers(users ...model.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append(b.users, users...)
}

// Event returns the stored event with given id.
func (b *Backend) Event(id uint) (model.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	event, ok := b.events[id]
	return event, ok
}

// Fail makes requests of given method and path respond with status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []BackendRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BackendRequest(nil), b.requests...)
}

// RequestsTo returns the requests received so far of given method.
func (b *Backend) RequestsTo(method string) []BackendRequest {
	var requests []BackendRequest
	for _, request := range b.Requests() {
		if request.Method == method {
			requests = append(requests, request)
		}
	}
	return requests
}

func (b *Backend) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()

	b.mu.Lock()
	b.requests = append(b.requests, BackendRequest{Method: c.Request.Method, Path: c.Request.URL.Path, Body: string(body)})
	status, fail := b.failures[c.Request.Method+" "+c.Request.URL.Path]
	b.mu.Unlock()

	if fail {
		c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	c.Next()
}

func (b *Backend) listEvents(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := make([]model.Event, 0, len(b.events))
	for _, event := range b.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	c.JSON(http.StatusOK, events)
}

func (b *Backend) createEvent(c *gin.Context) {
	var event model.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	event.ID = 0
	c.JSON(http.StatusCreated, b.AddEvent(event))
}

func (b *Backend) findEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	event, ok := b.Event(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (b *Backend) updateEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var event model.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.events[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "event not found"})
		return
	}
	event.ID = id
	b.events[id] = event
	c.JSON(http.StatusOK, event)
}

func (b *Backend) deleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.events[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "event not found"})
		return
	}
	delete(b.events, id)
	c.Status(http.StatusOK)
}

func eventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return 0, false
	}
	return uint(id), true
}
