// Package client talks to the REST backend owning events, categories and users.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/dhis2-sre/im-events/pkg/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dhis2-sre/im-events/pkg/client"

const (
	eventsPath     = "/events"
	categoriesPath = "/categories"
	usersPath      = "/users"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a backend client. Requests are not retried and no timeout is applied beyond the one
// configured on httpClient. http.DefaultClient is used if httpClient is nil.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, eventsPath, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	if err := c.do(ctx, http.MethodGet, eventPath(id), nil, &event); err != nil {
		return nil, err
	}
	return event, nil
}

// CreateEvent posts event without its id, which is assigned by the backend.
func (c *Client) CreateEvent(ctx context.Context, event model.Event) error {
	event.ID = 0
	return c.do(ctx, http.MethodPost, eventsPath, event, nil)
}

// UpdateEvent replaces the event identified by id with event.
func (c *Client) UpdateEvent(ctx context.Context, id uint, event model.Event) error {
	event.ID = id
	return c.do(ctx, http.MethodPut, eventPath(id), event, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func eventPath(id uint) string {
	return eventsPath + "/" + strconv.FormatUint(uint64(id), 10)
}

// do sends a request with an optional JSON requestBody within a client span. A 2xx response body is
// decoded into responseBody unless it's nil.
func (c *Client) do(ctx context.Context, method, path string, requestBody, responseBody any) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	err := c.send(ctx, method, path, requestBody, responseBody)
	if status, ok := errdef.StatusCode(err); ok {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, requestBody, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		b, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %q: %v", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request %s %q: %v", method, path, err)
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Backend request failed", "method", method, "path", path, "error", err)
		return errdef.NewNetwork("failed %s %q: %v", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.ErrorContext(ctx, "Backend returned error", "method", method, "path", path, "status", resp.StatusCode)
		return errdef.NewRequestFailed(resp.StatusCode, "%s %q returned %d", method, path, resp.StatusCode)
	}

	if responseBody == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(responseBody); err != nil {
		c.logger.ErrorContext(ctx, "Failed to decode backend response", "method", method, "path", path, "error", err)
		return fmt.Errorf("failed to decode response of %s %q: %v", method, path, err)
	}

	return nil
}
