package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// candidatePaths lists, per entity kind, the request paths that may serve
// that kind's data, tried in priority order. The first entry is the canonical
// REST path, the rest are legacy/localized aliases. New aliases are additive
// here; call sites never hard-code paths.
var candidatePaths = map[string][]string{
	"reports":     {"/api/v1/reports", "/reportes"},
	"categories":  {"/api/v1/categories", "/categorias"},
	"areas":       {"/api/v1/areas", "/areas"},
	"states":      {"/api/v1/states", "/estados-reporte"},
	"roles":       {"/api/v1/roles", "/roles"},
	"users":       {"/api/v1/users", "/usuarios"},
	"comments":    {"/api/v1/comments", "/comentarios"},
	"ratings":     {"/api/v1/ratings", "/puntuaciones"},
	"files":       {"/api/v1/files", "/archivos"},
	"tags":        {"/api/v1/tags", "/etiquetas"},
	"attachments": {"/api/v1/attachments", "/api/v1/files", "/archivos"},
}

// Client is a read-only HTTP client for the REST reports backend. Collection
// lookups degrade to empty slices when every candidate path fails; partial
// data is preferred over total failure.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a backend client. httpClient may be nil, in which case a
// default client with the given timeout is used.
func NewClient(baseURL, token string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
		log:     slog.Default().With("component", "source"),
	}
}

// getJSON performs a single GET against the backend and returns the raw body.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	return body, nil
}

// collection tries each candidate path for the kind in order and returns the
// raw records from the first successful, parseable response. Total failure
// yields an empty (never nil) slice: callers treat "no data" and "source
// unreachable" identically for read-only display.
func (c *Client) collection(ctx context.Context, kind string) []map[string]any {
	for _, path := range candidatePaths[kind] {
		body, err := c.getJSON(ctx, path)
		if err != nil {
			c.log.Warn("collection fetch failed", "kind", kind, "path", path, "error", err)
			continue
		}
		var records []map[string]any
		if err := json.Unmarshal(body, &records); err != nil {
			c.log.Warn("collection parse failed", "kind", kind, "path", path, "error", err)
			continue
		}
		if records == nil {
			records = []map[string]any{}
		}
		return records
	}
	return []map[string]any{}
}

// Single fetches one JSON object, trying each path in order. Unlike
// collection lookups, total failure propagates the last error.
func (c *Client) Single(ctx context.Context, paths ...string) (map[string]any, error) {
	var lastErr error
	for _, path := range paths {
		body, err := c.getJSON(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		var record map[string]any
		if err := json.Unmarshal(body, &record); err != nil {
			lastErr = fmt.Errorf("GET %s: parse body: %w", path, err)
			continue
		}
		return record, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate paths given")
	}
	return nil, lastErr
}

// Normalization happens exactly once per fetched record, here at the fetch
// boundary. Records with no resolvable id are dropped.

// Reports returns all reports in canonical form.
func (c *Client) Reports(ctx context.Context) []Report {
	raw := c.collection(ctx, "reports")
	out := make([]Report, 0, len(raw))
	for _, rec := range raw {
		if r, ok := normalizeReport(rec); ok {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns all categories in canonical form.
func (c *Client) Categories(ctx context.Context) []Category {
	raw := c.collection(ctx, "categories")
	out := make([]Category, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeCategory(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Areas returns all areas in canonical form.
func (c *Client) Areas(ctx context.Context) []Area {
	raw := c.collection(ctx, "areas")
	out := make([]Area, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeArea(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// States returns all report states in canonical form.
func (c *Client) States(ctx context.Context) []State {
	raw := c.collection(ctx, "states")
	out := make([]State, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeState(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Roles returns all roles in canonical form.
func (c *Client) Roles(ctx context.Context) []Role {
	raw := c.collection(ctx, "roles")
	out := make([]Role, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeRole(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Users returns all users in canonical form.
func (c *Client) Users(ctx context.Context) []User {
	raw := c.collection(ctx, "users")
	out := make([]User, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeUser(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Comments returns all comments in canonical form.
func (c *Client) Comments(ctx context.Context) []Comment {
	raw := c.collection(ctx, "comments")
	out := make([]Comment, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeComment(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Ratings returns all ratings in canonical form.
func (c *Client) Ratings(ctx context.Context) []Rating {
	raw := c.collection(ctx, "ratings")
	out := make([]Rating, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeRating(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Attachments returns all attachments in canonical form, trying the
// dedicated attachments path before the file paths.
func (c *Client) Attachments(ctx context.Context) []Attachment {
	raw := c.collection(ctx, "attachments")
	out := make([]Attachment, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeAttachment(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Files returns all file records in canonical attachment form.
func (c *Client) Files(ctx context.Context) []Attachment {
	raw := c.collection(ctx, "files")
	out := make([]Attachment, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeAttachment(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Tags returns all tags in canonical form.
func (c *Client) Tags(ctx context.Context) []Tag {
	raw := c.collection(ctx, "tags")
	out := make([]Tag, 0, len(raw))
	for _, rec := range raw {
		if v, ok := normalizeTag(rec); ok {
			out = append(out, v)
		}
	}
	return out
}
