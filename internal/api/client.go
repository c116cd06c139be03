package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/handoff"
	"github.com/studyhub/studydesk/internal/store"
)

// Client exposes the backend endpoints the terminal client uses.
type Client struct {
	doer Doer
}

// New creates a Client on top of an arbitrary Doer.
func New(d Doer) *Client {
	return &Client{doer: d}
}

// NewFromConfig creates a Client backed by HTTP, wrapped with retry and
// logging middleware. A nil repo disables request logging.
func NewFromConfig(cfg Config, repo store.EventRepo) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Wrap with middleware: caller → retry → logging → http
	var d Doer = NewHTTPDoer(cfg)
	if repo != nil {
		d = WithLogging(d, repo)
	}
	d = WithRetry(d, cfg.Retry)

	return New(d), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.doer.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetGuide fetches and validates one guide.
func (c *Client) GetGuide(ctx context.Context, id string) (*guide.Guide, error) {
	ctx = WithPurpose(ctx, "guide")
	body, err := c.get(ctx, "/api/study-guides/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get guide %s: %w", id, err)
	}
	g, err := guide.Parse(body)
	if err != nil {
		return nil, err
	}
	if g.ID == "" {
		g.ID = id
	}
	return g, nil
}

// ListGuides returns the student's guides, newest first.
func (c *Client) ListGuides(ctx context.Context) ([]guide.Summary, error) {
	ctx = WithPurpose(ctx, "guide_list")
	body, err := c.get(ctx, "/api/study-guides", nil)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	out, err := guide.ParseSummaries(body)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b guide.Summary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// ListAssignments returns assignments due within r, ordered by due date.
// The range is sent to the server as a filter and re-applied locally.
func (c *Client) ListAssignments(ctx context.Context, r calendar.Range) ([]Assignment, error) {
	ctx = WithPurpose(ctx, "assignments")
	q := url.Values{}
	q.Set("due_after", r.Start.Format(time.DateOnly))
	q.Set("due_before", r.End.Format(time.DateOnly))

	body, err := c.get(ctx, "/api/assignments", q)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	all, err := decodeAssignments(body)
	if err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	out := make([]Assignment, 0, len(all))
	for _, a := range all {
		if r.Contains(a.Due) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b Assignment) int {
		if d := a.Due.Compare(b.Due); d != 0 {
			return d
		}
		return strings.Compare(a.Title, b.Title)
	})
	return out, nil
}

type generateBody struct {
	GuideType    guide.Type `json:"guide_type"`
	Title        string     `json:"title,omitempty"`
	CourseID     string     `json:"course_id,omitempty"`
	AssignmentID string     `json:"assignment_id,omitempty"`
	ContentID    string     `json:"course_content_id,omitempty"`
}

// RequestGeneration asks the backend to generate a quiz or flashcard set
// and returns the validated result.
func (c *Client) RequestGeneration(ctx context.Context, req handoff.Request) (*guide.Guide, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("generate: unsupported kind %q", req.Kind)
	}
	ctx = WithPurpose(ctx, "generate")
	resp, err := c.doer.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/study-guides/generate",
		Body: generateBody{
			GuideType:    guide.Type(req.Kind),
			Title:        req.Title,
			CourseID:     req.CourseID,
			AssignmentID: req.AssignmentID,
			ContentID:    req.ContentID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", req.Kind, err)
	}
	return guide.Parse(resp.Body)
}

// ServerInfo is the backend's version endpoint reply.
type ServerInfo struct {
	Version          string `json:"version"`
	MinClientVersion string `json:"min_client_version"`
}

// CheckCompatibility fetches the server version and reports
// *ErrClientOutdated when clientVersion is older than the server's
// minimum. Development builds ("dev" or any non-semver string) are
// always accepted.
func (c *Client) CheckCompatibility(ctx context.Context, clientVersion string) (ServerInfo, error) {
	ctx = WithPurpose(ctx, "version")
	body, err := c.get(ctx, "/api/version", nil)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("check version: %w", err)
	}
	var info ServerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ServerInfo{}, fmt.Errorf("decode version: %w", err)
	}

	cv, mv := canonical(clientVersion), canonical(info.MinClientVersion)
	if cv == "" || mv == "" {
		return info, nil
	}
	if semver.Compare(cv, mv) < 0 {
		return info, &ErrClientOutdated{Client: clientVersion, Minimum: info.MinClientVersion}
	}
	return info, nil
}

// canonical returns v as a "v"-prefixed semver string, or "" if invalid.
func canonical(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// Guides adapts the client to a guide.Source.
func (c *Client) Guides() guide.Source {
	return clientSource{c: c}
}

type clientSource struct {
	c *Client
}

func (s clientSource) Get(ctx context.Context, id string) (*guide.Guide, error) {
	return s.c.GetGuide(ctx, id)
}

func (s clientSource) List(ctx context.Context) ([]guide.Summary, error) {
	return s.c.ListGuides(ctx)
}
