// Package content is a client for the Aisystant course content service.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aisystant/coursesync"
	"github.com/gofiber/fiber/v2/log"
)

// DefaultBaseURL is the content API root.
const DefaultBaseURL = "https://api.aisystant.com/api"

// TokenHeader carries the session token on every request.
const TokenHeader = "Session-Token"

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content API: %s returned HTTP %d", e.URL, e.StatusCode)
}

// Course is an entry of the course catalog.
type Course struct {
	ID              string `json:"id"`
	ProductCode     string `json:"productCode"`
	Title           string `json:"title"`
	ActiveVersionID string `json:"activeVersionId"`
}

// CourseVersion is one published version of a course.
type CourseVersion struct {
	ID       string               `json:"id"`
	Sections []coursesync.Section `json:"sections"`
}

// Passing is the user's attempt record against a course version.
type Passing struct {
	ID              string `json:"id"`
	CourseVersionID string `json:"courseVersionId"`
}

// Client talks to the content API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client. The default is
// http.DefaultClient, which has no overall request timeout; callers that want
// one set it here or bound the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client that authenticates with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: http.DefaultClient,
		userAgent:  coursesync.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(TokenHeader, c.token)
	req.Header.Set("User-Agent", c.userAgent)

	log.Debugf("content: %s %s", method, url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/"+path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Courses lists the course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.getJSON(ctx, "courses/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// FindCourse returns the course with the given product code, or nil when
// the catalog has none.
func (c *Client) FindCourse(ctx context.Context, productCode string) (*Course, error) {
	log.Infof("Fetching course with product code: %s", productCode)
	courses, err := c.Courses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ProductCode == productCode {
			return &courses[i], nil
		}
	}
	log.Warnf("Course with product code %s not found", productCode)
	return nil, nil
}

// CourseVersion fetches a version with its ordered section list.
func (c *Client) CourseVersion(ctx context.Context, versionID string) (*CourseVersion, error) {
	log.Infof("Fetching course version %s", versionID)
	var v CourseVersion
	if err := c.getJSON(ctx, "courses/course-versions/"+versionID, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// StartCourse enrolls the current user in a course version.
func (c *Client) StartCourse(ctx context.Context, versionID string) error {
	log.Infof("Starting course version %s", versionID)
	_, err := c.do(ctx, http.MethodPost, c.baseURL+"/courses/start/"+versionID)
	return err
}

// Passings lists the user's course attempts.
func (c *Client) Passings(ctx context.Context) ([]Passing, error) {
	var passings []Passing
	if err := c.getJSON(ctx, "courses/courses-passing", &passings); err != nil {
		return nil, err
	}
	return passings, nil
}

// PassingID returns the user's passing for a course version.
func (c *Client) PassingID(ctx context.Context, versionID string) (string, bool, error) {
	passings, err := c.Passings(ctx)
	if err != nil {
		return "", false, err
	}
	for _, p := range passings {
		if p.CourseVersionID == versionID {
			return p.ID, true, nil
		}
	}
	log.Warnf("No passing found for course version %s", versionID)
	return "", false, nil
}

// SectionText fetches a section's raw markup. Invalid UTF-8 is replaced
// rather than rejected.
func (c *Client) SectionText(ctx context.Context, sectionID, passingID string) (string, error) {
	log.Infof("Loading section %s", sectionID)
	url := fmt.Sprintf("%s/courses/text/%s?course-passing=%s", c.baseURL, sectionID, passingID)
	body, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(body), "�"), nil
}

// Fetch downloads an arbitrary asset with the session token attached.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url)
}
