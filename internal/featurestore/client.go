// Package featurestore reads listing snapshots from a Hopsworks-style feature
// store REST API. An API key is exchanged for a short-lived bearer token that
// is refreshed before it expires.
package featurestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultPageSize = 5000

type Client struct {
	BaseURL string
	APIKey  string
	Project string

	mu             sync.RWMutex
	token          string
	expiresAt      time.Time
	projectID      int
	featureStoreID int

	HTTP     *http.Client
	PageSize int
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type projectResponse struct {
	ProjectID      int `json:"projectId"`
	FeatureStoreID int `json:"featurestoreId"`
}

// Page is one slice of feature group rows.
type Page struct {
	Columns    []string         `json:"columns"`
	Items      []map[string]any `json:"items"`
	NextOffset *int             `json:"next_offset"`
}

func (c *Client) base() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func (c *Client) Login(ctx context.Context) error {
	base := c.base()
	if base == "" {
		return errors.New("feature store base url is empty")
	}
	apiKey := strings.TrimSpace(c.APIKey)
	if apiKey == "" {
		return errors.New("feature store api key is empty")
	}

	body, _ := json.Marshal(map[string]any{"api_key": apiKey})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/hopsworks-api/api/auth/apikey", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	b, err := c.do(req, "login")
	if err != nil {
		return err
	}
	var lr loginResponse
	if err := json.Unmarshal(b, &lr); err != nil {
		return fmt.Errorf("feature store login: %w", err)
	}
	exp, _ := time.Parse(time.RFC3339, strings.TrimSpace(lr.ExpiresAt))

	c.mu.Lock()
	c.token = strings.TrimSpace(lr.Token)
	c.expiresAt = exp
	c.mu.Unlock()
	return nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) EnsureToken(ctx context.Context) error {
	c.mu.RLock()
	tok := c.token
	exp := c.expiresAt
	c.mu.RUnlock()
	if strings.TrimSpace(tok) == "" {
		return c.Login(ctx)
	}
	if !exp.IsZero() && time.Until(exp) < 2*time.Minute {
		return c.Login(ctx)
	}
	return nil
}

// resolveProject looks up the project and feature store ids once.
func (c *Client) resolveProject(ctx context.Context) (int, int, error) {
	c.mu.RLock()
	pid, fsid := c.projectID, c.featureStoreID
	c.mu.RUnlock()
	if pid != 0 {
		return pid, fsid, nil
	}
	project := strings.TrimSpace(c.Project)
	if project == "" {
		return 0, 0, errors.New("feature store project is empty")
	}
	b, err := c.get(ctx, "/hopsworks-api/api/project/getProjectInfo/"+url.PathEscape(project), nil, "project info")
	if err != nil {
		return 0, 0, err
	}
	var pr projectResponse
	if err := json.Unmarshal(b, &pr); err != nil {
		return 0, 0, fmt.Errorf("feature store project info: %w", err)
	}
	if pr.ProjectID == 0 {
		return 0, 0, fmt.Errorf("feature store project %q not found", project)
	}
	c.mu.Lock()
	c.projectID, c.featureStoreID = pr.ProjectID, pr.FeatureStoreID
	c.mu.Unlock()
	return pr.ProjectID, pr.FeatureStoreID, nil
}

// ReadFeatureGroup pages through every row of name/version. onPage, when
// non-nil, is called with the running row count after each page.
func (c *Client) ReadFeatureGroup(ctx context.Context, name string, version int, onPage func(rows int)) ([]string, []map[string]any, error) {
	pid, fsid, err := c.resolveProject(ctx)
	if err != nil {
		return nil, nil, err
	}
	path := fmt.Sprintf("/hopsworks-api/api/project/%d/featurestores/%d/featuregroups/%s/rows",
		pid, fsid, url.PathEscape(name))
	size := c.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	var (
		columns []string
		rows    []map[string]any
		offset  int
	)
	for {
		q := url.Values{}
		q.Set("version", strconv.Itoa(version))
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(size))
		b, err := c.get(ctx, path, q, "read feature group")
		if err != nil {
			return nil, nil, err
		}
		var page Page
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&page); err != nil {
			return nil, nil, fmt.Errorf("feature group %s v%d: %w", name, version, err)
		}
		if columns == nil {
			columns = page.Columns
		}
		rows = append(rows, page.Items...)
		if onPage != nil {
			onPage(len(rows))
		}
		if page.NextOffset == nil || *page.NextOffset <= offset || len(page.Items) == 0 {
			break
		}
		offset = *page.NextOffset
	}
	return columns, rows, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, op string) ([]byte, error) {
	if err := c.EnsureToken(ctx); err != nil {
		return nil, err
	}
	u := c.base() + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token())
	return c.do(req, op)
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 256<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(truncate(b, 512)))}
	}
	return b, nil
}

type HTTPError struct {
	Op     string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("feature store %s http %d: %s", e.Op, e.Status, e.Body)
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 60 * time.Second}
}
