package parallagon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service defines the server operations the sync engine and UI depend on.
// It is implemented by *Client and can be stubbed in tests.
type Service interface {
	FetchMissions(ctx context.Context) ([]Mission, error)
	FetchContent(ctx context.Context, missionID int64) (map[string]string, error)
	FetchFiles(ctx context.Context, missionID int64, includeContent bool) ([]FileRecord, error)
	FetchSuivi(ctx context.Context) (string, error)
	FetchNotifications(ctx context.Context) ([]Notification, error)
	FetchAgentStatus(ctx context.Context) (map[string]AgentState, error)
	FetchLogs(ctx context.Context) ([]LogRecord, error)
	ClearLogs(ctx context.Context) error
	ExportLogs(ctx context.Context) ([]byte, error)
	StartAgents(ctx context.Context) error
	StopAgents(ctx context.Context) error
	ToggleAgent(ctx context.Context, agentID, action string) error
	SaveDemande(ctx context.Context, content string, missionID int64, missionName string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "http://127.0.0.1:8000"
	defaultUserAgent = "kinos-console/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given server URL. An empty value uses
// the default local server address.
func NewClient(serverURL string) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchMissions retrieves all missions known to the server.
func (c *Client) FetchMissions(ctx context.Context) ([]Mission, error) {
	var payload []Mission
	if err := c.do(ctx, http.MethodGet, "/api/missions", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchContent retrieves the panel-id to text mapping for a mission.
func (c *Client) FetchContent(ctx context.Context, missionID int64) (map[string]string, error) {
	var payload map[string]string
	path := "/api/missions/" + strconv.FormatInt(missionID, 10) + "/content"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchFiles retrieves the file records for a mission.
func (c *Client) FetchFiles(ctx context.Context, missionID int64, includeContent bool) ([]FileRecord, error) {
	rel := &url.URL{Path: "/api/missions/" + strconv.FormatInt(missionID, 10) + "/files"}
	if includeContent {
		rel.RawQuery = url.Values{"include_content": {"true"}}.Encode()
	}
	var payload []FileRecord
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchSuivi retrieves the raw mission log text.
func (c *Client) FetchSuivi(ctx context.Context) (string, error) {
	var payload suiviResponse
	if err := c.do(ctx, http.MethodGet, "/api/suivi", nil, &payload); err != nil {
		return "", err
	}
	return payload.Content, nil
}

// FetchNotifications drains pending server notifications.
func (c *Client) FetchNotifications(ctx context.Context) ([]Notification, error) {
	var payload []Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAgentStatus retrieves the running flag for every agent.
func (c *Client) FetchAgentStatus(ctx context.Context) (map[string]AgentState, error) {
	var payload map[string]AgentState
	if err := c.do(ctx, http.MethodGet, "/api/agents/status", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchLogs retrieves the server's operation log.
func (c *Client) FetchLogs(ctx context.Context) ([]LogRecord, error) {
	var payload []LogRecord
	if err := c.do(ctx, http.MethodGet, "/api/logs", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ClearLogs asks the server to drop its operation log.
func (c *Client) ClearLogs(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logs/clear", nil, nil)
}

// ExportLogs downloads the server log as an opaque blob.
func (c *Client) ExportLogs(ctx context.Context) ([]byte, error) {
	rel := &url.URL{Path: "/api/logs/export"}
	req, err := c.newRequest(ctx, http.MethodGet, rel, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, apiError(rel, resp)
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return blob, nil
}

// StartAgents starts the server-side agents for the current mission.
func (c *Client) StartAgents(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/start", nil, nil)
}

// StopAgents stops the server-side agents.
func (c *Client) StopAgents(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/stop", nil, nil)
}

// ToggleAgent starts or stops a single agent. The server addresses agents
// by capitalized name, so the id's first letter is upper-cased.
func (c *Client) ToggleAgent(ctx context.Context, agentID, action string) error {
	if action != "start" && action != "stop" {
		return fmt.Errorf("invalid agent action %q", action)
	}
	name := capitalize(agentID)
	if name == "" {
		return fmt.Errorf("agent id required")
	}
	return c.do(ctx, http.MethodPost, "/api/agent/"+name+"/"+action, nil, nil)
}

// SaveDemande persists the request-draft panel for a mission.
func (c *Client) SaveDemande(ctx context.Context, content string, missionID int64, missionName string) error {
	body := map[string]any{
		"content":     content,
		"missionId":   missionID,
		"missionName": missionName,
	}
	var result saveResult
	if err := c.do(ctx, http.MethodPost, "/api/demande", body, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("server rejected demande save")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	req, err := c.newRequest(ctx, method, rel, body)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return apiError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, rel *url.URL, body any) (*http.Request, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// apiError folds the server's {"error": ...} payload into the returned
// error when present.
func apiError(rel *url.URL, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("api %s returned status %d: %s", rel.String(), resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server_url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
