// API client for a running saavnx server
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultAPIBaseURL = "http://localhost:5100"

// APIService makes raw HTTP requests against a saavnx server.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new API client for the server at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Failed reports whether the body is an error envelope, returning its message.
func (r *APIResponse) Failed() (string, bool) {
	obj, ok := r.JSONData.(map[string]any)
	if !ok {
		return "", false
	}
	if status, ok := obj["status"].(bool); ok && !status {
		msg, _ := obj["error"].(string)
		return msg, msg != ""
	}
	return "", false
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Query performs a GET request to an endpoint (e.g. "/song/") with the given query parameters.
func (a *APIService) Query(ctx context.Context, endpoint string, params url.Values) (*APIResponse, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	return a.Get(ctx, endpoint)
}
