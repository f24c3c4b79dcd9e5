package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate is the proactive throttle rate in requests per second.
	ProactiveRate = 10

	// ProactiveBurst is the throttle burst size.
	ProactiveBurst = 5
)

// Ensure Client implements the interfaces.
var (
	_ driven.Gateway     = (*Client)(nil)
	_ driven.BlobFetcher = (*Client)(nil)
)

// Client talks to the document API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken wires a static bearer token into every request. Works for
// SharePoint session tokens obtained through Login.
func WithToken(ctx context.Context, token string) Option {
	return func(c *Client) {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(ctx, ts)
		tc.Timeout = DefaultTimeout
		c.http = tc
	}
}

// WithThrottle overrides the proactive request throttle.
func WithThrottle(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// NewClient creates a document API client. baseURL points at the API
// root, for example http://localhost:5000/api.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint builds a request URL from path segments and query values.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// folderQuery returns query values carrying the folder scope. The blob
// storage backend ignores the parameter; the SharePoint proxy requires
// it on every file route.
func folderQuery(folder string) url.Values {
	q := url.Values{}
	if folder != "" {
		q.Set("folder", folder)
	}
	return q
}

// do sends the request after the throttle clears and decodes the JSON
// response into out when out is non-nil. Non-2xx responses are turned
// into an APIError carrying the body's error message when present.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttle wait: %w", err)
	}

	logger.Debug("%s %s", req.Method, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			URL:        req.URL.String(),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the error field from a JSON error body,
// falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "request failed"
	}
	return msg
}

// listEnvelope is the SharePoint list response shape. The blob storage
// backend returns a bare array instead.
type listEnvelope struct {
	Success bool               `json:"success"`
	Files   []driven.FileEntry `json:"files"`
	Folders []string           `json:"folders"`
}

// ListFiles fetches the file list, accepting both response shapes.
func (c *Client) ListFiles(ctx context.Context, folder string) ([]driven.FileEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/files", folderQuery(folder)), nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}

	var entries []driven.FileEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}
	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode file list: %w", err)
	}
	return envelope.Files, nil
}

// Folders fetches the available folder names. Only the SharePoint
// variant populates them; the blob storage backend yields none.
func (c *Client) Folders(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/files", nil), nil)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := c.do(ctx, req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Folders, nil
}

// Upload stores a file through the multipart upload route. The backend
// may rename the file to avoid a conflict; the returned result carries
// the stored name.
func (c *Client) Upload(ctx context.Context, name, contentType string, data io.Reader, folder string) (*driven.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return nil, fmt.Errorf("write folder field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/upload", nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res driven.UploadResult
	if err := c.do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a stored file.
func (c *Client) Delete(ctx context.Context, id, folder string) error {
	path := "/files/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(path, folderQuery(folder)), nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// DownloadURL fetches the direct download reference for a stored file.
func (c *Client) DownloadURL(ctx context.Context, id string) (string, error) {
	path := "/files/" + url.PathEscape(id) + "/download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, nil), nil)
	if err != nil {
		return "", err
	}
	var res struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := c.do(ctx, req, &res); err != nil {
		return "", err
	}
	return res.DownloadURL, nil
}

// ExtractText requests server-side text extraction. The route is
// idempotent: previously extracted text comes back with the cached
// source marker.
func (c *Client) ExtractText(ctx context.Context, id, folder string) (*driven.ExtractResult, error) {
	path := "/extract-text/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, folderQuery(folder)), nil)
	if err != nil {
		return nil, err
	}
	var res driven.ExtractResult
	if err := c.do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SaveEditedText stores user-edited text alongside the document.
func (c *Client) SaveEditedText(ctx context.Context, id, text, folder string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("encode edited text: %w", err)
	}
	path := "/save-edited-text/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, folderQuery(folder)), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, nil)
}

// authRequest is the SharePoint auth route body.
type authRequest struct {
	Action   string `json:"action"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Login opens a SharePoint session.
func (c *Client) Login(ctx context.Context, username, password string) (*driven.AuthResult, error) {
	body, err := json.Marshal(authRequest{Action: "login", Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/sharepoint-auth", nil), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res driven.AuthResult
	if err := c.do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout closes the SharePoint session.
func (c *Client) Logout(ctx context.Context) error {
	body, err := json.Marshal(authRequest{Action: "logout"})
	if err != nil {
		return fmt.Errorf("encode logout: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/sharepoint-auth", nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, nil)
}

// Health probes the API health route.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health", nil), nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// FetchText downloads the raw bytes at a blob reference. The reference
// may point outside the API base URL, so the URL is used as given.
func (c *Client) FetchText(ctx context.Context, blobURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blobURL, nil)
	if err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("throttle wait: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", blobURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read blob body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body), URL: blobURL}
	}
	return string(body), nil
}
