package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ServiceError is an application-level failure: the host answered with a
// well-formed envelope whose status is "error". The message is authored by
// the host and is shown to the user verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the host service's admin API. All lifecycle work
// (downloading, unpacking, registering extensions) happens on the host;
// the client only submits requests and decodes the refreshed state.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if env.Status != "ok" {
		return nil, &ServiceError{Message: env.Message}
	}

	return &env, nil
}

func (c *Client) get(path string, query url.Values) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) postJSON(path string, query url.Values, body interface{}) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest("POST", u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// ListExtensions fetches the full installed-extension list.
func (c *Client) ListExtensions() ([]Extension, error) {
	env, err := c.get("/api/extension/list", nil)
	if err != nil {
		return nil, err
	}

	var extensions []Extension
	if err := json.Unmarshal(env.Data, &extensions); err != nil {
		return nil, fmt.Errorf("failed to parse extension list: %w", err)
	}

	return extensions, nil
}

// MarketList fetches the remote catalog. The host returns a keyed mapping
// name -> entry; iteration order over that mapping is meaningless, so the
// result is sorted by name for stable rendering.
func (c *Client) MarketList() ([]MarketEntry, error) {
	env, err := c.get("/api/extension/market", nil)
	if err != nil {
		return nil, err
	}

	var keyed map[string]MarketEntry
	if err := json.Unmarshal(env.Data, &keyed); err != nil {
		return nil, fmt.Errorf("failed to parse market catalog: %w", err)
	}

	entries := make([]MarketEntry, 0, len(keyed))
	for name, entry := range keyed {
		entry.Name = name
		entry.Installed = false
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, nil
}

func (c *Client) postForExtensions(path string, body interface{}) ([]Extension, string, error) {
	env, err := c.postJSON(path, nil, body)
	if err != nil {
		return nil, "", err
	}

	var extensions []Extension
	if err := json.Unmarshal(env.Data, &extensions); err != nil {
		return nil, "", fmt.Errorf("failed to parse extension list: %w", err)
	}

	return extensions, env.Message, nil
}

// InstallFromURL asks the host to install an extension from a source
// repository URL. The host returns the entire refreshed installed list.
func (c *Client) InstallFromURL(repoURL string) ([]Extension, string, error) {
	return c.postForExtensions("/api/extension/install", map[string]string{"url": repoURL})
}

// InstallFromArchive uploads a local extension archive to the host as a
// multipart request (field "file"). The host returns the entire refreshed
// installed list.
func (c *Client) InstallFromArchive(archivePath string) ([]Extension, string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(archivePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to read archive: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/extension/install-upload", &buf)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	env, err := c.do(req)
	if err != nil {
		return nil, "", err
	}

	var extensions []Extension
	if err := json.Unmarshal(env.Data, &extensions); err != nil {
		return nil, "", fmt.Errorf("failed to parse extension list: %w", err)
	}

	return extensions, env.Message, nil
}

// Uninstall removes a named extension. The host returns the refreshed list.
func (c *Client) Uninstall(name string) ([]Extension, string, error) {
	return c.postForExtensions("/api/extension/uninstall", map[string]string{"name": name})
}

// Update pulls the latest version of a named extension. The host returns
// the refreshed list.
func (c *Client) Update(name string) ([]Extension, string, error) {
	return c.postForExtensions("/api/extension/update", map[string]string{"name": name})
}

// Enable activates a named extension. The caller is expected to re-fetch
// the installed list afterwards; the host only returns a message.
func (c *Client) Enable(name string) (string, error) {
	env, err := c.postJSON("/api/extension/on", nil, map[string]string{"name": name})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Disable deactivates a named extension.
func (c *Client) Disable(name string) (string, error) {
	env, err := c.postJSON("/api/extension/off", nil, map[string]string{"name": name})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetExtensionConfig fetches the configuration document for a named
// extension.
func (c *Client) GetExtensionConfig(name string) (*ExtensionConfig, error) {
	query := url.Values{"plugin_name": {name}}
	env, err := c.get("/api/config/extension/get", query)
	if err != nil {
		return nil, err
	}

	var cfg ExtensionConfig
	if err := json.Unmarshal(env.Data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse extension config: %w", err)
	}

	return &cfg, nil
}

// SaveExtensionConfig persists an edited config document. Only the config
// document is sent; metadata stays on the host.
func (c *Client) SaveExtensionConfig(name string, doc map[string]interface{}) (string, error) {
	query := url.Values{"plugin_name": {name}}
	env, err := c.postJSON("/api/config/extension/update", query, doc)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// RestartRequired reports whether the host needs a restart for pending
// changes to take effect. Checked after every mutating success.
func (c *Client) RestartRequired() (bool, error) {
	env, err := c.get("/api/stat/restart-required", nil)
	if err != nil {
		return false, err
	}

	var status struct {
		Required bool `json:"required"`
	}
	if err := json.Unmarshal(env.Data, &status); err != nil {
		return false, fmt.Errorf("failed to parse restart status: %w", err)
	}

	return status.Required, nil
}
