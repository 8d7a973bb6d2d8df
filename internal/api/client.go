// Package api is the single configured client for the remote deployment
// service. All requests resolve against one base URL and share default
// headers; failures surface as *Error values, never panics.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/manojaccellor/langflow/internal/jsonutil"
	"github.com/manojaccellor/langflow/internal/trace"
)

// Options configure the client. BaseURL must end in a slash for relative
// paths to resolve under it.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the deployment API.
type Client struct {
	base   *url.URL
	apiKey string
	http   *http.Client
}

// New creates a client from options. The base URL is validated up front so
// every later call can assume it resolves.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", opts.BaseURL, err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		base:   base,
		apiKey: opts.APIKey,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

// FlowSummary is one entry of the flow listing.
type FlowSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeployInfo is the structured deploy response: the service packaged the
// flow and is hosting it (or offering it) at these URLs.
type DeployInfo struct {
	APIURL      string `json:"api_url"`
	DocsURL     string `json:"docs_url"`
	DownloadURL string `json:"download_url"`
}

// DeployResult is the outcome of a deploy call. Exactly one of Archive or
// Info is set: the server either streamed a zip of the generated app or
// returned URLs as JSON. Callers must branch on which, not assume one.
type DeployResult struct {
	Archive  []byte
	Filename string
	Info     *DeployInfo
}

// ContainerInfo describes a running container for a containerized flow.
type ContainerInfo struct {
	APIURL        string `json:"api_url"`
	ContainerName string `json:"container_name"`
}

// ContainerizeResult is the containerize response. ContainerInfo is only
// present when the server also started the container (auto-deploy).
type ContainerizeResult struct {
	ImageName     string         `json:"image_name"`
	Message       string         `json:"message"`
	ContainerInfo *ContainerInfo `json:"container_info"`
}

// ContainerizeRequest carries the user's container options.
type ContainerizeRequest struct {
	Port       int  `json:"port"`
	AutoDeploy bool `json:"auto_deploy"`
}

// ListFlows fetches the flows available on the server.
func (c *Client) ListFlows(ctx context.Context) ([]FlowSummary, error) {
	ctx, end := trace.StartRequest(ctx, "flow.list", "")
	flows, err := c.listFlows(ctx)
	end(err)
	return flows, err
}

func (c *Client) listFlows(ctx context.Context) ([]FlowSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "flows/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := c.checkStatus(resp)
	if err != nil {
		return nil, err
	}
	var flows []FlowSummary
	if err := jsonutil.UnmarshalWithContext(body, &flows, "list flows"); err != nil {
		return nil, err
	}
	return flows, nil
}

// Deploy asks the server to package flowID as a standalone service. The
// response is either a binary archive or JSON URLs; see DeployResult.
func (c *Client) Deploy(ctx context.Context, flowID string) (*DeployResult, error) {
	ctx, end := trace.StartRequest(ctx, "flow.deploy", flowID)
	result, err := c.deploy(ctx, flowID)
	end(err)
	return result, err
}

func (c *Client) deploy(ctx context.Context, flowID string) (*DeployResult, error) {
	if strings.TrimSpace(flowID) == "" {
		return nil, fmt.Errorf("api: deploy requires a flow id")
	}
	resp, err := c.do(ctx, http.MethodPost, "flows/"+url.PathEscape(flowID)+"/deploy", struct{}{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := c.checkStatus(resp)
	if err != nil {
		return nil, err
	}

	if isArchive(resp.Header) {
		return &DeployResult{
			Archive:  body,
			Filename: ArchiveFilename(flowID),
		}, nil
	}

	var info DeployInfo
	if err := jsonutil.UnmarshalWithContext(body, &info, "deploy flow "+flowID); err != nil {
		return nil, err
	}
	return &DeployResult{Info: &info}, nil
}

// Containerize asks the server to build (and optionally run) a container
// image for flowID.
func (c *Client) Containerize(ctx context.Context, flowID string, req ContainerizeRequest) (*ContainerizeResult, error) {
	ctx, end := trace.StartRequest(ctx, "flow.containerize", flowID)
	result, err := c.containerize(ctx, flowID, req)
	end(err)
	return result, err
}

func (c *Client) containerize(ctx context.Context, flowID string, req ContainerizeRequest) (*ContainerizeResult, error) {
	if strings.TrimSpace(flowID) == "" {
		return nil, fmt.Errorf("api: containerize requires a flow id")
	}
	if req.Port <= 0 {
		return nil, fmt.Errorf("api: containerize requires a positive port, got %d", req.Port)
	}
	resp, err := c.do(ctx, http.MethodPost, "flows/"+url.PathEscape(flowID)+"/containerize", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := c.checkStatus(resp)
	if err != nil {
		return nil, err
	}
	var result ContainerizeResult
	if err := jsonutil.UnmarshalWithContext(body, &result, "containerize flow "+flowID); err != nil {
		return nil, err
	}
	// Some servers report a missing container runtime inside a 2xx body
	// instead of failing the request. Classify it the same way.
	if result.ImageName == "" && MentionsDocker(result.Message) {
		return nil, &Error{Status: resp.StatusCode, Detail: result.Message}
	}
	return &result, nil
}

// ArchiveFilename returns the download name for a flow's generated app
// archive.
func ArchiveFilename(flowID string) string {
	return flowID + "_fastapi_app.zip"
}

// do issues one request with the client's defaults. body is JSON-encoded
// when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("api: invalid path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, application/zip")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, target.Path, err)
	}
	return resp, nil
}

// checkStatus reads the body and converts non-2xx responses into *Error,
// pulling the embedded detail text out when the body carries one.
func (c *Client) checkStatus(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Status: resp.StatusCode,
			Detail: jsonutil.ExtractDetail(body),
		}
	}
	return body, nil
}

// isArchive reports whether the response declared a binary archive payload
// rather than structured JSON.
func isArchive(h http.Header) bool {
	ct := h.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		switch mediaType {
		case "application/zip", "application/x-zip-compressed", "application/octet-stream":
			return true
		}
	}
	if cd := h.Get("Content-Disposition"); cd != "" {
		if disposition, _, err := mime.ParseMediaType(cd); err == nil && disposition == "attachment" {
			return true
		}
	}
	return false
}
