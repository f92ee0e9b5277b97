package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

const (
	// DefaultHost is the Content Delivery API host
	DefaultHost = "cdn.contentful.com"

	// PreviewHost serves unpublished entries with a preview token
	PreviewHost = "preview.contentful.com"

	// DefaultEnvironment is the environment every space starts with
	DefaultEnvironment = "master"

	// MaxLimit is the largest page the Delivery API returns
	MaxLimit = 1000
)

// Config options for the Contentful client
type Config struct {
	SpaceID     string
	AccessToken string
	Environment string       // default: master
	Host        string       // host or base URL, default: cdn.contentful.com
	HTTPClient  *http.Client // default: NewHTTPClient()
}

// Client reads entries from the Contentful Content Delivery API. It
// implements portfolio.Source.
type Client struct {
	spaceID     string
	accessToken string
	environment string
	baseURL     string
	httpClient  *http.Client
}

// New creates a Contentful client. Missing credentials are not an error;
// the client then reports itself unconfigured.
func New(config Config) *Client {
	if config.Environment == "" {
		config.Environment = DefaultEnvironment
	}
	if config.Host == "" {
		config.Host = DefaultHost
	}
	if config.HTTPClient == nil {
		config.HTTPClient = NewHTTPClient()
	}

	baseURL := strings.TrimSuffix(config.Host, "/")
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	return &Client{
		spaceID:     config.SpaceID,
		accessToken: config.AccessToken,
		environment: config.Environment,
		baseURL:     baseURL,
		httpClient:  config.HTTPClient,
	}
}

// NewHTTPClient returns a client with connection-level timeouts only. The
// overall request is bounded by the caller's context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 15 * time.Second,
			MaxIdleConnsPerHost:   4,
		},
	}
}

// Configured reports whether both the space ID and access token were supplied
func (c *Client) Configured() bool {
	return c.spaceID != "" && c.accessToken != ""
}

// GetEntries fetches the entries of one content type, resolving linked
// assets from the response includes.
func (c *Client) GetEntries(ctx context.Context, query portfolio.EntryQuery) ([]portfolio.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.entriesURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var coll entryCollection
	if err := json.NewDecoder(resp.Body).Decode(&coll); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	if coll.Sys.Type != "Array" {
		return nil, fmt.Errorf("unexpected response type %q", coll.Sys.Type)
	}

	return coll.entries()
}

func (c *Client) entriesURL(query portfolio.EntryQuery) string {
	v := url.Values{}
	v.Set("content_type", query.ContentType)
	if len(query.Select) > 0 {
		v.Set("select", strings.Join(append([]string{"sys.id"}, query.Select...), ","))
	}
	v.Set("include", "1")
	v.Set("limit", strconv.Itoa(MaxLimit))

	return fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL, url.PathEscape(c.spaceID), url.PathEscape(c.environment), v.Encode())
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.ID = env.Sys.ID
			apiErr.Message = env.Message
			apiErr.RequestID = env.RequestID
		}
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Header.Get("X-Contentful-Request-Id")
	}
	return apiErr
}
