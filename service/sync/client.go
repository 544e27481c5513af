package sync

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	metadataTimeout = 20 * time.Second
	maxRedirects    = 3
)

// ErrNotConfigured is returned before any network I/O when the sync
// credentials are incomplete.
var ErrNotConfigured = errors.New("sync: base URL or credentials not configured")

// Response is a fully read remote reply. Non-2xx statuses are carried
// here as data, never as an error; Classify decides what they mean.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client issues authenticated GET requests against the configured remote.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	cfg.Normalize()
	return &Client{
		cfg:  cfg,
		http: newHTTPClient(metadataTimeout),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// Config returns the client's normalized configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Get requests path with the given query plus consumer key/secret auth.
func (c *Client) Get(path string, query url.Values) (*Response, error) {
	if !c.cfg.Complete() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("consumer_key", c.cfg.ConsumerKey)
	q.Set("consumer_secret", c.cfg.ConsumerSecret)

	req, err := http.NewRequest(http.MethodGet, c.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// Diagnose probes the health endpoint and classifies the outcome.
func (c *Client) Diagnose() ErrorSet {
	resp, err := c.Get(c.cfg.HealthEndpoint, nil)
	return Classify(resp, err)
}
