package provider

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to an Evolution-compatible messaging provider over HTTP.
// It is stateless: endpoint and credential are supplied per call because
// different tenants may point at different provider deployments.
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	return &Client{http: client}
}

func NewClientWithResty(client *resty.Client) (*Client, error) {
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultRequestTimeout)
	}
	client.SetRetryCount(0)

	return &Client{http: client}, nil
}

var _ API = (*Client)(nil)

// providerURL joins the endpoint with a provider API path, tolerating
// trailing slashes in stored endpoints.
func providerURL(endpoint string, parts ...string) string {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	escaped := make([]string, 0, len(parts))
	for _, part := range parts {
		escaped = append(escaped, url.PathEscape(part))
	}
	return base + "/" + strings.Join(escaped, "/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
