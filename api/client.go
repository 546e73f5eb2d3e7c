package api

import (
	"net/http"
	"strings"
	"time"
)

const (
	LoginPath  = "/api/auth/login"
	UploadPath = "/api/products/upload"

	// ImageContentType is sent for every attached image regardless of extension
	ImageContentType = "image/jpeg"
	// ImagesField is the multipart field name for product images
	ImagesField = "images"
)

// Client talks to the HarvestHub backend
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for baseURL. A zero timeout leaves the
// http.Client default in place.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
