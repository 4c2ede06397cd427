package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-sync15"

// HTTPClient is a resty client preset for JSON APIs.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout leaves
// requests unbounded apart from their context.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://sync.example.com/1.5/42", 30*time.Second)
//	resp, err := client.R().Get("/info/collections")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
