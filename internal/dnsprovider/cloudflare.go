// Package dnsprovider creates subdomain DNS records at restaurant onboarding
// through the Cloudflare v4 API.
package dnsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

type Cloudflare struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	zoneID     string
	baseDomain string
	target     string
}

func NewCloudflare(apiToken, zoneID, baseDomain, target string) *Cloudflare {
	return &Cloudflare{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		apiToken:   apiToken,
		zoneID:     zoneID,
		baseDomain: baseDomain,
		target:     target,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Cloudflare) WithBaseURL(u string) *Cloudflare {
	c.baseURL = u
	return c
}

type recordRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

type apiResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateSubdomain creates a proxied CNAME record <slug>.<baseDomain>
// pointing at the platform target. Returns the fully qualified name.
func (c *Cloudflare) CreateSubdomain(ctx context.Context, slug string) (string, error) {
	name := slug + "." + c.baseDomain

	body, err := json.Marshal(recordRequest{
		Type:    "CNAME",
		Name:    name,
		Content: c.target,
		TTL:     1, // automatic
		Proxied: true,
	})
	if err != nil {
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: marshal: %w", err)
	}

	url := fmt.Sprintf("%s/zones/%s/dns_records", c.baseURL, c.zoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !parsed.Success {
		if len(parsed.Errors) > 0 {
			return "", fmt.Errorf("dnsprovider.CreateSubdomain: cloudflare error %d: %s",
				parsed.Errors[0].Code, parsed.Errors[0].Message)
		}
		return "", fmt.Errorf("dnsprovider.CreateSubdomain: request failed with status %d", resp.StatusCode)
	}

	return name, nil
}
