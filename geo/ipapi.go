package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IPAPIClient talks to an ipapi.co compatible endpoint.
type IPAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewIPAPIClient(baseURL string, timeout time.Duration) *IPAPIClient {
	return &IPAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

type ipapiResponse struct {
	City       string  `json:"city"`
	Postal     string  `json:"postal"`
	RegionCode string  `json:"region_code"`
	Region     string  `json:"region"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Error      bool    `json:"error"`
	Reason     string  `json:"reason"`
}

// LocateIP looks up ip, or the caller's own address when ip is empty.
func (c *IPAPIClient) LocateIP(ctx context.Context, ip string) (*Location, error) {
	endpoint := c.baseURL + "/json/"
	if ip != "" {
		endpoint = c.baseURL + "/" + url.PathEscape(ip) + "/json/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ip lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ip lookup returned %d: %s", resp.StatusCode, string(body))
	}

	var data ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode ip lookup response: %w", err)
	}
	if data.Error {
		return nil, fmt.Errorf("ip lookup rejected: %s", data.Reason)
	}
	if data.City == "" || data.Postal == "" {
		return nil, ErrIncompleteLocation
	}

	return &Location{
		City:           data.City,
		PostalCode:     data.Postal,
		Department:     data.RegionCode,
		Region:         data.Region,
		Latitude:       data.Latitude,
		Longitude:      data.Longitude,
		HasCoordinates: data.Latitude != 0 && data.Longitude != 0,
	}, nil
}
