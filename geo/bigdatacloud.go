package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BigDataCloudClient calls the client-side reverse geocoding endpoint.
type BigDataCloudClient struct {
	endpoint string
	client   *http.Client
}

func NewBigDataCloudClient(endpoint string, timeout time.Duration) *BigDataCloudClient {
	return &BigDataCloudClient{
		endpoint: endpoint,
		client:   newHTTPClient(timeout),
	}
}

type reverseResponse struct {
	City                     string `json:"city"`
	Locality                 string `json:"locality"`
	Postcode                 string `json:"postcode"`
	PrincipalSubdivision     string `json:"principalSubdivision"`
	PrincipalSubdivisionCode string `json:"principalSubdivisionCode"`
}

// Reverse resolves coordinates to a French-language address.
func (c *BigDataCloudClient) Reverse(ctx context.Context, lat, lng float64) (*Location, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("localityLanguage", "fr")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode returned %d", resp.StatusCode)
	}

	var data reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	city := data.City
	if city == "" {
		city = data.Locality
	}

	return &Location{
		City:           city,
		PostalCode:     data.Postcode,
		Department:     data.PrincipalSubdivisionCode,
		Region:         data.PrincipalSubdivision,
		Latitude:       lat,
		Longitude:      lng,
		HasCoordinates: true,
	}, nil
}
