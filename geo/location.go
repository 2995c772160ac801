// Package geo queries public IP-geolocation and reverse-geocoding services.
package geo

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrIncompleteLocation is returned when a provider answers without enough
// data to classify the visitor.
var ErrIncompleteLocation = errors.New("location response is incomplete")

// Location is what the detector knows about a visitor.
type Location struct {
	City           string  `json:"city,omitempty"`
	PostalCode     string  `json:"postal_code,omitempty"`
	Department     string  `json:"department,omitempty"`
	Region         string  `json:"region,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	HasCoordinates bool    `json:"has_coordinates"`
}

// IPLocator resolves an IP address to a location.
type IPLocator interface {
	LocateIP(ctx context.Context, ip string) (*Location, error)
}

// ReverseGeocoder resolves coordinates to an address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (*Location, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
