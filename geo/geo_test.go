package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPAPIClient_LocateIP(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"Antibes","postal":"06600","region_code":"PAC","region":"Provence-Alpes-Côte d'Azur","latitude":43.58,"longitude":7.12}`))
	}))
	defer srv.Close()

	c := NewIPAPIClient(srv.URL+"/", time.Second)
	loc, err := c.LocateIP(context.Background(), "203.0.113.7")
	require.NoError(t, err)

	assert.Equal(t, "/203.0.113.7/json/", gotPath)
	assert.Equal(t, "Antibes", loc.City)
	assert.Equal(t, "06600", loc.PostalCode)
	assert.Equal(t, "PAC", loc.Department)
	assert.True(t, loc.HasCoordinates)
	assert.InDelta(t, 43.58, loc.Latitude, 1e-9)
}

func TestIPAPIClient_SelfLookup(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"city":"Paris","postal":"75001"}`))
	}))
	defer srv.Close()

	loc, err := NewIPAPIClient(srv.URL, time.Second).LocateIP(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/json/", gotPath)
	assert.False(t, loc.HasCoordinates)
}

func TestIPAPIClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusTooManyRequests, body: `{"error":true}`},
		{name: "provider error", status: http.StatusOK, body: `{"error":true,"reason":"RateLimited"}`},
		{name: "missing postal", status: http.StatusOK, body: `{"city":"Nice"}`, wantErr: ErrIncompleteLocation},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewIPAPIClient(srv.URL, time.Second).LocateIP(context.Background(), "1.2.3.4")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBigDataCloudClient_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.8566", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2.3522", r.URL.Query().Get("longitude"))
		assert.Equal(t, "fr", r.URL.Query().Get("localityLanguage"))
		_, _ = w.Write([]byte(`{"city":"","locality":"Paris","postcode":"75004","principalSubdivision":"Île-de-France","principalSubdivisionCode":"FR-IDF"}`))
	}))
	defer srv.Close()

	loc, err := NewBigDataCloudClient(srv.URL, time.Second).Reverse(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, "Paris", loc.City)
	assert.Equal(t, "75004", loc.PostalCode)
	assert.Equal(t, "FR-IDF", loc.Department)
	assert.True(t, loc.HasCoordinates)
}

func TestBigDataCloudClient_ReverseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewBigDataCloudClient(srv.URL, time.Second).Reverse(context.Background(), 1, 1)
	assert.Error(t, err)
}
