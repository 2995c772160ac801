package usecases

import (
	"context"
	"sync"

	"sage-portal/geo"

	"github.com/stretchr/testify/mock"
)

// MockIPLocator is a mock implementation of geo.IPLocator
type MockIPLocator struct {
	mock.Mock
}

func (m *MockIPLocator) LocateIP(ctx context.Context, ip string) (*geo.Location, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Location), args.Error(1)
}

// MockReverseGeocoder is a mock implementation of geo.ReverseGeocoder
type MockReverseGeocoder struct {
	mock.Mock
}

func (m *MockReverseGeocoder) Reverse(ctx context.Context, lat, lng float64) (*geo.Location, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Location), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(userID, eventType string, data interface{}) error {
	args := m.Called(userID, eventType, data)
	return args.Error(0)
}

// memoryCache is a minimal cache.LocationCache for tests.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]geo.Location
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]geo.Location{}}
}

func (c *memoryCache) Get(key string) (*geo.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return &loc, true
}

func (c *memoryCache) Set(key string, loc *geo.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = *loc
}
