package confs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Port:           "3536",
		DBDriver:       DBDriverSQLite,
		SQLitePath:     ":memory:",
		JWTSecret:      "0123456789abcdef0123",
		JWTExpiryHours: 24,
		GeoIPURL:       "https://ipapi.co",
		GeoReverseURL:  "https://api.bigdatacloud.net/data/reverse-geocode-client",
		StorageDir:     "./uploads",
		LogLevel:       "info",
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(s *Settings)
		expectedError bool
	}{
		{name: "valid sqlite", mutate: func(s *Settings) {}},
		{
			name: "valid postgres url",
			mutate: func(s *Settings) {
				s.DBDriver = DBDriverPostgres
				s.DBURL = "postgres://u:p@db:5432/portal"
			},
		},
		{
			name: "postgres without connection info",
			mutate: func(s *Settings) {
				s.DBDriver = DBDriverPostgres
			},
			expectedError: true,
		},
		{name: "unknown driver", mutate: func(s *Settings) { s.DBDriver = "mysql" }, expectedError: true},
		{name: "short jwt secret", mutate: func(s *Settings) { s.JWTSecret = "short" }, expectedError: true},
		{name: "missing jwt secret", mutate: func(s *Settings) { s.JWTSecret = "" }, expectedError: true},
		{name: "non numeric port", mutate: func(s *Settings) { s.Port = "http" }, expectedError: true},
		{name: "bad geo url", mutate: func(s *Settings) { s.GeoIPURL = "not a url" }, expectedError: true},
		{name: "bad log level", mutate: func(s *Settings) { s.LogLevel = "chatty" }, expectedError: true},
		{name: "sqlite without path", mutate: func(s *Settings) { s.SQLitePath = "" }, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "GEO_TIMEOUT_SECONDS", "GEO_CACHE_TTL_MINUTES", "KEEPALIVE_INTERVAL_MINUTES", "JWT_EXPIRY_HOURS"} {
		t.Setenv(key, "")
	}

	s := FromEnv()
	assert.Equal(t, "3536", s.Port)
	assert.Equal(t, DBDriverPostgres, s.DBDriver)
	assert.Equal(t, 10*time.Second, s.GeoTimeout)
	assert.Equal(t, 5*time.Minute, s.GeoCacheTTL)
	assert.Equal(t, 10*time.Minute, s.KeepAliveEvery)
	assert.Equal(t, 24*time.Hour, s.JWTExpiry())
	assert.Equal(t, "0.0.0.0:3536", s.Addr())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/portal.db")
	t.Setenv("JWT_SECRET", "a-very-long-secret-value")
	t.Setenv("GEO_CACHE_TTL_MINUTES", "1")
	t.Setenv("REDIS_DB", "oops")

	s := FromEnv()
	require.NoError(t, s.Validate())
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, time.Minute, s.GeoCacheTTL)
	assert.Equal(t, 0, s.RedisDB)
}
