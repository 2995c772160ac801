package db

import (
	"context"
	"testing"

	"sage-portal/confs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		settings confs.Settings
		want     string
	}{
		{
			name:     "url without sslmode",
			settings: confs.Settings{DBURL: "postgres://u:p@db.example.com:5432/portal"},
			want:     "postgres://u:p@db.example.com:5432/portal?sslmode=require",
		},
		{
			name:     "url with query",
			settings: confs.Settings{DBURL: "postgres://u:p@db/portal?connect_timeout=5"},
			want:     "postgres://u:p@db/portal?connect_timeout=5&sslmode=require",
		},
		{
			name:     "url keeps explicit sslmode",
			settings: confs.Settings{DBURL: "postgres://u:p@localhost/portal?sslmode=disable"},
			want:     "postgres://u:p@localhost/portal?sslmode=disable",
		},
		{
			name:     "local parameters",
			settings: confs.Settings{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "portal"},
			want:     "host=localhost user=u password=p dbname=portal port=5432 sslmode=disable TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostgresDSN(&tt.settings))
		})
	}
}

func TestOpenSQLite_MigratesAndPings(t *testing.T) {
	database, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.True(t, database.GetDB().Migrator().HasTable("profiles"))
	assert.True(t, database.GetDB().Migrator().HasTable("blog_posts"))
	assert.NoError(t, database.Ping(context.Background()))
}
