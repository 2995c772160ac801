package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "default", level: ""},
		{name: "debug", level: "debug"},
		{name: "warning alias", level: "warning"},
		{name: "error", level: "error"},
		{name: "invalid", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(Settings{Level: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.log")

	l, err := New(Settings{Level: "info", FilePath: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	l.Info("zone detected")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zone detected")
}

func TestNew_FileSinkRotationBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.log")

	_, err := New(Settings{Level: "info", FilePath: path, MaxSize: 0, MaxBackups: 1, MaxAge: 1})
	assert.Error(t, err)

	_, err = New(Settings{Level: "info", FilePath: path, MaxSize: 10, MaxBackups: 11, MaxAge: 1})
	assert.Error(t, err)
}

func TestL_BeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		L().Info("no-op")
	})
}
