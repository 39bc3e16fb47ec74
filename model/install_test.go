package model

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extui/api"
)

func TestValidateInstallInput(t *testing.T) {
	tests := []struct {
		name        string
		repoURL     string
		archivePath string
		wantErr     error
	}{
		{
			name:    "neither source",
			wantErr: ErrNoInstallSource,
		},
		{
			name:        "both sources",
			repoURL:     "https://github.com/a/alpha",
			archivePath: "/tmp/alpha.zip",
			wantErr:     ErrBothInstallSources,
		},
		{
			name:    "url only",
			repoURL: "https://github.com/a/alpha",
		},
		{
			name:        "archive only",
			archivePath: "/tmp/alpha.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstallInput(tt.repoURL, tt.archivePath)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInstall_ValidationFailureNeverContactsHost(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"status":"ok","message":"","data":[]}`))
	}))
	defer server.Close()

	app := NewApp(api.NewClient(server.URL), nil)

	cmd, err := app.Install("", "")
	assert.ErrorIs(t, err, ErrNoInstallSource)
	assert.Nil(t, cmd)

	cmd, err = app.Install("https://github.com/a/alpha", "/tmp/alpha.zip")
	assert.ErrorIs(t, err, ErrBothInstallSources)
	assert.Nil(t, cmd)

	assert.Equal(t, int64(0), requests.Load())
}

func TestInstall_FromURLDeliversResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/extension/install", r.URL.Path)
		w.Write([]byte(`{"status":"ok","message":"installed alpha","data":[{"name":"alpha","repo":"https://github.com/a/alpha"}]}`))
	}))
	defer server.Close()

	app := NewApp(api.NewClient(server.URL), nil)

	cmd, err := app.Install("https://github.com/a/alpha", "")
	require.NoError(t, err)
	require.NotNil(t, cmd)

	msg, ok := cmd().(InstallCompleteMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "installed alpha", msg.Message)
	require.Len(t, msg.Extensions, 1)
	assert.Equal(t, "alpha", msg.Extensions[0].Name)
}

func TestInstall_ServiceErrorSurfacesInMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"clone failed: repository not found","data":null}`))
	}))
	defer server.Close()

	app := NewApp(api.NewClient(server.URL), nil)

	cmd, err := app.Install("https://github.com/a/missing", "")
	require.NoError(t, err)

	msg, ok := cmd().(InstallCompleteMsg)
	require.True(t, ok)
	require.Error(t, msg.Err)

	var svcErr *api.ServiceError
	require.ErrorAs(t, msg.Err, &svcErr)
	assert.Equal(t, "clone failed: repository not found", svcErr.Message)
}
