package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("artifact bytes"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "artifact")
	client := NewClient(srv.Client())

	require.NoError(t, client.ToFile(context.Background(), srv.URL, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "artifact bytes", string(data))
}

func TestToFile_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "artifact")
	err := NewClient(srv.Client()).ToFile(context.Background(), srv.URL, dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestToFile_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	dst := filepath.Join(t.TempDir(), "artifact")
	err := NewClient(nil).ToFile(context.Background(), srv.URL, dst)
	require.Error(t, err)
}

func TestToFile_BadDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	err := NewClient(srv.Client()).ToFile(context.Background(), srv.URL,
		filepath.Join(t.TempDir(), "no-such-dir", "artifact"))
	require.Error(t, err)
}

func TestToFile_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.Client()).ToFile(ctx, srv.URL, filepath.Join(t.TempDir(), "artifact"))
	require.Error(t, err)
}
