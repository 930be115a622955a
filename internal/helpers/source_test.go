package helpers

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

func TestReadSource(t *testing.T) {
	t.Parallel()

	const content = "sub vcl_recv { return(lookup); }\n"

	dir := t.TempDir()
	path := filepath.Join(dir, "main.vcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main.vcl" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)

	for _, tc := range []struct {
		uc       string
		location string
		err      string
	}{
		{uc: "plain path", location: path},
		{uc: "file URI", location: "file://" + path},
		{uc: "file URI with localhost", location: "file://localhost" + path},
		{uc: "relative file URI", location: "file://relative/main.vcl", err: `host "relative" is not local`},
		{uc: "http URL", location: srv.URL + "/main.vcl"},
		{uc: "missing file", location: filepath.Join(dir, "missing.vcl"), err: "unable to read"},
		{uc: "missing file URI", location: "file://" + filepath.Join(dir, "missing.vcl"), err: "unable to read"},
		{uc: "remote not found", location: srv.URL + "/missing.vcl", err: "unsuccessful status code: 404"},
		{uc: "empty location", location: "  ", err: "no source location given"},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			got, err := ReadSource(context.Background(), srv.Client(), tc.location)
			if tc.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestReadSourceWithoutClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	t.Cleanup(srv.Close)

	got, err := ReadSource(context.Background(), nil, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "remote", got)
}
