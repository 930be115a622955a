package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integralist/fastly-mutate/internal/config"
	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/testsupport/fastlyapi"
)

const apiKey = "test-key"

func setup(t *testing.T) *fastlyapi.Server {
	t.Helper()

	srv := fastlyapi.New(t, apiKey)
	srv.AddService(fastlyapi.Service{
		ID:   "svc-1",
		Name: "S",
		Versions: []*fastlyapi.Version{
			{Number: 1},
			{Number: 2},
			{
				Number: 3,
				Active: true,
				Backends: map[string]fastlyapi.Backend{
					"main": {Name: "main", Address: "old.example.com", Port: 443, UseSSL: true},
				},
			},
		},
	})

	return srv
}

func execute(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand("test", config.WithEnviron(func() []string { return env }))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		env      []string
		args     func(t *testing.T, srv *fastlyapi.Server) []string
		output   string
		activeV4 bool
	}{
		{
			uc: "backend change is activated",
			args: func(t *testing.T, srv *fastlyapi.Server) []string {
				t.Helper()

				return []string{"-n", "S", "-k", apiKey, "--endpoint", srv.URL(), "--backend", "https://new.example.com"}
			},
			output:   "Activated version 4 of service S (cloned from version 3)\n",
			activeV4: true,
		},
		{
			uc: "clone is left inactive on request",
			args: func(t *testing.T, srv *fastlyapi.Server) []string {
				t.Helper()

				return []string{"--name", "S", "--key", apiKey, "--endpoint", srv.URL(), "--domain", "www.example.com", "--activate=false"}
			},
			output: "Cloned version 4 of service S from version 3 (not activated)\n",
		},
		{
			uc:  "key and service from the environment",
			env: []string{"FASTLY_API_TOKEN=" + apiKey, "FASTLY_SERVICE=S"},
			args: func(t *testing.T, srv *fastlyapi.Server) []string {
				t.Helper()

				return []string{"--endpoint", srv.URL()}
			},
			output:   "Activated version 4 of service S (cloned from version 3)\n",
			activeV4: true,
		},
		{
			uc: "settings from a config file",
			args: func(t *testing.T, srv *fastlyapi.Server) []string {
				t.Helper()

				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(
					"service: S\napi_key: "+apiKey+"\nendpoint: "+srv.URL()+"\nlog_level: off\n"), 0o600))

				return []string{"-c", path, "--backend", "http://new.example.com:8080"}
			},
			output:   "Activated version 4 of service S (cloned from version 3)\n",
			activeV4: true,
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			srv := setup(t)

			output, err := execute(t, tc.env, append(tc.args(t, srv), "--log-level", "off")...)
			require.NoError(t, err)

			assert.Contains(t, output, "SUCCESS")
			assert.Contains(t, output, tc.output)

			v4, ok := srv.Version("svc-1", 4)
			require.True(t, ok)
			assert.Equal(t, tc.activeV4, v4.Active)
			for _, key := range srv.APIKeys() {
				assert.Equal(t, apiKey, key)
			}
		})
	}
}

func TestRootCommandUnknownService(t *testing.T) {
	t.Parallel()

	srv := setup(t)

	output, err := execute(t, nil, "-n", "missing", "-k", apiKey, "--endpoint", srv.URL(), "--log-level", "off")

	var notFound *errorsx.ServiceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "lookup stage failed")
	assert.NotContains(t, err.Error(), "left inactive")
	assert.Empty(t, output)
	assert.Equal(t, 3, srv.VersionCount("svc-1"))
}

func TestRootCommandReportsInactiveClone(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	srv.Fail(fastlyapi.OpUpdateBackend, http.StatusBadRequest, "Invalid backend")

	_, err := execute(t, nil,
		"-n", "S", "-k", apiKey, "--endpoint", srv.URL(), "--log-level", "off",
		"--backend", "https://new.example.com", "--domain", "www.example.com")

	var backendErr *errorsx.BackendUpdateError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, err.Error(), "backend stage failed")
	assert.Contains(t, err.Error(), "(status 400)")
	assert.Contains(t, err.Error(), "Invalid backend")
	assert.Contains(t, err.Error(), "version 4 of service S was left inactive for manual cleanup")
	assert.False(t, srv.Called(fastlyapi.OpCreateDomain))
	assert.False(t, srv.Called(fastlyapi.OpActivateVersion))
}

func TestRootCommandInvalidConfiguration(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		args     []string
		expected []string
	}{
		{
			uc:       "missing name and key",
			expected: []string{"invalid configuration", "service", "api_key"},
		},
		{
			uc:       "cert without backend",
			args:     []string{"-n", "S", "-k", apiKey, "--cert", "./ca.pem"},
			expected: []string{"invalid configuration", "cert"},
		},
		{
			uc:       "invalid backend URL",
			args:     []string{"-n", "S", "-k", apiKey, "--backend", "ftp://origin.example.com"},
			expected: []string{"backend must be an http or https URL"},
		},
		{
			uc:       "unknown log level",
			args:     []string{"-n", "S", "-k", apiKey, "--log-level", "loud"},
			expected: []string{"log_level"},
		},
		{
			uc:       "unexpected argument",
			args:     []string{"-n", "S", "-k", apiKey, "extra"},
			expected: []string{"unknown command"},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			srv := setup(t)

			_, err := execute(t, nil, append(tc.args, "--endpoint", srv.URL())...)
			require.Error(t, err)

			for _, msg := range tc.expected {
				assert.Contains(t, err.Error(), msg)
			}
			assert.Empty(t, srv.Calls())
		})
	}
}

func TestRootCommandVersion(t *testing.T) {
	t.Parallel()

	output, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, output, "test")
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printError(&buf, errors.New("clone stage failed: unable to clone service version"))

	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "clone stage failed: unable to clone service version\n")
}
