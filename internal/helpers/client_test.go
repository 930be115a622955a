package helpers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/testsupport/fastlyapi"
)

func TestNewAPI(t *testing.T) {
	t.Parallel()

	srv := fastlyapi.New(t, "secret")
	srv.AddService(fastlyapi.Service{ID: "123", Name: "example"})

	api := helpers.NewAPI(context.Background(), helpers.ClientConfig{
		APIKey:    "secret",
		Endpoint:  srv.URL() + "/",
		Timeout:   5 * time.Second,
		UserAgent: "fastly-mutate/test",
	})

	assert.Equal(t, 5*time.Second, api.HTTPClient.Timeout)

	services, httpResp, err := api.Client.ServiceAPI.ListServices(api.ClientCtx).Execute()
	require.NoError(t, err)
	defer httpResp.Body.Close()

	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	require.Len(t, services, 1)
	assert.Equal(t, "example", services[0].GetName())
	assert.Equal(t, []string{"secret"}, srv.APIKeys())
}

func TestNewAPIWrongKey(t *testing.T) {
	t.Parallel()

	srv := fastlyapi.New(t, "secret")

	api := helpers.NewAPI(context.Background(), helpers.ClientConfig{
		APIKey:   "wrong",
		Endpoint: srv.URL(),
	})

	_, httpResp, err := api.Client.ServiceAPI.ListServices(api.ClientCtx).Execute()
	require.Error(t, err)
	require.NotNil(t, httpResp)
	assert.Equal(t, http.StatusUnauthorized, httpResp.StatusCode)

	status, body := helpers.APIFailure(httpResp, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Provided credentials are missing or invalid")
}

func TestNewAPIDefaultEndpoint(t *testing.T) {
	t.Parallel()

	api := helpers.NewAPI(context.Background(), helpers.ClientConfig{APIKey: "secret"})

	url, err := api.Client.GetConfig().ServerURLWithContext(api.ClientCtx, "ServiceAPIService.ListServices")
	require.NoError(t, err)
	assert.Equal(t, helpers.DefaultEndpoint, url)
}
