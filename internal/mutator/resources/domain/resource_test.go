package domain

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
	"github.com/integralist/fastly-mutate/internal/testsupport/fastlyapi"
)

const apiKey = "test-key"

func setup(t *testing.T, domains map[string]fastlyapi.Domain) (*fastlyapi.Server, helpers.API, *helpers.Service) {
	t.Helper()

	srv := fastlyapi.New(t, apiKey)
	srv.AddService(fastlyapi.Service{
		ID:   "svc-1",
		Name: "example",
		Versions: []*fastlyapi.Version{
			{Number: 1, Active: true, Domains: domains},
			{Number: 2, Domains: domains},
		},
	})

	api := helpers.NewAPI(context.Background(), helpers.ClientConfig{APIKey: apiKey, Endpoint: srv.URL()})

	return srv, api, &helpers.Service{ID: "svc-1", Name: "example", Version: 2}
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	r := NewResource(nil)
	assert.False(t, r.HasChanges())
	assert.Equal(t, enums.Domain, r.GetType())

	assert.True(t, NewResource(&models.Domain{Name: "www.example.com"}).HasChanges())
	assert.False(t, NewResource(&models.Domain{}).HasChanges())
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		existing map[string]fastlyapi.Domain
		domain   models.Domain
		calls    []string
		expected fastlyapi.Domain
	}{
		{
			uc:       "new domain is created",
			domain:   models.Domain{Name: "www.example.com"},
			calls:    []string{fastlyapi.OpListDomains, fastlyapi.OpCreateDomain},
			expected: fastlyapi.Domain{Name: "www.example.com"},
		},
		{
			uc:       "new domain with comment",
			domain:   models.Domain{Name: "www.example.com", Comment: "primary"},
			calls:    []string{fastlyapi.OpListDomains, fastlyapi.OpCreateDomain},
			expected: fastlyapi.Domain{Name: "www.example.com", Comment: "primary"},
		},
		{
			uc:       "existing domain is left alone",
			existing: map[string]fastlyapi.Domain{"www.example.com": {Name: "www.example.com", Comment: "kept"}},
			domain:   models.Domain{Name: "www.example.com"},
			calls:    []string{fastlyapi.OpListDomains},
			expected: fastlyapi.Domain{Name: "www.example.com", Comment: "kept"},
		},
		{
			uc:       "existing domain with the same comment",
			existing: map[string]fastlyapi.Domain{"www.example.com": {Name: "www.example.com", Comment: "kept"}},
			domain:   models.Domain{Name: "www.example.com", Comment: "kept"},
			calls:    []string{fastlyapi.OpListDomains},
			expected: fastlyapi.Domain{Name: "www.example.com", Comment: "kept"},
		},
		{
			uc:       "existing domain gets a new comment",
			existing: map[string]fastlyapi.Domain{"www.example.com": {Name: "www.example.com", Comment: "old"}},
			domain:   models.Domain{Name: "www.example.com", Comment: "new"},
			calls:    []string{fastlyapi.OpListDomains, fastlyapi.OpUpdateDomain},
			expected: fastlyapi.Domain{Name: "www.example.com", Comment: "new"},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			srv, api, serviceData := setup(t, tc.existing)

			r := NewResource(&tc.domain)
			require.NoError(t, r.Update(context.Background(), api, serviceData))
			assert.False(t, r.HasChanges())

			version, _ := srv.Version("svc-1", 2)
			assert.Equal(t, tc.expected, version.Domains[tc.domain.Name])
			assert.Equal(t, tc.calls, srv.Calls())
		})
	}
}

func TestUpdateRejected(t *testing.T) {
	t.Parallel()

	srv, api, serviceData := setup(t, nil)
	srv.Fail(fastlyapi.OpCreateDomain, http.StatusBadRequest, "Domain already taken by another customer")

	err := NewResource(&models.Domain{Name: "www.example.com"}).Update(context.Background(), api, serviceData)

	var domainErr *errorsx.DomainUpdateError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.StatusCode)
	assert.Contains(t, err.Error(), "Domain already taken by another customer")
}

func TestUpdateListFailure(t *testing.T) {
	t.Parallel()

	srv, api, serviceData := setup(t, nil)
	srv.Fail(fastlyapi.OpListDomains, http.StatusInternalServerError, "Internal error")

	err := NewResource(&models.Domain{Name: "www.example.com"}).Update(context.Background(), api, serviceData)

	var domainErr *errorsx.DomainUpdateError
	require.ErrorAs(t, err, &domainErr)
	assert.NotContains(t, srv.Calls(), fastlyapi.OpCreateDomain)
}
