package helpers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fastly/fastly-go/fastly"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	// APIKeyEnv is the environment variable used by the wider Fastly tooling.
	// It is consulted when no API key was configured explicitly.
	APIKeyEnv = "FASTLY_API_TOKEN"
	// DefaultEndpoint is the Fastly Management API base URL.
	DefaultEndpoint = "https://api.fastly.com"

	// apiKeyScheme is the security scheme name the Fastly OpenAPI definition
	// uses for the `Fastly-Key` header.
	apiKeyScheme = "token"
)

// API is a simple helper for avoiding passing large service model data structure.
type API struct {
	Client    *fastly.APIClient
	ClientCtx context.Context
	// HTTPClient is the client the API uses.
	// It is shared with any non-API fetches (e.g. remote VCL sources).
	HTTPClient *http.Client
}

// ClientConfig is the per-run configuration for the Fastly API client.
type ClientConfig struct {
	// APIKey authenticates every request. It must never be logged.
	APIKey string
	// Endpoint overrides DefaultEndpoint (e.g. for tests).
	Endpoint string
	// Timeout is the overall timeout for a single HTTP request (0 means none).
	Timeout time.Duration
	// UserAgent is sent with every API request.
	UserAgent string
}

// NewAPI returns a Fastly API client whose context carries the API key.
//
// NOTE: The key lives in the returned API value rather than in a global or
// an environment lookup, so each run is explicit about which credentials it uses.
func NewAPI(ctx context.Context, c ClientConfig) API {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = c.Timeout

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	cfg := fastly.NewConfiguration()
	cfg.HTTPClient = httpClient
	cfg.Servers = fastly.ServerConfigurations{
		{URL: strings.TrimSuffix(endpoint, "/")},
	}
	// Operation specific servers would bypass the endpoint override.
	cfg.OperationServers = map[string]fastly.ServerConfigurations{}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}

	clientCtx := context.WithValue(ctx, fastly.ContextAPIKeys, map[string]fastly.APIKey{
		apiKeyScheme: {Key: c.APIKey},
	})

	return API{
		Client:     fastly.NewAPIClient(cfg),
		ClientCtx:  clientCtx,
		HTTPClient: httpClient,
	}
}
