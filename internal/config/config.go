package config

import (
	"time"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/logging"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// Config is the complete configuration of a single run.
//
// Values are layered: defaults, then the YAML config file, then FASTLY_*
// environment variables, then command line flags.
type Config struct {
	// Service is the name or ID of the service to mutate.
	Service string `koanf:"service" validate:"required"`
	// APIKey authenticates against the Fastly API.
	APIKey string `koanf:"api_key" validate:"required"`
	// APIToken is the FASTLY_API_TOKEN fallback for APIKey.
	APIToken string `koanf:"api_token"`

	VCL     string `koanf:"vcl"`
	VCLName string `koanf:"vcl_name" validate:"required"`

	Backend      string `koanf:"backend" validate:"omitempty,backendurl"`
	BackendName  string `koanf:"backend_name" validate:"required"`
	Cert         string `koanf:"cert" validate:"excluded_without=Backend"`
	CertHostname string `koanf:"cert_hostname" validate:"omitempty,hostname_rfc1123,excluded_without=Backend"`

	Domain        string `koanf:"domain" validate:"omitempty,fqdn"`
	DomainComment string `koanf:"domain_comment" validate:"excluded_without=Domain"`

	// FromVersion overrides the clone source version (0 means resolve it).
	FromVersion int32 `koanf:"from_version" validate:"gte=0"`
	// Activate controls whether the cloned version is activated.
	Activate bool `koanf:"activate"`

	Endpoint string        `koanf:"endpoint" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"gte=0"`
	LogLevel string        `koanf:"log_level" validate:"oneof=trace debug info warn error off"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		VCLName:     models.DefaultVCLName,
		BackendName: models.DefaultBackendName,
		Activate:    true,
		Endpoint:    helpers.DefaultEndpoint,
		Timeout:     60 * time.Second,
		LogLevel:    logging.DefaultLevel,
	}
}

// Request converts the configuration into the mutations of a run.
func (c *Config) Request() (models.MutationRequest, error) {
	request := models.MutationRequest{
		Service:     c.Service,
		FromVersion: c.FromVersion,
		Activate:    c.Activate,
	}

	if c.VCL != "" {
		request.VCL = &models.VCL{
			Location: c.VCL,
			Name:     c.VCLName,
		}
	}

	if c.Backend != "" {
		backend, err := models.ParseBackend(c.Backend)
		if err != nil {
			return models.MutationRequest{}, err
		}
		backend.Name = c.BackendName
		backend.CACert = c.Cert
		if c.CertHostname != "" {
			backend.SSLCertHostname = c.CertHostname
		}
		request.Backend = &backend
	}

	if c.Domain != "" {
		request.Domain = &models.Domain{
			Name:    c.Domain,
			Comment: c.DomainComment,
		}
	}

	return request, nil
}

// ClientConfig returns the Fastly API client settings.
func (c *Config) ClientConfig(userAgent string) helpers.ClientConfig {
	return helpers.ClientConfig{
		APIKey:    c.APIKey,
		Endpoint:  c.Endpoint,
		Timeout:   c.Timeout,
		UserAgent: userAgent,
	}
}
