package flags

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/integralist/fastly-mutate/internal/config"
	"github.com/integralist/fastly-mutate/internal/logging"
)

const (
	Config        = "config"
	Service       = "name"
	APIKey        = "key"
	VCL           = "vcl"
	VCLName       = "vcl-name"
	Backend       = "backend"
	BackendName   = "backend-name"
	Cert          = "cert"
	CertHostname  = "cert-hostname"
	Domain        = "domain"
	DomainComment = "domain-comment"
	FromVersion   = "from-version"
	Activate      = "activate"
	Endpoint      = "endpoint"
	Timeout       = "timeout"
	LogLevel      = "log-level"
)

// configKeys maps each flag onto the config key it overrides.
var configKeys = map[string]string{ //nolint:gochecknoglobals
	Service:       "service",
	APIKey:        "api_key",
	VCL:           "vcl",
	VCLName:       "vcl_name",
	Backend:       "backend",
	BackendName:   "backend_name",
	Cert:          "cert",
	CertHostname:  "cert_hostname",
	Domain:        "domain",
	DomainComment: "domain_comment",
	FromVersion:   "from_version",
	Activate:      "activate",
	Endpoint:      "endpoint",
	Timeout:       "timeout",
	LogLevel:      "log_level",
}

// Register adds every flag to fs.
func Register(fs *pflag.FlagSet) {
	defaults := config.Default()

	fs.StringP(Config, "c", "", "Path to a YAML configuration file.")
	fs.StringP(Service, "n", "", "Name or ID of the service to mutate (required).")
	fs.StringP(APIKey, "k", "", "Fastly API key (required).\nFalls back to $FASTLY_API_KEY and then $FASTLY_API_TOKEN.")
	fs.String(VCL, "", "Location of the VCL to upload.\nA local path, a file:// URI or an http(s):// URL.")
	fs.String(VCLName, defaults.VCLName, "Name the VCL is stored under.")
	fs.String(Backend, "", "Backend URL to set, e.g. https://origin.example.com:8443.")
	fs.String(BackendName, defaults.BackendName, "Name the backend is stored under.")
	fs.String(Cert, "", "Location of a CA certificate used to verify the backend.\nRequires --"+Backend+".")
	fs.String(CertHostname, "", "Hostname the backend certificate is verified against.\nDefaults to the backend URL host.")
	fs.String(Domain, "", "Domain to add to the service.")
	fs.String(DomainComment, "", "Comment stored with the domain.\nRequires --"+Domain+".")
	fs.Int32(FromVersion, 0, "Version to clone instead of the active (or latest) version.")
	fs.Bool(Activate, defaults.Activate, "Activate the cloned version.\nUse --"+Activate+"=false to leave it inactive for review.")
	fs.String(Endpoint, defaults.Endpoint, "Fastly API endpoint.")
	fs.Duration(Timeout, defaults.Timeout, "Timeout for each HTTP request.")
	fs.String(LogLevel, defaults.LogLevel, "Log level, one of: "+strings.Join(logging.Levels, ", ")+".")
}

// Overrides returns the config values of the flags explicitly set on fs.
func Overrides(fs *pflag.FlagSet) map[string]any {
	overrides := map[string]any{}

	fs.Visit(func(f *pflag.Flag) {
		if key, ok := configKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})

	return overrides
}
