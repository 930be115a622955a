package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultBackendName is the name the backend is stored under.
	DefaultBackendName = "main"
	// DefaultFirstByteTimeout is how long (ms) to wait for the first byte from the backend.
	DefaultFirstByteTimeout int32 = 30000
)

// Backend describes an origin server for the service.
type Backend struct {
	// Address is the hostname or IP of the backend.
	Address string
	// CACert is the location of a CA certificate used to verify the backend.
	CACert string
	// FirstByteTimeout is how long (ms) to wait for the first byte.
	FirstByteTimeout int32
	// Name is the backend object name on the service version.
	Name string
	// Port is the port the backend listens on.
	Port int32
	// SSLCertHostname is the hostname the backend certificate is verified against.
	SSLCertHostname string
	// SSLSNIHostname is the hostname sent in the TLS SNI extension.
	SSLSNIHostname string
	// UseSSL indicates the connection to the backend uses TLS.
	UseSSL bool
}

// ParseBackend converts a backend URL into backend settings.
//
// An https URL implies TLS on port 443 with the URL host used for both
// certificate verification and SNI. An http URL implies port 80.
// An explicit port in the URL always wins.
func ParseBackend(rawURL string) (Backend, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Backend{}, fmt.Errorf("invalid backend URL: %w", err)
	}

	b := Backend{
		Address:          u.Hostname(),
		FirstByteTimeout: DefaultFirstByteTimeout,
		Name:             DefaultBackendName,
	}

	switch u.Scheme {
	case "https":
		b.Port = 443
		b.UseSSL = true
		b.SSLCertHostname = b.Address
		b.SSLSNIHostname = b.Address
	case "http":
		b.Port = 80
	default:
		return Backend{}, fmt.Errorf("backend URL %q must use the http or https scheme", rawURL)
	}

	if b.Address == "" {
		return Backend{}, fmt.Errorf("backend URL %q has no host", rawURL)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.User != nil {
		return Backend{}, errors.New("backend URL must only contain a scheme, host and optional port")
	}

	if p := u.Port(); p != "" {
		port, err := strconv.ParseInt(p, 10, 32)
		if err != nil || port < 1 || port > 65535 {
			return Backend{}, fmt.Errorf("backend URL %q has an invalid port", rawURL)
		}
		b.Port = int32(port)
	}

	return b, nil
}
