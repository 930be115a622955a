package fastlyapi

import "maps"

// Service is a service held by the fake API.
type Service struct {
	ID   string
	Name string
	// Type defaults to "vcl".
	Type     string
	Deleted  bool
	Versions []*Version
}

// Version is a service version held by the fake API.
type Version struct {
	Number int32
	Active bool
	// Locked versions reject every change. Activation locks a version.
	Locked   bool
	VCLs     map[string]VCL
	Backends map[string]Backend
	Domains  map[string]Domain
}

// VCL is a custom VCL file.
type VCL struct {
	Name    string
	Content string
	Main    bool
}

// Backend is a backend definition.
type Backend struct {
	Name             string
	Address          string
	Port             int32
	UseSSL           bool
	SSLCertHostname  string
	SSLSNIHostname   string
	SSLCACert        string
	SSLCheckCert     bool
	FirstByteTimeout int32
}

// Domain is a domain definition.
type Domain struct {
	Name    string
	Comment string
}

// Copy returns a deep copy of the version.
func (v *Version) Copy() *Version {
	c := *v
	c.VCLs = maps.Clone(v.VCLs)
	c.Backends = maps.Clone(v.Backends)
	c.Domains = maps.Clone(v.Domains)
	if c.VCLs == nil {
		c.VCLs = map[string]VCL{}
	}
	if c.Backends == nil {
		c.Backends = map[string]Backend{}
	}
	if c.Domains == nil {
		c.Domains = map[string]Domain{}
	}
	return &c
}

// Content returns the version's sub-resources, ignoring its number and status.
// Two versions with equal Content are identical configurations.
func (v *Version) Content() Version {
	c := v.Copy()
	return Version{VCLs: c.VCLs, Backends: c.Backends, Domains: c.Domains}
}
