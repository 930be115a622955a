package models

// MutationRequest describes one run: which service to change and how.
//
// It is built once from configuration and consumed by a single run.
type MutationRequest struct {
	// Service is the service name or ID.
	Service string
	// FromVersion, when non-zero, overrides the clone source version.
	FromVersion int32
	// VCL is the custom VCL to upload (nil when not requested).
	VCL *VCL
	// Backend is the backend to create or update (nil when not requested).
	Backend *Backend
	// Domain is the domain to add (nil when not requested).
	Domain *Domain
	// Activate controls whether the cloned version is activated.
	Activate bool
}

// HasMutations reports whether the request changes anything on the clone.
func (r MutationRequest) HasMutations() bool {
	return r.VCL != nil || r.Backend != nil || r.Domain != nil
}
