package helpers

// Service is a wrapper around top-level resource service data.
type Service struct {
	// ID is the ID for the Fastly service.
	ID string
	// Name is the name for the Fastly service.
	Name string
	// Version is the service version nested resources operate on.
	//
	// During a run this is the cloned version, never the active one.
	Version int32
}

// ServiceType is the kind of service as reported by the API.
type ServiceType string

const (
	// ServiceTypeVCL is a VCL service, the only kind a run can mutate.
	ServiceTypeVCL ServiceType = "vcl"
	// ServiceTypeWasm is a Compute service.
	ServiceTypeWasm ServiceType = "wasm"
)
