package enums

// Stage is an enum for the steps of a version mutation run.
type Stage int

const (
	// Undefined is the zero value and never a real stage.
	Undefined Stage = iota
	// Lookup resolves the service and the version to clone from.
	Lookup
	// Clone copies the source version into a new inactive version.
	Clone
	// VCL uploads custom VCL to the cloned version.
	VCL
	// Backend creates or updates a backend on the cloned version.
	Backend
	// Domain adds a domain to the cloned version.
	Domain
	// Activate makes the cloned version the live version.
	Activate
)

// String implements the Stringer interface.
// The values are used in error messages and log fields.
func (s Stage) String() string {
	switch s {
	case Lookup:
		return "lookup"
	case Clone:
		return "clone"
	case VCL:
		return "vcl"
	case Backend:
		return "backend"
	case Domain:
		return "domain"
	case Activate:
		return "activate"
	case Undefined:
		return "undefined"
	}
	return "unknown"
}
