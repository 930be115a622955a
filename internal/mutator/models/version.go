package models

// Version is a snapshot of a service version's identity and state.
type Version struct {
	// Number is the service version number.
	Number int32
	// Active indicates the version is serving live traffic.
	Active bool
}
