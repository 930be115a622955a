package models

// Domain is a domain the service responds to.
type Domain struct {
	// Comment is an optional comment about the domain.
	Comment string
	// Name is the domain that this service will respond to.
	Name string
}
