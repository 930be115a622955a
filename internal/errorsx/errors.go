package errorsx

import (
	"fmt"
	"reflect"

	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// ServiceNotFoundError indicates the service (or requested version) does not exist.
type ServiceNotFoundError struct {
	*StageError
}

func (e *ServiceNotFoundError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

// NewServiceNotFound returns a ServiceNotFoundError for the given service.
func NewServiceNotFound(service string, format string, args ...any) error {
	return &ServiceNotFoundError{&StageError{
		Stage:   enums.Lookup,
		Service: service,
		Message: fmt.Sprintf(format, args...),
	}}
}

// ServiceLookupError indicates the service could not be looked up at all
// (e.g. invalid API key or an API outage).
type ServiceLookupError struct {
	*StageError
}

func (e *ServiceLookupError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

type CloneError struct {
	*StageError
}

func (e *CloneError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

type VCLUploadError struct {
	*StageError
}

func (e *VCLUploadError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

type BackendUpdateError struct {
	*StageError
}

func (e *BackendUpdateError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

type DomainUpdateError struct {
	*StageError
}

func (e *DomainUpdateError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}

type ActivationError struct {
	*StageError
}

func (e *ActivationError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}
