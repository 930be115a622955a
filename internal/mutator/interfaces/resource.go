package interfaces

import (
	"context"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// Resource represents an entity nested within a service version that has an
// associated Fastly API endpoint (e.g. VCL, backend, domain).
type Resource interface {
	// GetType returns the pipeline stage the resource is applied in.
	GetType() enums.Stage
	// HasChanges indicates if the nested resource contains changes to apply.
	HasChanges() bool
	// Update applies the changes to the service version in serviceData.
	//
	// NOTE: The CRUD boundaries are blurred due to Fastly's API model.
	// Update creates the entity when it doesn't yet exist on the version.
	Update(ctx context.Context, api helpers.API, serviceData *helpers.Service) error
}
