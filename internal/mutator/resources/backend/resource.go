package backend

import (
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/interfaces"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// NewResource returns a new resource entity.
//
// A nil backend means no backend was requested and the resource has no changes.
func NewResource(backend *models.Backend) interfaces.Resource {
	r := &Resource{}
	if backend != nil {
		r.Data = *backend
		if r.Data.Name == "" {
			r.Data.Name = models.DefaultBackendName
		}
		r.Changed = r.Data.Address != ""
	}
	return r
}

// Resource represents a Fastly backend entity.
type Resource struct {
	// Data is the backend to create or update.
	Data models.Backend
	// Changed indicates if the resource has changes.
	Changed bool
}

// GetType returns the pipeline stage the resource is applied in.
func (r *Resource) GetType() enums.Stage {
	return enums.Backend
}

// HasChanges indicates if the nested resource contains changes to apply.
func (r *Resource) HasChanges() bool {
	return r.Changed
}
