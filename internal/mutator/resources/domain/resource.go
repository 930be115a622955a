package domain

import (
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/interfaces"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// NewResource returns a new resource entity.
//
// A nil domain means no domain was requested and the resource has no changes.
func NewResource(domain *models.Domain) interfaces.Resource {
	r := &Resource{}
	if domain != nil {
		r.Data = *domain
		r.Changed = r.Data.Name != ""
	}
	return r
}

// Resource represents a Fastly domain entity.
type Resource struct {
	// Data is the domain to add.
	Data models.Domain
	// Changed indicates if the resource has changes.
	Changed bool
}

// GetType returns the pipeline stage the resource is applied in.
func (r *Resource) GetType() enums.Stage {
	return enums.Domain
}

// HasChanges indicates if the nested resource contains changes to apply.
func (r *Resource) HasChanges() bool {
	return r.Changed
}
