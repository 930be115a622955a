package vcl

import (
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/interfaces"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// NewResource returns a new resource entity.
//
// A nil vcl means no VCL was requested and the resource has no changes.
func NewResource(vcl *models.VCL) interfaces.Resource {
	r := &Resource{}
	if vcl != nil {
		r.Data = *vcl
		if r.Data.Name == "" {
			r.Data.Name = models.DefaultVCLName
		}
		r.Changed = r.Data.Location != ""
	}
	return r
}

// Resource represents a Fastly custom VCL entity.
type Resource struct {
	// Data is the VCL to upload.
	Data models.VCL
	// Changed indicates if the resource has changes.
	Changed bool
}

// GetType returns the pipeline stage the resource is applied in.
func (r *Resource) GetType() enums.Stage {
	return enums.VCL
}

// HasChanges indicates if the nested resource contains changes to apply.
func (r *Resource) HasChanges() bool {
	return r.Changed
}
