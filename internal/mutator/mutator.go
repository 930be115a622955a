package mutator

import (
	"context"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/interfaces"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
	"github.com/integralist/fastly-mutate/internal/mutator/resources/backend"
	"github.com/integralist/fastly-mutate/internal/mutator/resources/domain"
	"github.com/integralist/fastly-mutate/internal/mutator/resources/service"
	"github.com/integralist/fastly-mutate/internal/mutator/resources/vcl"
)

// Result describes what a run did to the service.
type Result struct {
	// ServiceID is the ID of the service the run resolved.
	ServiceID string
	// ServiceName is the name of the service the run resolved.
	ServiceName string
	// SourceVersion is the version that was cloned.
	SourceVersion int32
	// ClonedVersion is the version created by the run (0 if nothing was cloned).
	ClonedVersion int32
	// Applied lists the mutation stages that completed, in order.
	Applied []enums.Stage
	// Activated indicates the cloned version is now the active version.
	Activated bool
}

// stage is one step of the pipeline.
// A stage returning an error stops the pipeline.
type stage func(ctx context.Context, r *run) error

// run is the state threaded through the stages of a single invocation.
type run struct {
	api     helpers.API
	request models.MutationRequest
	service *helpers.Service
	result  Result
}

// Run clones the service's source version, applies the requested mutations
// to the clone and then activates it.
//
// The Result accumulated so far is returned alongside any error, so callers
// can report the cloned version that was left inactive.
func Run(ctx context.Context, api helpers.API, request models.MutationRequest) (Result, error) {
	r := &run{
		api:     api,
		request: request,
	}

	ctx = tflog.SetField(ctx, "service", request.Service)

	if !request.HasMutations() {
		tflog.Warn(ctx, "No mutations requested, the cloned version will be an unmodified copy")
	}

	stages := []stage{
		lookup,
		clone,
		mutate,
		activate,
	}

	for _, s := range stages {
		if err := s(ctx, r); err != nil {
			tflog.Debug(ctx, "Run stopped", map[string]any{"error": err.Error()})
			return r.result, err
		}
	}

	tflog.Info(ctx, "Run", map[string]any{
		"service_id":     r.result.ServiceID,
		"source_version": r.result.SourceVersion,
		"cloned_version": r.result.ClonedVersion,
		"activated":      r.result.Activated,
	})

	return r.result, nil
}

func lookup(ctx context.Context, r *run) error {
	serviceData, versions, err := service.Lookup(ctx, r.api, r.request.Service)
	if err != nil {
		return err
	}

	source, err := service.ResolveSourceVersion(versions, r.request.FromVersion)
	if err != nil {
		return errorsx.NewServiceNotFound(serviceData.Name, "%s", err)
	}

	serviceData.Version = source
	r.service = serviceData
	r.result.ServiceID = serviceData.ID
	r.result.ServiceName = serviceData.Name
	r.result.SourceVersion = source

	return nil
}

func clone(ctx context.Context, r *run) error {
	version, err := service.Clone(ctx, r.api, r.service)
	if err != nil {
		return err
	}

	// Every later stage operates on the clone.
	r.service.Version = version
	r.result.ClonedVersion = version

	return nil
}

// mutate applies the nested resources in a fixed order, stopping at the first failure.
func mutate(ctx context.Context, r *run) error {
	nestedResources := []interfaces.Resource{
		vcl.NewResource(r.request.VCL),
		backend.NewResource(r.request.Backend),
		domain.NewResource(r.request.Domain),
	}

	for _, nestedResource := range nestedResources {
		if !nestedResource.HasChanges() {
			continue
		}
		if err := nestedResource.Update(ctx, r.api, r.service); err != nil {
			return err
		}
		r.result.Applied = append(r.result.Applied, nestedResource.GetType())
	}

	return nil
}

func activate(ctx context.Context, r *run) error {
	if !r.request.Activate {
		tflog.Info(ctx, "Activation skipped", map[string]any{"version": r.service.Version})
		return nil
	}

	if err := service.Activate(ctx, r.api, r.service); err != nil {
		return err
	}
	r.result.Activated = true

	return nil
}
