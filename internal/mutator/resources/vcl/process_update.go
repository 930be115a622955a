package vcl

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// Update uploads the VCL to the service version as the main VCL.
// An existing VCL of the same name has its content replaced.
//
// IMPORTANT: The source is read before any VCL API call is made.
// An unreadable source must not leave a half-written VCL behind.
func (r *Resource) Update(ctx context.Context, api helpers.API, serviceData *helpers.Service) error {
	content, err := helpers.ReadSource(ctx, api.HTTPClient, r.Data.Location)
	if err != nil {
		tflog.Trace(ctx, helpers.ErrorSource, map[string]any{"location": r.Data.Location, "error": err.Error()})
		return &errorsx.VCLUploadError{StageError: &errorsx.StageError{
			Stage:   enums.VCL,
			Service: serviceData.Name,
			Version: serviceData.Version,
			Message: fmt.Sprintf("unable to read VCL from %s", r.Data.Location),
			Cause:   err,
		}}
	}

	found, err := exists(ctx, api, serviceData, r.Data.Name)
	if err != nil {
		return err
	}

	if found {
		err = update(ctx, api, serviceData, r.Data.Name, content)
	} else {
		err = create(ctx, api, serviceData, r.Data.Name, content)
	}
	if err != nil {
		return err
	}

	tflog.Debug(ctx, "VCL", map[string]any{
		"name":     r.Data.Name,
		"replaced": found,
		"bytes":    len(content),
	})

	r.Changed = false

	return nil
}

func create(ctx context.Context, api helpers.API, serviceData *helpers.Service, name, content string) error {
	clientReq := api.Client.VclAPI.CreateCustomVcl(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientReq.Name(name).Content(content).Main(true)

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly VclAPI.CreateCustomVcl error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.VCL, serviceData, fmt.Sprintf("unable to create VCL %q", name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.VCL, serviceData, fmt.Sprintf("unable to create VCL %q", name), httpResp, nil)
	}

	return nil
}

func update(ctx context.Context, api helpers.API, serviceData *helpers.Service, name, content string) error {
	clientReq := api.Client.VclAPI.UpdateCustomVcl(api.ClientCtx, serviceData.ID, serviceData.Version, name)
	clientReq.Content(content).Main(true)

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly VclAPI.UpdateCustomVcl error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.VCL, serviceData, fmt.Sprintf("unable to update VCL %q", name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.VCL, serviceData, fmt.Sprintf("unable to update VCL %q", name), httpResp, nil)
	}

	return nil
}
