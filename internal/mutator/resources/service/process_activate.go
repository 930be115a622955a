package service

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// Activate makes serviceData's version the live version.
//
// The platform deactivates the previously active version atomically.
func Activate(ctx context.Context, api helpers.API, serviceData *helpers.Service) error {
	clientReq := api.Client.VersionAPI.ActivateServiceVersion(api.ClientCtx, serviceData.ID, serviceData.Version)
	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly VersionAPI.ActivateServiceVersion error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Activate, serviceData, "unable to activate service version", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Activate, serviceData, "unable to activate service version", httpResp, nil)
	}

	tflog.Debug(ctx, "Activate", map[string]any{"version": serviceData.Version})

	return nil
}
