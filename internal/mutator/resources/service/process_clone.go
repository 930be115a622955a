package service

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// Clone copies serviceData's version and returns the new (inactive) version number.
func Clone(ctx context.Context, api helpers.API, serviceData *helpers.Service) (int32, error) {
	clientReq := api.Client.VersionAPI.CloneServiceVersion(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientResp, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly VersionAPI.CloneServiceVersion error", helpers.ResponseFields(httpResp))
		return 0, helpers.StageFailure(enums.Clone, serviceData, "unable to clone service version", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return 0, helpers.StageFailure(enums.Clone, serviceData, "unable to clone service version", httpResp, nil)
	}

	version, ok := clientResp.GetNumberOk()
	if !ok || version == nil || *version == 0 {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return 0, helpers.StageFailure(enums.Clone, serviceData, "no cloned version number was returned", httpResp, nil)
	}

	tflog.Debug(ctx, "Clone", map[string]any{
		"source_version": serviceData.Version,
		"cloned_version": *version,
	})

	return *version, nil
}
