package vcl

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// exists reports whether the service version already has a VCL called name.
func exists(ctx context.Context, api helpers.API, serviceData *helpers.Service, name string) (bool, error) {
	clientReq := api.Client.VclAPI.ListCustomVcl(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientResp, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly VclAPI.ListCustomVcl error", helpers.ResponseFields(httpResp))
		return false, helpers.StageFailure(enums.VCL, serviceData, "unable to list custom VCL", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return false, helpers.StageFailure(enums.VCL, serviceData, "unable to list custom VCL", httpResp, nil)
	}

	for _, remoteVCL := range clientResp {
		if remoteVCL.GetName() == name {
			return true, nil
		}
	}

	return false, nil
}
