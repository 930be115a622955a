package backend

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// exists reports whether the service version already has a backend called name.
func exists(ctx context.Context, api helpers.API, serviceData *helpers.Service, name string) (bool, error) {
	clientReq := api.Client.BackendAPI.ListBackends(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientResp, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly BackendAPI.ListBackends error", helpers.ResponseFields(httpResp))
		return false, helpers.StageFailure(enums.Backend, serviceData, "unable to list backends", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return false, helpers.StageFailure(enums.Backend, serviceData, "unable to list backends", httpResp, nil)
	}

	for _, remoteBackend := range clientResp {
		if remoteBackend.GetName() == name {
			return true, nil
		}
	}

	return false, nil
}
