package domain

import (
	"context"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// read returns the remote domain called name (nil if the version doesn't have it).
func read(ctx context.Context, api helpers.API, serviceData *helpers.Service, name string) (*models.Domain, error) {
	clientReq := api.Client.DomainAPI.ListDomains(api.ClientCtx, serviceData.ID, serviceData.Version)

	clientResp, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly DomainAPI.ListDomains error", helpers.ResponseFields(httpResp))
		return nil, helpers.StageFailure(enums.Domain, serviceData, "unable to list domains", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return nil, helpers.StageFailure(enums.Domain, serviceData, "unable to list domains", httpResp, nil)
	}

	for _, remoteDomain := range clientResp {
		if remoteDomain.GetName() != name {
			continue
		}
		// NOTE: The Fastly API returns an empty string (not null) for an unset comment.
		return &models.Domain{
			Name:    remoteDomain.GetName(),
			Comment: remoteDomain.GetComment(),
		}, nil
	}

	return nil, nil
}
