package domain

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// Update adds the domain to the service version.
//
// MODIFIED:
// If the version already has the domain and a different comment was requested,
// then only the comment is updated.
//
// UNCHANGED:
// If the version already has the domain otherwise, nothing is sent.
//
// ADDED:
// If the version doesn't have the domain, then it's a new domain.
func (r *Resource) Update(ctx context.Context, api helpers.API, serviceData *helpers.Service) error {
	remote, err := read(ctx, api, serviceData, r.Data.Name)
	if err != nil {
		return err
	}

	switch {
	case remote == nil:
		err = added(ctx, api, serviceData, r.Data)
	case r.Data.Comment != "" && r.Data.Comment != remote.Comment:
		err = modified(ctx, api, serviceData, r.Data)
	default:
		tflog.Debug(ctx, "Domain already present", map[string]any{"name": r.Data.Name})
	}
	if err != nil {
		return err
	}

	tflog.Debug(ctx, "Domain", map[string]any{
		"name":  r.Data.Name,
		"added": remote == nil,
	})

	r.Changed = false

	return nil
}

func added(ctx context.Context, api helpers.API, serviceData *helpers.Service, domainData models.Domain) error {
	clientReq := api.Client.DomainAPI.CreateDomain(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientReq.Name(domainData.Name)

	if domainData.Comment != "" {
		clientReq.Comment(domainData.Comment)
	}

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly DomainAPI.CreateDomain error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Domain, serviceData, fmt.Sprintf("unable to create domain %q", domainData.Name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Domain, serviceData, fmt.Sprintf("unable to create domain %q", domainData.Name), httpResp, nil)
	}

	return nil
}

func modified(ctx context.Context, api helpers.API, serviceData *helpers.Service, domainData models.Domain) error {
	clientReq := api.Client.DomainAPI.UpdateDomain(api.ClientCtx, serviceData.ID, serviceData.Version, domainData.Name)
	clientReq.Comment(domainData.Comment)

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly DomainAPI.UpdateDomain error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Domain, serviceData, fmt.Sprintf("unable to update domain %q", domainData.Name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Domain, serviceData, fmt.Sprintf("unable to update domain %q", domainData.Name), httpResp, nil)
	}

	return nil
}
