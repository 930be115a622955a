package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

// servicesPerPage is the page size used when listing services.
const servicesPerPage int32 = 100

// Lookup finds the service identified by nameOrID and returns it along with
// all of its versions.
//
// The returned service's Version is left unset.
// Callers pick one with ResolveSourceVersion().
func Lookup(ctx context.Context, api helpers.API, nameOrID string) (*helpers.Service, []models.Version, error) {
	serviceID, err := findServiceID(ctx, api, nameOrID)
	if err != nil {
		return nil, nil, err
	}

	service := &helpers.Service{ID: serviceID, Name: nameOrID}

	clientReq := api.Client.ServiceAPI.GetServiceDetail(api.ClientCtx, serviceID)
	clientResp, httpResp, err := clientReq.Execute()
	if err != nil {
		if httpResp != nil && httpResp.StatusCode == http.StatusNotFound {
			return nil, nil, errorsx.NewServiceNotFound(nameOrID, "service %q was not found", nameOrID)
		}
		tflog.Trace(ctx, "Fastly ServiceAPI.GetServiceDetail error", helpers.ResponseFields(httpResp))
		return nil, nil, helpers.StageFailure(enums.Lookup, service, "unable to retrieve service details", httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return nil, nil, helpers.StageFailure(enums.Lookup, service, "unable to retrieve service details", httpResp, nil)
	}

	// Check if the service has been deleted.
	if t, ok := clientResp.GetDeletedAtOk(); ok && t != nil {
		tflog.Trace(ctx, "Fastly ServiceAPI.GetDeletedAtOk", map[string]any{"deleted_at": t})
		return nil, nil, errorsx.NewServiceNotFound(nameOrID, "service %q has been deleted", nameOrID)
	}

	// Only VCL services accept custom VCL and backends in this form.
	switch serviceType := helpers.ServiceType(clientResp.GetType()); serviceType {
	case "", helpers.ServiceTypeVCL:
	case helpers.ServiceTypeWasm:
		tflog.Trace(ctx, "Fastly service type error", map[string]any{"type": serviceType})
		return nil, nil, helpers.StageFailure(
			enums.Lookup,
			service,
			fmt.Sprintf("service type %s does not support custom VCL, expected service type %s", serviceType, helpers.ServiceTypeVCL),
			nil,
			nil,
		)
	default:
		tflog.Trace(ctx, "Fastly service type error", map[string]any{"type": serviceType})
		return nil, nil, helpers.StageFailure(
			enums.Lookup,
			service,
			fmt.Sprintf("expected service type %s, got: %s", helpers.ServiceTypeVCL, serviceType),
			nil,
			nil,
		)
	}

	if name := clientResp.GetName(); name != "" {
		service.Name = name
	}

	remoteVersions := clientResp.GetVersions()
	versions := make([]models.Version, 0, len(remoteVersions))
	for _, v := range remoteVersions {
		versions = append(versions, models.Version{
			Number: v.GetNumber(),
			Active: v.GetActive(),
		})
	}

	tflog.Debug(ctx, "Lookup", map[string]any{
		"service_id": service.ID,
		"versions":   len(versions),
	})

	return service, versions, nil
}

// findServiceID pages through the account's services looking for a service
// whose name or ID matches nameOrID.
func findServiceID(ctx context.Context, api helpers.API, nameOrID string) (string, error) {
	for page := int32(1); ; page++ {
		clientReq := api.Client.ServiceAPI.ListServices(api.ClientCtx)
		clientReq.Page(page).PerPage(servicesPerPage)

		clientResp, httpResp, err := clientReq.Execute()
		if err != nil {
			tflog.Trace(ctx, "Fastly ServiceAPI.ListServices error", helpers.ResponseFields(httpResp))
			return "", helpers.StageFailure(
				enums.Lookup,
				&helpers.Service{Name: nameOrID},
				"unable to list services",
				httpResp,
				err,
			)
		}
		if httpResp.StatusCode != http.StatusOK {
			tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
			err := helpers.StageFailure(enums.Lookup, &helpers.Service{Name: nameOrID}, "unable to list services", httpResp, nil)
			httpResp.Body.Close()
			return "", err
		}
		httpResp.Body.Close()

		for _, s := range clientResp {
			if s.GetName() == nameOrID || s.GetID() == nameOrID {
				return s.GetID(), nil
			}
		}

		if int32(len(clientResp)) < servicesPerPage {
			break
		}
	}

	return "", errorsx.NewServiceNotFound(nameOrID, "service %q was not found", nameOrID)
}
