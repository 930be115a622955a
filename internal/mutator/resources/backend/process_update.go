package backend

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

// Update points the service version's backend at the configured address.
// The backend is created if the version doesn't have one of that name yet.
func (r *Resource) Update(ctx context.Context, api helpers.API, serviceData *helpers.Service) error {
	var caCert string
	if r.Data.CACert != "" {
		content, err := helpers.ReadSource(ctx, api.HTTPClient, r.Data.CACert)
		if err != nil {
			tflog.Trace(ctx, helpers.ErrorSource, map[string]any{"location": r.Data.CACert, "error": err.Error()})
			return &errorsx.BackendUpdateError{StageError: &errorsx.StageError{
				Stage:   enums.Backend,
				Service: serviceData.Name,
				Version: serviceData.Version,
				Message: fmt.Sprintf("unable to read CA certificate from %s", r.Data.CACert),
				Cause:   err,
			}}
		}
		caCert = content
	}

	found, err := exists(ctx, api, serviceData, r.Data.Name)
	if err != nil {
		return err
	}

	if found {
		err = update(ctx, api, serviceData, r.Data, caCert)
	} else {
		err = create(ctx, api, serviceData, r.Data, caCert)
	}
	if err != nil {
		return err
	}

	tflog.Debug(ctx, "Backend", map[string]any{
		"name":     r.Data.Name,
		"address":  r.Data.Address,
		"port":     r.Data.Port,
		"use_ssl":  r.Data.UseSSL,
		"replaced": found,
	})

	r.Changed = false

	return nil
}

func create(ctx context.Context, api helpers.API, serviceData *helpers.Service, data models.Backend, caCert string) error {
	clientReq := api.Client.BackendAPI.CreateBackend(api.ClientCtx, serviceData.ID, serviceData.Version)
	clientReq.
		Name(data.Name).
		Address(data.Address).
		Port(data.Port).
		FirstByteTimeout(data.FirstByteTimeout).
		UseSsl(data.UseSSL)

	if data.UseSSL {
		clientReq.SslCertHostname(data.SSLCertHostname).SslSniHostname(data.SSLSNIHostname)
	}
	if caCert != "" {
		clientReq.SslCaCert(caCert).SslCheckCert(true)
	}

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly BackendAPI.CreateBackend error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Backend, serviceData, fmt.Sprintf("unable to create backend %q", data.Name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Backend, serviceData, fmt.Sprintf("unable to create backend %q", data.Name), httpResp, nil)
	}

	return nil
}

func update(ctx context.Context, api helpers.API, serviceData *helpers.Service, data models.Backend, caCert string) error {
	clientReq := api.Client.BackendAPI.UpdateBackend(api.ClientCtx, serviceData.ID, serviceData.Version, data.Name)
	clientReq.
		Address(data.Address).
		Port(data.Port).
		FirstByteTimeout(data.FirstByteTimeout).
		UseSsl(data.UseSSL)

	if data.UseSSL {
		clientReq.SslCertHostname(data.SSLCertHostname).SslSniHostname(data.SSLSNIHostname)
		if caCert != "" {
			clientReq.SslCaCert(caCert).SslCheckCert(true)
		}
	} else {
		// Settings from a previous TLS backend no longer apply.
		clientReq.SslCertHostname("").SslSniHostname("").SslCaCert("").SslCheckCert(false)
	}

	_, httpResp, err := clientReq.Execute()
	if err != nil {
		tflog.Trace(ctx, "Fastly BackendAPI.UpdateBackend error", helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Backend, serviceData, fmt.Sprintf("unable to update backend %q", data.Name), httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		tflog.Trace(ctx, helpers.ErrorAPI, helpers.ResponseFields(httpResp))
		return helpers.StageFailure(enums.Backend, serviceData, fmt.Sprintf("unable to update backend %q", data.Name), httpResp, nil)
	}

	return nil
}
