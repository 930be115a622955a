package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/hashicorp/go-multierror"

	"github.com/integralist/fastly-mutate/internal/mutator/models"
)

const (
	backendURLTag = "backendurl"
	tlsBackendTag = "tlsbackend"
)

type configValidator struct {
	v *validator.Validate
	t ut.Translator
}

func newValidator() (*configValidator, error) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	translate, _ := uni.GetTranslator("en")
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := entranslations.RegisterDefaultTranslations(validate, translate); err != nil {
		return nil, err
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0] //nolint:mnd
		if len(name) == 0 {
			return fld.Name
		}

		return name
	})

	if err := validate.RegisterValidation(backendURLTag, func(fl validator.FieldLevel) bool {
		_, err := models.ParseBackend(fl.Field().String())

		return err == nil
	}); err != nil {
		return nil, err
	}

	err := validate.RegisterTranslation(
		backendURLTag,
		translate,
		func(ut ut.Translator) error {
			return ut.Add(backendURLTag, "{0} must be an http or https URL with only a host and optional port", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(backendURLTag, fe.Field())

			return msg
		},
	)
	if err != nil {
		return nil, err
	}

	validate.RegisterStructValidation(validateTLSBackend, Config{})

	err = validate.RegisterTranslation(
		tlsBackendTag,
		translate,
		func(ut ut.Translator) error {
			return ut.Add(tlsBackendTag, "{0} requires an https backend", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tlsBackendTag, fe.Field())

			return msg
		},
	)
	if err != nil {
		return nil, err
	}

	return &configValidator{v: validate, t: translate}, nil
}

// validateTLSBackend rejects certificate settings for a plain HTTP backend.
// They only apply to TLS connections and would otherwise be dropped.
func validateTLSBackend(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config) //nolint:forcetypeassert

	backend, err := models.ParseBackend(cfg.Backend)
	if cfg.Backend == "" || err != nil || backend.UseSSL {
		return
	}

	if cfg.Cert != "" {
		sl.ReportError(cfg.Cert, "cert", "Cert", tlsBackendTag, "")
	}
	if cfg.CertHostname != "" {
		sl.ReportError(cfg.CertHostname, "cert_hostname", "CertHostname", tlsBackendTag, "")
	}
}

// Validate checks the configuration, reporting every problem at once.
func Validate(cfg *Config) error {
	cv, err := newValidator()
	if err != nil {
		return err
	}

	err = cv.v.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, errors.New(fe.Translate(cv.t)))
	}

	return result.ErrorOrNil()
}
