package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/hashicorp/terraform-plugin-log/tfsdklog"
)

const (
	// DefaultLevel is the log level used when none is configured.
	DefaultLevel = "warn"
	// Name is the name every log line is emitted under.
	Name = "fastly-mutate"
)

// Levels are the accepted log level names, most verbose first.
var Levels = []string{"trace", "debug", "info", "warn", "error", "off"}

// ParseLevel converts a level name into an hclog level.
func ParseLevel(level string) (hclog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}

	if level == "off" {
		return hclog.Off, nil
	}

	for _, l := range Levels {
		if l == level {
			return hclog.LevelFromString(level), nil
		}
	}

	return hclog.NoLevel, fmt.Errorf("unsupported log level %q (expected one of %s)", level, strings.Join(Levels, ", "))
}

// New returns a context carrying the root logger used by every tflog call.
//
// Log lines are JSON encoded and written to stderr.
func New(ctx context.Context, level string) (context.Context, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return ctx, err
	}

	return tfsdklog.NewRootProviderLogger(
		ctx,
		tfsdklog.WithLevel(l),
		tfsdklog.WithLogName(Name),
		tfsdklog.WithoutLocation(),
	), nil
}

// Mask hides each non-empty secret in log messages and field values.
func Mask(ctx context.Context, secrets ...string) context.Context {
	var masked []string
	for _, s := range secrets {
		if s != "" {
			masked = append(masked, s)
		}
	}
	if len(masked) == 0 {
		return ctx
	}

	ctx = tflog.MaskMessageStrings(ctx, masked...)
	ctx = tflog.MaskAllFieldValuesStrings(ctx, masked...)

	return ctx
}
