package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/spf13/cobra"

	"github.com/integralist/fastly-mutate/internal/cmd/flags"
	"github.com/integralist/fastly-mutate/internal/config"
	"github.com/integralist/fastly-mutate/internal/helpers"
	"github.com/integralist/fastly-mutate/internal/logging"
	"github.com/integralist/fastly-mutate/internal/mutator"
)

// New returns the root command.
//
// The version is reported by --version and sent in the API User-Agent.
func New(version string) *cobra.Command {
	return newRootCommand(version)
}

func newRootCommand(version string, loadOptions ...config.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fastly-mutate",
		Short: "Clone a Fastly service version, change it and activate it",
		Long: "fastly-mutate clones the active (or latest) version of a Fastly service,\n" +
			"applies the requested VCL, backend and domain changes to the clone\n" +
			"and then activates it.\n\n" +
			"The active version is never modified. If a change fails, the clone is left\n" +
			"inactive and reported for manual cleanup.",
		Example: "  fastly-mutate -n example -k $FASTLY_API_KEY --backend https://origin.example.com\n" +
			"  fastly-mutate -n example --vcl ./main.vcl --domain www.example.com --activate=false",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, version, loadOptions...)
		},
	}

	flags.Register(cmd.Flags())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute(version string) {
	cmd := New(version)
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, version string, loadOptions ...config.Option) error {
	configFile, _ := cmd.Flags().GetString(flags.Config)

	options := append([]config.Option{
		config.WithConfigFile(configFile),
		config.WithOverrides(flags.Overrides(cmd.Flags())),
	}, loadOptions...)

	cfg, err := config.Load(options...)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	request, err := cfg.Request()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, err := logging.New(cmd.Context(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ctx = logging.Mask(ctx, cfg.APIKey)
	ctx = tflog.SetField(ctx, "run_id", uuid.NewString())

	api := helpers.NewAPI(ctx, cfg.ClientConfig("fastly-mutate/"+version))

	result, err := mutator.Run(ctx, api, request)
	if err != nil {
		if result.ClonedVersion != 0 && !result.Activated {
			return fmt.Errorf("%w\nversion %d of service %s was left inactive for manual cleanup",
				err, result.ClonedVersion, result.ServiceName)
		}
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	return nil
}

func printResult(w io.Writer, result mutator.Result) {
	color.New(color.FgGreen, color.Bold).Fprint(w, "SUCCESS: ")

	if result.Activated {
		fmt.Fprintf(w, "Activated version %d of service %s (cloned from version %d)\n",
			result.ClonedVersion, result.ServiceName, result.SourceVersion)
		return
	}

	fmt.Fprintf(w, "Cloned version %d of service %s from version %d (not activated)\n",
		result.ClonedVersion, result.ServiceName, result.SourceVersion)
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "ERROR: ")
	fmt.Fprintln(w, err)
}
