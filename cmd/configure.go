package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eelitiawan/taskweave/internal/buildgen"
	"github.com/eelitiawan/taskweave/internal/config"
)

// configureCmd generates the build-orchestrator input files.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Generate toolchain, preset, and dependency files",
	Long: `Configure validates the active build profile and generates the files the
build orchestrator consumes: the CMake toolchain descriptor, configuration
presets named after the platform/compiler combination, and dependency
metadata.

Artifacts land in <output>/<build_type>/generators. Generation is atomic
and idempotent: re-running overwrites the previous artifacts.

The package requires C++20. A profile declaring a lower standard aborts
before any file is written.

Examples:
  taskweave configure
  taskweave configure --build-type Debug
  taskweave configure --shared --profile profiles/linux-gcc13.yml`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().String("build-type", "", "build variant (Release, Debug, ...)")
	configureCmd.Flags().StringP("output", "o", "", "base output directory (default \"build\")")
	configureCmd.Flags().Bool("shared", false, "build as a shared library")
	configureCmd.Flags().Bool("fpic", true, "build position-independent code (ignored on Windows)")
	configureCmd.Flags().StringP("profile", "p", "", "build profile file to overlay on the configuration")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		cfg.Profile, err = config.LoadProfile(profilePath, cfg.Profile)
		if err != nil {
			return err
		}
	}

	if buildType, _ := cmd.Flags().GetString("build-type"); buildType != "" {
		cfg.Profile.BuildType = buildType
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.Package.OutputDir = output
	}
	if cmd.Flags().Changed("shared") {
		cfg.Package.Shared, _ = cmd.Flags().GetBool("shared")
	}
	if cmd.Flags().Changed("fpic") {
		cfg.Package.FPIC, _ = cmd.Flags().GetBool("fpic")
	}

	settings := buildgen.Settings{
		OS:              cfg.Profile.OS,
		Arch:            cfg.Profile.Arch,
		Compiler:        cfg.Profile.Compiler,
		CompilerVersion: cfg.Profile.CompilerVersion,
		Cppstd:          cfg.Profile.Cppstd,
		BuildType:       cfg.Profile.BuildType,
	}
	options := buildgen.DefaultOptions(settings).
		WithShared(cfg.Package.Shared).
		WithFPIC(cfg.Package.FPIC)

	gen := buildgen.NewGenerator(settings, options, cfg.Package.OutputDir, logger)
	gen.TestRequire("gtest", "1.14.0")

	if err := gen.Configure(buildgen.MinCppStandard); err != nil {
		return err
	}
	if err := gen.Generate(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s preset in %s\n",
		buildgen.PresetName(settings), gen.GeneratorsDir())

	return nil
}
