package config

import (
	"os"

	"gopkg.in/yaml.v3"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
)

// LoadProfile reads a standalone build profile file and overlays its
// non-empty fields onto the configured profile. Profiles are small YAML
// documents describing a single platform/compiler/build-type combination:
//
//	os: Linux
//	arch: x86_64
//	compiler: gcc
//	compiler_version: "13"
//	cppstd: 20
//	build_type: Debug
func LoadProfile(path string, base ProfileConfig) (ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, twerrors.NewIOError("read profile", err).WithPath(path)
	}

	var overlay ProfileConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return base, twerrors.NewConfigError("invalid profile " + path + ": " + err.Error())
	}

	merged := base
	if overlay.OS != "" {
		merged.OS = overlay.OS
	}
	if overlay.Arch != "" {
		merged.Arch = overlay.Arch
	}
	if overlay.Compiler != "" {
		merged.Compiler = overlay.Compiler
	}
	if overlay.CompilerVersion != "" {
		merged.CompilerVersion = overlay.CompilerVersion
	}
	if overlay.Cppstd != 0 {
		merged.Cppstd = overlay.Cppstd
	}
	if overlay.BuildType != "" {
		merged.BuildType = overlay.BuildType
	}

	return merged, nil
}
