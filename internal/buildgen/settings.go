// Package buildgen generates build-orchestrator input files from the
// ambient build settings: a CMake toolchain descriptor, configuration
// presets named after the platform/compiler combination, and dependency
// metadata for downstream resolution.
package buildgen

import (
	"fmt"
	"strings"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
)

// Settings are the ambient build settings read from the active profile.
// All fields except CompilerVersion are required.
type Settings struct {
	OS              string
	Arch            string
	Compiler        string
	CompilerVersion string
	Cppstd          int
	BuildType       string
}

// Validate checks that the required settings fields are present.
func (s Settings) Validate() error {
	var missing []string
	if s.OS == "" {
		missing = append(missing, "os")
	}
	if s.Arch == "" {
		missing = append(missing, "arch")
	}
	if s.Compiler == "" {
		missing = append(missing, "compiler")
	}
	if s.BuildType == "" {
		missing = append(missing, "build_type")
	}

	if len(missing) > 0 {
		return twerrors.NewConfigError("profile is missing required settings: " + strings.Join(missing, ", "))
	}

	return nil
}

// PresetPrefix computes the naming convention for generated build presets:
// the lowercase form of "conan-<arch>-<os>-<compiler>" with every "."
// removed. Compiler names like "apple-clang" or versions like "msvc 19.3"
// therefore collapse into a single flat token stream.
func PresetPrefix(s Settings) string {
	prefix := fmt.Sprintf("conan-%s-%s-%s", s.Arch, s.OS, s.Compiler)

	return strings.ReplaceAll(strings.ToLower(prefix), ".", "")
}

// PresetName returns the full preset name for the settings' build variant.
func PresetName(s Settings) string {
	return PresetPrefix(s) + "-" + strings.ToLower(s.BuildType)
}
