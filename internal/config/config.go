// Package config provides configuration management for taskweave using
// Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with the TASKWEAVE_ prefix. It manages the build profile
// (platform, compiler, build type), package options, and formatter
// settings. Profile values not set anywhere fall back to the ambient
// platform reported by the Go runtime.
package config

import (
	"runtime"

	"github.com/spf13/viper"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
)

type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Package PackageConfig `yaml:"package"`
	Format  FormatConfig  `yaml:"format"`
}

// ProfileConfig holds the ambient build settings, mirroring the fields a
// build profile provides: platform, compiler identity, and build variant.
type ProfileConfig struct {
	OS              string `yaml:"os"`
	Arch            string `yaml:"arch"`
	Compiler        string `yaml:"compiler"`
	CompilerVersion string `yaml:"compiler_version"`
	Cppstd          int    `yaml:"cppstd"`
	BuildType       string `yaml:"build_type"`
}

// PackageConfig holds package identity and binary-compatibility options.
type PackageConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Shared    bool   `yaml:"shared"`
	FPIC      bool   `yaml:"fpic"`
	OutputDir string `yaml:"output_dir"`
}

// FormatConfig holds formatter runner settings.
type FormatConfig struct {
	Roots      []string `yaml:"roots"`
	Extensions []string `yaml:"extensions"`
	Tool       string   `yaml:"tool"`
}

// Load builds the configuration from viper's merged sources and applies
// defaults for anything left unset.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, twerrors.NewConfigError("invalid configuration: " + err.Error())
	}

	// Workaround for viper slice handling: explicit keys win over the
	// unmarshalled struct when the struct came back empty.
	if viper.IsSet("format.roots") && len(config.Format.Roots) == 0 {
		config.Format.Roots = viper.GetStringSlice("format.roots")
	}
	if viper.IsSet("format.extensions") && len(config.Format.Extensions) == 0 {
		config.Format.Extensions = viper.GetStringSlice("format.extensions")
	}
	if viper.IsSet("package.fpic") {
		config.Package.FPIC = viper.GetBool("package.fpic")
	} else {
		config.Package.FPIC = true
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Profile.OS == "" {
		config.Profile.OS = hostOS()
	}
	if config.Profile.Arch == "" {
		config.Profile.Arch = hostArch()
	}
	if config.Profile.Compiler == "" {
		config.Profile.Compiler = defaultCompiler(config.Profile.OS)
	}
	if config.Profile.Cppstd == 0 {
		config.Profile.Cppstd = 20
	}
	if config.Profile.BuildType == "" {
		config.Profile.BuildType = "Release"
	}

	if config.Package.Name == "" {
		config.Package.Name = "taskweave"
	}
	if config.Package.Version == "" {
		config.Package.Version = "0.0.1"
	}
	if config.Package.OutputDir == "" {
		config.Package.OutputDir = "build"
	}

	if len(config.Format.Roots) == 0 {
		config.Format.Roots = []string{"src", "tests"}
	}
	if len(config.Format.Extensions) == 0 {
		config.Format.Extensions = []string{".h", ".cpp", ".hpp", ".cc", ".cxx"}
	}
	if config.Format.Tool == "" {
		config.Format.Tool = "clang-format"
	}
}

// hostOS maps the Go runtime OS name to the profile naming convention.
func hostOS() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Macos"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return runtime.GOOS
	}
}

// hostArch maps the Go runtime architecture to the profile naming convention.
func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "armv8"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}

func defaultCompiler(osName string) string {
	switch osName {
	case "Windows":
		return "msvc"
	case "Macos":
		return "apple-clang"
	default:
		return "gcc"
	}
}
