package buildgen

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
	"github.com/eelitiawan/taskweave/internal/executor"
	"github.com/eelitiawan/taskweave/internal/logging"
	"github.com/eelitiawan/taskweave/internal/weave"
)

// MinCppStandard is the minimum C++ standard the package requires.
const MinCppStandard = 20

// Artifact file names written into the generators directory.
const (
	ToolchainFileName = "conan_toolchain.cmake"
	PresetsFileName   = "CMakePresets.json"
	DepsManifestName  = "dependencies.yml"
)

// Requirement is a declared package dependency at a pinned version.
type Requirement struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Generator produces the build-orchestrator input files for one
// platform/compiler/build-type combination. It is a one-shot, idempotent
// component: re-running Generate overwrites the previous artifacts
// atomically.
type Generator struct {
	settings     Settings
	options      Options
	outputRoot   string
	requires     []Requirement
	testRequires []Requirement
	logger       logging.Logger
}

// NewGenerator creates a generator for the given settings and options.
// outputRoot is the base build directory; artifacts land in the
// layout-defined generators subdirectory under it.
func NewGenerator(settings Settings, options Options, outputRoot string, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &Generator{
		settings:   settings,
		options:    options,
		outputRoot: outputRoot,
		logger:     logger.WithComponent("buildgen"),
	}
}

// Configure validates the ambient settings before any generation work.
// It fails when the profile's compiler standard is below minStandard,
// guaranteeing that no partial artifacts are written for an unusable
// toolchain.
func (g *Generator) Configure(minStandard int) error {
	if err := g.settings.Validate(); err != nil {
		return err
	}

	if g.settings.Cppstd < minStandard {
		return twerrors.NewStandardTooLowError(g.settings.Cppstd, minStandard)
	}

	return nil
}

// Require declares a host dependency. The current package declares none;
// the method exists as the extension point for downstream recipes.
func (g *Generator) Require(name, version string) {
	g.requires = append(g.requires, Requirement{Name: name, Version: version})
}

// TestRequire declares a dependency needed only by the test build variant.
func (g *Generator) TestRequire(name, version string) {
	g.testRequires = append(g.testRequires, Requirement{Name: name, Version: version})
}

// GeneratorsDir returns the layout-defined output directory for generated
// artifacts: <outputRoot>/<build_type>/generators.
func (g *Generator) GeneratorsDir() string {
	return filepath.Join(g.outputRoot, g.settings.BuildType, "generators")
}

// Generate writes all artifacts: the toolchain descriptor, the preset
// definitions, and the dependency metadata. The three writers are
// independent once the directory exists, so they run as a task set on
// the executor. Any filesystem failure aborts with an IO error.
func (g *Generator) Generate(ctx context.Context) error {
	dir := g.GeneratorsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return twerrors.NewIOError("create generators directory", err).WithPath(dir)
	}

	exec := executor.New()
	defer exec.Close()

	for name, fn := range map[string]func(context.Context, string) error{
		"toolchain":    g.generateToolchain,
		"presets":      g.generatePresets,
		"dependencies": g.generateDependencyFiles,
	} {
		step := fn
		exec.Add(weave.NewTask(name, func() (struct{}, error) {
			return struct{}{}, step(ctx, dir)
		}))
	}

	exec.Run()
	exec.Wait()

	if errs := exec.Errors(); len(errs) > 0 {
		return errs[0]
	}

	g.logger.Info(ctx, "generation complete",
		"dir", dir,
		"preset_prefix", PresetPrefix(g.settings))

	return nil
}

const toolchainTemplate = `# Toolchain file generated by taskweave configure.
# Do not edit manually, it will be overwritten on the next run.
#
# Settings: os={{ .Settings.OS }} arch={{ .Settings.Arch }} compiler={{ .Settings.Compiler }} build_type={{ .Settings.BuildType }}
# Preset naming convention: {{ .PresetPrefix }}-<build_type>

set(CMAKE_CXX_STANDARD {{ .Settings.Cppstd }})
set(CMAKE_CXX_STANDARD_REQUIRED ON)
set(CMAKE_CXX_EXTENSIONS OFF)

set(CMAKE_BUILD_TYPE "{{ .Settings.BuildType }}" CACHE STRING "Choose the type of build." FORCE)

set(BUILD_SHARED_LIBS {{ if .Options.Shared }}ON{{ else }}OFF{{ end }} CACHE BOOL "" FORCE)
{{- if .Options.FPIC }}
set(CMAKE_POSITION_INDEPENDENT_CODE {{ if .FPICValue }}ON{{ else }}OFF{{ end }} CACHE BOOL "" FORCE)
{{- end }}

# Emit a compile-command database for IDE integration and tooling.
set(CMAKE_EXPORT_COMPILE_COMMANDS ON CACHE BOOL "" FORCE)
`

func (g *Generator) generateToolchain(ctx context.Context, dir string) error {
	tmpl, err := template.New("toolchain").Parse(toolchainTemplate)
	if err != nil {
		return twerrors.NewIOError("parse toolchain template", err)
	}

	data := struct {
		Settings     Settings
		Options      Options
		PresetPrefix string
		FPICValue    bool
	}{
		Settings:     g.settings,
		Options:      g.options,
		PresetPrefix: PresetPrefix(g.settings),
	}
	if g.options.FPIC != nil {
		data.FPICValue = *g.options.FPIC
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return twerrors.NewIOError("render toolchain file", err)
	}

	path := filepath.Join(dir, ToolchainFileName)
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return twerrors.NewIOError("write toolchain file", err).WithPath(path)
	}

	g.logger.Debug(ctx, "toolchain file written", "path", path)

	return nil
}

type cmakePreset struct {
	Name          string         `json:"name"`
	DisplayName   string         `json:"displayName"`
	Generator     string         `json:"generator,omitempty"`
	ToolchainFile string         `json:"toolchainFile,omitempty"`
	BinaryDir     string         `json:"binaryDir,omitempty"`
	CacheVars     map[string]any `json:"cacheVariables,omitempty"`
}

type cmakeBuildPreset struct {
	Name            string `json:"name"`
	ConfigurePreset string `json:"configurePreset"`
	Configuration   string `json:"configuration"`
}

type cmakePresetsFile struct {
	Version          int                `json:"version"`
	ConfigurePresets []cmakePreset      `json:"configurePresets"`
	BuildPresets     []cmakeBuildPreset `json:"buildPresets"`
}

func (g *Generator) generatePresets(ctx context.Context, dir string) error {
	name := PresetName(g.settings)

	presets := cmakePresetsFile{
		Version: 3,
		ConfigurePresets: []cmakePreset{{
			Name:          name,
			DisplayName:   "'" + name + "' config",
			ToolchainFile: ToolchainFileName,
			BinaryDir:     filepath.Join(g.outputRoot, g.settings.BuildType),
			CacheVars: map[string]any{
				"CMAKE_EXPORT_COMPILE_COMMANDS": true,
			},
		}},
		BuildPresets: []cmakeBuildPreset{{
			Name:            name,
			ConfigurePreset: name,
			Configuration:   g.settings.BuildType,
		}},
	}

	payload, err := json.MarshalIndent(presets, "", "    ")
	if err != nil {
		return twerrors.NewIOError("encode presets", err)
	}
	payload = append(payload, '\n')

	path := filepath.Join(dir, PresetsFileName)
	if err := renameio.WriteFile(path, payload, 0o644); err != nil {
		return twerrors.NewIOError("write presets file", err).WithPath(path)
	}

	g.logger.Debug(ctx, "presets file written", "path", path, "preset", name)

	return nil
}

type depsManifest struct {
	Requires     []Requirement `yaml:"requires"`
	TestRequires []Requirement `yaml:"test_requires"`
}

func (g *Generator) generateDependencyFiles(ctx context.Context, dir string) error {
	manifest := depsManifest{
		Requires:     g.requires,
		TestRequires: g.testRequires,
	}

	payload, err := yaml.Marshal(manifest)
	if err != nil {
		return twerrors.NewIOError("encode dependency manifest", err)
	}

	path := filepath.Join(dir, DepsManifestName)
	if err := renameio.WriteFile(path, payload, 0o644); err != nil {
		return twerrors.NewIOError("write dependency manifest", err).WithPath(path)
	}

	// One find_package stub per declared dependency so the orchestrator
	// can resolve them without a remote lookup.
	for _, req := range append(append([]Requirement{}, g.requires...), g.testRequires...) {
		stub := depConfigStub(req)
		stubPath := filepath.Join(dir, req.Name+"-config.cmake")
		if err := renameio.WriteFile(stubPath, []byte(stub), 0o644); err != nil {
			return twerrors.NewIOError("write dependency descriptor", err).WithPath(stubPath)
		}
	}

	g.logger.Debug(ctx, "dependency files written",
		"path", path,
		"requires", len(g.requires),
		"test_requires", len(g.testRequires))

	return nil
}

func depConfigStub(req Requirement) string {
	var b strings.Builder
	b.WriteString("# Dependency descriptor generated by taskweave configure.\n")
	b.WriteString("set(" + req.Name + "_VERSION_STRING \"" + req.Version + "\")\n")
	b.WriteString("set(" + req.Name + "_FOUND TRUE)\n")

	return b.String()
}
