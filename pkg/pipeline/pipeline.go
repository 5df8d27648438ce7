// Package pipeline provides the export pipeline for Bento.
//
// This package implements the complete materials → meshes → scene export
// that the CLI drives. A single [Runner] turns a loaded [scene.Scene] into a
// Nori scene directory:
//
//	out/
//	  scene.xml
//	  meshes/<object>_<material>.obj
//	  textures/<stem>.png
//
// # Architecture
//
// The export runs in stages:
//
//  1. Materials: translate every node graph into a Nori element, exporting
//     image textures on the way when enabled
//  2. Meshes: split mesh objects by material slot and write OBJ files
//  3. Scene: assemble integrator, sampler, camera, meshes and point lights
//     into scene.xml
//
// Stages honor context cancellation between steps. Each stage reports to
// the [observability] export hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    OutputPath:     "out/scene.xml",
//	    ExportTextures: true,
//	}
//	result, err := runner.Export(ctx, s, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Translated, "materials")
//
// [observability]: github.com/thecodec/bento/pkg/observability
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/thecodec/bento/pkg/config"
	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/material"
	"github.com/thecodec/bento/pkg/mesh"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
	"github.com/thecodec/bento/pkg/texture"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Use
// =============================================================================

const (
	// DefaultIntegrator is the Nori integrator written to the scene.
	DefaultIntegrator = "path_mis"

	// DefaultSampleCount is the sampler's samples per pixel.
	DefaultSampleCount = 128

	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 512

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 512

	// DefaultFilter is the default reconstruction filter.
	DefaultFilter = "gaussian"

	// DefaultTextureFormat is the default texture encoding.
	DefaultTextureFormat = texture.PNG

	// MaxResolution bounds width and height.
	MaxResolution = 16384
)

// ValidIntegrators is the set of supported integrators.
var ValidIntegrators = map[string]bool{
	"path_mis":    true,
	"path_mats":   true,
	"direct_ems":  true,
	"direct_mis":  true,
	"direct_mats": true,
	"av":          true,
	"material":    true,
	"normals":     true,
}

// ValidFilters is the set of supported reconstruction filters.
var ValidFilters = map[string]bool{
	"box":      true,
	"gaussian": true,
	"mitchell": true,
	"tent":     true,
}

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options contains all configuration for one export.
// Fields carry toml tags so presets can be stored as files.
type Options struct {
	// OutputPath is the scene document to write. Meshes and textures are
	// written next to it.
	OutputPath string `toml:"output" json:"output"`

	// Renderer settings
	Integrator           string `toml:"integrator" json:"integrator,omitempty"`
	SampleCount          int    `toml:"sample_count" json:"sample_count,omitempty"`
	UseSceneSamples      bool   `toml:"use_scene_samples" json:"use_scene_samples,omitempty"`
	Width                int    `toml:"width" json:"width,omitempty"`
	Height               int    `toml:"height" json:"height,omitempty"`
	UseSceneResolution   bool   `toml:"use_scene_resolution" json:"use_scene_resolution,omitempty"`
	ReconstructionFilter string `toml:"reconstruction_filter" json:"reconstruction_filter,omitempty"`

	// Content options
	ExportTextures    bool           `toml:"export_textures" json:"export_textures,omitempty"`
	TextureFormat     texture.Format `toml:"texture_format" json:"texture_format,omitempty"`
	ExportPointLights bool           `toml:"export_point_lights" json:"export_point_lights,omitempty"`

	// Workers bounds concurrent material translation and mesh writing.
	Workers int `toml:"workers" json:"workers,omitempty"`

	// Runtime options (not serialized)
	Mapping *config.Mapping `toml:"-" json:"-"`
	Logger  *log.Logger     `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of an export run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// OutputPath is the written scene document.
	OutputPath string

	// Document is the assembled scene.
	Document *nori.Element

	// Outcomes holds the translation outcome per material name.
	Outcomes map[string]material.Outcome

	// Parts lists the written mesh files.
	Parts []mesh.Part

	// Textures counts written and cache-skipped textures.
	Textures texture.Stats

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains export statistics.
type Stats struct {
	Materials    int
	Translated   int
	MeshParts    int
	MaterialTime time.Duration
	MeshTime     time.Duration
	SceneTime    time.Duration
	TotalTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateIntegrator checks that an integrator is supported.
func ValidateIntegrator(name string) error {
	if !ValidIntegrators[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid integrator: %q (must be one of: path_mis, path_mats, direct_ems, direct_mis, direct_mats, av, material, normals)", name)
	}
	return nil
}

// ValidateFilter checks that a reconstruction filter is supported.
func ValidateFilter(name string) error {
	if !ValidFilters[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid reconstruction filter: %q (must be one of: box, gaussian, mitchell, tent)", name)
	}
	return nil
}

// ValidateResolution checks one image dimension.
func ValidateResolution(name string, v int) error {
	if v < 1 || v > MaxResolution {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be between 1 and %d, got %d", name, MaxResolution, v)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutputPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output path is required")
	}
	o.SetDefaults()

	if err := ValidateIntegrator(o.Integrator); err != nil {
		return err
	}
	if err := ValidateFilter(o.ReconstructionFilter); err != nil {
		return err
	}
	if o.SampleCount < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "sample count must be at least 1, got %d", o.SampleCount)
	}
	if err := ValidateResolution("width", o.Width); err != nil {
		return err
	}
	if err := ValidateResolution("height", o.Height); err != nil {
		return err
	}
	format, err := texture.ParseFormat(string(o.TextureFormat))
	if err != nil {
		return err
	}
	o.TextureFormat = format
	if o.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be at least 1, got %d", o.Workers)
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Integrator == "" {
		o.Integrator = DefaultIntegrator
	}
	if o.SampleCount == 0 {
		o.SampleCount = DefaultSampleCount
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.ReconstructionFilter == "" {
		o.ReconstructionFilter = DefaultFilter
	}
	if o.TextureFormat == "" {
		o.TextureFormat = DefaultTextureFormat
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.Mapping == nil {
		o.Mapping = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Settings returns the renderer settings for s, taking the scene's own
// sample count and resolution when requested.
func (o *Options) Settings(s *scene.Scene) nori.Settings {
	st := nori.Settings{
		Integrator:           o.Integrator,
		SampleCount:          o.SampleCount,
		Width:                o.Width,
		Height:               o.Height,
		ReconstructionFilter: o.ReconstructionFilter,
		PointLights:          o.ExportPointLights,
	}
	if o.UseSceneSamples && s.Render.Samples > 0 {
		st.SampleCount = s.Render.Samples
	}
	if o.UseSceneResolution && s.Render.Width > 0 && s.Render.Height > 0 {
		st.Width = s.Render.Width
		st.Height = s.Render.Height
	}
	return st
}

// LoadPreset reads export options from a TOML file. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadPreset(path string) (Options, error) {
	var o Options
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
		}
		return o, errors.Wrap(errors.ErrCodeIO, err, "read preset %s", path)
	}
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return o, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse preset %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return o, errors.New(errors.ErrCodeInvalidConfig, "preset %s: unknown key %q", path, undecoded[0].String())
	}
	return o, nil
}
