package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/thecodec/bento/pkg/config"
	"github.com/thecodec/bento/pkg/io"
	"github.com/thecodec/bento/pkg/material"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/pipeline"
	"github.com/thecodec/bento/pkg/texture"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	pipeline.Options
	config        string // mapping file path or "builtin"
	preset        string // TOML file with export options
	textureFormat string // PNG or JPEG
	noCache       bool   // disable the texture cache
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{config: config.BuiltinName}

	cmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "Export a scene to a Nori scene file",
		Long: `Export a scene description (YAML or JSON) to a Nori scene file.

Meshes are written to a meshes/ directory next to the output, one OBJ per
material slot. With --textures, image texture nodes are converted into a
textures/ directory; unchanged textures are skipped on later runs.`,
		Example: `  bento export scene.yaml -o out/scene.xml
  bento export scene.yaml -o out/scene.xml --config nori.toml --textures
  bento export scene.yaml -o out/scene.xml --preset preview.toml --samples 16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.preset != "" {
				preset, err := pipeline.LoadPreset(opts.preset)
				if err != nil {
					return err
				}
				applyPreset(&opts, preset, cmd.Flags().Changed)
			}
			if opts.textureFormat != "" {
				opts.TextureFormat = texture.Format(opts.textureFormat)
			}
			return c.runExport(cmd.Context(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.OutputPath, "output", "o", "", "output scene file (required unless set by --preset)")
	f.StringVar(&opts.config, "config", opts.config, "mapping file, or \"builtin\" for the bundled mapping")
	f.StringVar(&opts.preset, "preset", "", "TOML file with export options (flags take precedence)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the texture cache")
	f.StringVar(&opts.Integrator, "integrator", pipeline.DefaultIntegrator, "Nori integrator")
	f.IntVar(&opts.SampleCount, "samples", pipeline.DefaultSampleCount, "samples per pixel")
	f.BoolVar(&opts.UseSceneSamples, "scene-samples", false, "use the scene's own sample count")
	f.IntVar(&opts.Width, "width", pipeline.DefaultWidth, "image width in pixels")
	f.IntVar(&opts.Height, "height", pipeline.DefaultHeight, "image height in pixels")
	f.BoolVar(&opts.UseSceneResolution, "scene-resolution", false, "use the scene's own resolution")
	f.StringVar(&opts.ReconstructionFilter, "filter", pipeline.DefaultFilter, "reconstruction filter: gaussian, box, tent, mitchell")
	f.BoolVar(&opts.ExportTextures, "textures", false, "export image textures")
	f.StringVar(&opts.textureFormat, "texture-format", string(pipeline.DefaultTextureFormat), "texture format: PNG, JPEG")
	f.BoolVar(&opts.ExportPointLights, "point-lights", false, "export point lights")
	f.IntVarP(&opts.Workers, "workers", "j", 1, "concurrent material and mesh workers")

	return cmd
}

// applyPreset copies preset values into opts for every flag the user did
// not set explicitly.
func applyPreset(opts *exportOpts, preset pipeline.Options, changed func(string) bool) {
	setString := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v int) {
		if !changed(flag) && v != 0 {
			*dst = v
		}
	}
	setBool := func(flag string, dst *bool, v bool) {
		if !changed(flag) && v {
			*dst = v
		}
	}

	setString("output", &opts.OutputPath, preset.OutputPath)
	setString("integrator", &opts.Integrator, preset.Integrator)
	setInt("samples", &opts.SampleCount, preset.SampleCount)
	setBool("scene-samples", &opts.UseSceneSamples, preset.UseSceneSamples)
	setInt("width", &opts.Width, preset.Width)
	setInt("height", &opts.Height, preset.Height)
	setBool("scene-resolution", &opts.UseSceneResolution, preset.UseSceneResolution)
	setString("filter", &opts.ReconstructionFilter, preset.ReconstructionFilter)
	setBool("textures", &opts.ExportTextures, preset.ExportTextures)
	setString("texture-format", &opts.textureFormat, string(preset.TextureFormat))
	setBool("point-lights", &opts.ExportPointLights, preset.ExportPointLights)
	setInt("workers", &opts.Workers, preset.Workers)
}

// runExport loads the scene and mapping and runs the export pipeline.
func (c *CLI) runExport(ctx context.Context, input string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := io.ImportScene(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d materials, %d objects", input, len(s.Materials), len(s.Objects))

	mapping, err := config.Resolve(opts.config)
	if err != nil {
		return err
	}
	if mapping.Empty() {
		logger.Warnf("Mapping %s is empty or missing; no materials will be exported", opts.config)
	}
	for _, key := range mapping.UnknownKeys() {
		logger.Warnf("Mapping %s: unknown table %q", opts.config, key)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := opts.Options
	po.Mapping = mapping
	po.Logger = logger
	result, err := runner.Export(ctx, s, po)
	if err != nil {
		return err
	}
	prog.done("Export complete")

	printSuccess("Exported %s", result.OutputPath)
	printExportStats(result)
	printOutcomes(result.Outcomes)
	printFile(result.OutputPath)
	for _, p := range result.Parts {
		printFile(filepath.Join(filepath.Dir(result.OutputPath), nori.MeshDir, p.File))
	}
	return nil
}

// printExportStats prints material, mesh and texture counts on one line.
func printExportStats(r *pipeline.Result) {
	parts := []string{
		fmt.Sprintf("%d/%d materials", r.Stats.Translated, r.Stats.Materials),
		fmt.Sprintf("%d meshes", r.Stats.MeshParts),
	}
	if n := r.Textures.Written + r.Textures.Cached; n > 0 {
		parts = append(parts, fmt.Sprintf("%d textures (%d cached)", n, r.Textures.Cached))
	}
	printStats(parts...)
}

// printOutcomes lists materials that were not translated, sorted by name.
func printOutcomes(outcomes map[string]material.Outcome) {
	names := make([]string, 0, len(outcomes))
	for name, o := range outcomes {
		if o != material.Translated {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		printWarning("%s: %s", name, outcomes[name])
	}
}
