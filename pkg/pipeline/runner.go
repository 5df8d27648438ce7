package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/thecodec/bento/pkg/cache"
	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/material"
	"github.com/thecodec/bento/pkg/mesh"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/observability"
	"github.com/thecodec/bento/pkg/scene"
	"github.com/thecodec/bento/pkg/texture"
)

// Stage names reported to observability hooks.
const (
	StageMaterials = "materials"
	StageMeshes    = "meshes"
	StageScene     = "scene"
)

// Runner encapsulates export execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store export results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Export writes s as a Nori scene to opts.OutputPath.
// A scene without a camera fails with NO_CAMERA before anything is written.
func (r *Runner) Export(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if s.Camera == nil {
		return nil, errors.New(errors.ErrCodeNoCamera, "no camera found in the scene")
	}

	result := &Result{
		RunID:      uuid.NewString(),
		OutputPath: opts.OutputPath,
	}
	hooks := observability.Export()
	start := time.Now()
	hooks.OnExportStart(ctx, result.RunID, opts.OutputPath)

	err := r.export(ctx, s, opts, result)
	result.Stats.TotalTime = time.Since(start)
	hooks.OnExportComplete(ctx, result.RunID, result.Stats.TotalTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("exported scene",
		"output", opts.OutputPath,
		"materials", result.Stats.Translated,
		"meshes", result.Stats.MeshParts,
		"textures", result.Textures.Written+result.Textures.Cached,
		"duration", result.Stats.TotalTime)
	return result, nil
}

func (r *Runner) export(ctx context.Context, s *scene.Scene, opts Options, result *Result) error {
	logger := opts.Logger.With("run", result.RunID[:8])
	dir := filepath.Dir(opts.OutputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	// Stage 1: Materials
	var textures *texture.Exporter
	var batch *material.Batch
	d, err := r.stage(ctx, StageMaterials, func() (int, error) {
		tr, tex, err := r.translator(s, opts, dir, logger)
		if err != nil {
			return 0, err
		}
		textures = tex
		batch, err = tr.TranslateAll(ctx, s.Materials)
		if err != nil {
			return 0, err
		}
		return len(batch.Elements), nil
	})
	if err != nil {
		return err
	}
	result.Stats.MaterialTime = d
	result.Outcomes = batch.Outcomes
	result.Stats.Materials = len(batch.Outcomes)
	result.Stats.Translated = len(batch.Elements)
	if textures != nil {
		result.Textures = textures.Stats()
	}
	hooks := observability.Export()
	for _, m := range s.Materials {
		hooks.OnMaterial(ctx, m.Name, batch.Outcomes[m.Name].String())
	}
	logger.Info("translated materials",
		"translated", result.Stats.Translated,
		"total", result.Stats.Materials,
		"duration", d)

	// Stage 2: Meshes
	d, err = r.stage(ctx, StageMeshes, func() (int, error) {
		parts, err := mesh.NewExporter(dir, opts.Workers, logger).Export(ctx, s.Objects)
		result.Parts = parts
		return len(parts), err
	})
	if err != nil {
		return err
	}
	result.Stats.MeshTime = d
	result.Stats.MeshParts = len(result.Parts)
	logger.Info("wrote meshes", "parts", len(result.Parts), "duration", d)

	// Stage 3: Scene
	d, err = r.stage(ctx, StageScene, func() (int, error) {
		refs := make([]nori.MeshRef, len(result.Parts))
		for i, p := range result.Parts {
			refs[i] = p.Ref()
		}
		doc := nori.NewAssembler(opts.Settings(s), logger).Build(s.Camera, refs, batch.Elements, s.Objects)
		result.Document = doc
		return doc.Count(), nori.WriteFile(opts.OutputPath, doc)
	})
	if err != nil {
		return err
	}
	result.Stats.SceneTime = d
	return nil
}

// translator builds the material translator, with a texture exporter when
// texture export is enabled.
func (r *Runner) translator(s *scene.Scene, opts Options, dir string, logger *log.Logger) (*material.Translator, *texture.Exporter, error) {
	topts := material.Options{
		ExportTextures: opts.ExportTextures,
		Workers:        opts.Workers,
		Logger:         logger,
	}
	var tex *texture.Exporter
	if opts.ExportTextures {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "resolve %s", dir)
		}
		if err := os.MkdirAll(filepath.Join(dir, texture.Dir), 0o755); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", texture.Dir)
		}
		tex = texture.NewExporter(texture.Options{
			OutputDir: dir,
			SceneDir:  s.Dir(),
			Format:    opts.TextureFormat,
			Cache:     r.Cache,
			Keyer:     cache.NewScopedKeyer(r.Keyer, "out:"+cache.Hash([]byte(abs))[:16]+":"),
			Logger:    logger,
		})
		topts.Textures = tex
	}
	return material.New(opts.Mapping, topts), tex, nil
}

// stage runs fn as a named stage, reporting to hooks. It refuses to start
// once ctx is done.
func (r *Runner) stage(ctx context.Context, name string, fn func() (int, error)) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	hooks := observability.Export()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	n, err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, n, d, err)
	if err != nil {
		return d, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
