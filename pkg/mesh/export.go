package mesh

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
)

// Part is one written mesh file.
type Part struct {
	Object   string
	File     string // file name inside the meshes directory
	Material string // "" when the object has no material slots
}

// Ref returns the scene document reference for the part.
func (p Part) Ref() nori.MeshRef {
	return nori.MeshRef{File: p.File, Material: p.Material}
}

// Exporter writes mesh objects below Dir/meshes.
type Exporter struct {
	Dir     string
	Workers int
	Logger  *log.Logger
}

// NewExporter returns an exporter rooted at dir.
func NewExporter(dir string, workers int, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Exporter{Dir: dir, Workers: workers, Logger: logger}
}

// Export writes every MESH object and returns the parts in object order.
func (e *Exporter) Export(ctx context.Context, objects []*scene.Object) ([]Part, error) {
	meshDir := filepath.Join(e.Dir, nori.MeshDir)
	if err := os.MkdirAll(meshDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", meshDir)
	}

	parts := make([][]Part, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Workers, 1))
	for i, obj := range objects {
		if obj.Type != scene.ObjectMesh || obj.Mesh == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := e.exportObject(meshDir, obj)
			parts[i] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Part
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (e *Exporter) exportObject(meshDir string, obj *scene.Object) ([]Part, error) {
	var parts []Part
	for _, sm := range Split(obj) {
		if err := errors.ValidateFileStem(sm.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "object %q", obj.Name)
		}
		file := sm.Name + ".obj"
		if err := writeFile(filepath.Join(meshDir, file), &sm); err != nil {
			return nil, err
		}
		e.Logger.Debug("wrote mesh", "object", obj.Name, "file", file, "faces", len(sm.Faces))
		parts = append(parts, Part{Object: obj.Name, File: file, Material: sm.Material})
	}
	if len(parts) == 0 {
		e.Logger.Warn("mesh has no faces in any material slot", "object", obj.Name)
	}
	return parts, nil
}

func writeFile(path string, sm *Submesh) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteOBJ(f, sm); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
