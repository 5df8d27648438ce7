package texture

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/thecodec/bento/pkg/cache"
	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/observability"
	"github.com/thecodec/bento/pkg/scene"
)

// Dir is the texture directory inside the export directory.
const Dir = "textures"

const keyType = "texture"

// Options configures an Exporter.
type Options struct {
	// OutputDir is the export directory; files go to OutputDir/textures.
	OutputDir string
	// SceneDir resolves relative image paths.
	SceneDir string
	Format   Format
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// Stats counts exporter activity.
type Stats struct {
	Written int
	Cached  int
}

// Exporter writes texture node images to the export directory.
type Exporter struct {
	opts Options

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	sources map[string]string // stem -> source hash

	written atomic.Int64
	cached  atomic.Int64
}

// NewExporter returns an exporter. Missing options fall back to PNG output,
// no caching and a discarding logger.
func NewExporter(opts Options) *Exporter {
	if opts.Format == "" {
		opts.Format = PNG
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.SceneDir == "" {
		opts.SceneDir = "."
	}
	return &Exporter{
		opts:    opts,
		locks:   make(map[string]*sync.Mutex),
		sources: make(map[string]string),
	}
}

// Stats returns counts of written and cache-skipped textures.
func (e *Exporter) Stats() Stats {
	return Stats{Written: int(e.written.Load()), Cached: int(e.cached.Load())}
}

// Export writes the node's image and returns its path relative to the
// export directory. Nodes without an image are ignored.
func (e *Exporter) Export(ctx context.Context, node *scene.Node) (string, error) {
	img := node.Image
	if img == nil {
		return "", nil
	}
	stem := Stem(img)
	if err := errors.ValidateFileStem(stem); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "texture %q", img.Name)
	}

	data, err := e.source(img)
	if err != nil {
		return "", err
	}
	srcHash := cache.Hash(data)

	lock := e.lock(stem, srcHash)
	lock.Lock()
	defer lock.Unlock()

	rel := path.Join(Dir, stem+"."+e.opts.Format.Ext())
	out := filepath.Join(e.opts.OutputDir, filepath.FromSlash(rel))
	key := e.opts.Keyer.TextureKey(srcHash, cache.TextureKeyOpts{Format: string(e.opts.Format), Stem: stem})

	if e.current(ctx, key, out) {
		observability.Cache().OnCacheHit(ctx, keyType)
		e.cached.Add(1)
		e.opts.Logger.Debug("texture unchanged", "image", img.Name, "path", rel)
		return rel, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image %q", img.Name)
	}
	var buf bytes.Buffer
	if err := e.opts.Format.encode(&buf, decoded); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode image %q", img.Name)
	}
	if err := writeAtomic(out, buf.Bytes()); err != nil {
		return "", err
	}
	e.written.Add(1)

	outHash := []byte(cache.Hash(buf.Bytes()))
	if err := e.opts.Cache.Set(ctx, key, outHash, 0); err != nil {
		e.opts.Logger.Warn("texture cache write failed", "image", img.Name, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyType, len(outHash))
	}
	return rel, nil
}

// Stem returns the output file stem for img: its name, or its file name
// without extension when unnamed.
func Stem(img *scene.Image) string {
	if img.Name != "" {
		return strings.TrimSuffix(img.Name, filepath.Ext(img.Name))
	}
	base := filepath.Base(filepath.FromSlash(img.Path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (e *Exporter) source(img *scene.Image) ([]byte, error) {
	if len(img.Data) > 0 {
		return img.Data, nil
	}
	p := filepath.FromSlash(img.Path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.opts.SceneDir, p)
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %q", img.Name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read image %q", img.Name)
	}
	return data, nil
}

// lock returns the mutex guarding one output stem and warns when two
// different sources claim it.
func (e *Exporter) lock(stem, srcHash string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prev, ok := e.sources[stem]; ok && prev != srcHash {
		e.opts.Logger.Warn("different images share a texture name; last one wins", "stem", stem)
	}
	e.sources[stem] = srcHash
	l, ok := e.locks[stem]
	if !ok {
		l = &sync.Mutex{}
		e.locks[stem] = l
	}
	return l
}

// current reports whether out still holds the output recorded under key.
func (e *Exporter) current(ctx context.Context, key, out string) bool {
	want, hit, err := e.opts.Cache.Get(ctx, key)
	if err != nil || !hit {
		return false
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return false
	}
	return cache.Hash(data) == string(want)
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(path))
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeIO, err, "rename %s", path)
	}
	return nil
}
