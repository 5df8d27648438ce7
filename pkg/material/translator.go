package material

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/thecodec/bento/pkg/config"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
)

// Outcome reports how a material translation ended.
type Outcome int

const (
	// Translated means an element was produced.
	Translated Outcome = iota
	// NodesDisabled means the material does not use node shading.
	NodesDisabled
	// NoOutput means the graph has no material output node.
	NoOutput
	// SurfaceUnlinked means nothing is connected to the output's Surface.
	SurfaceUnlinked
	// Untranslatable means the surface shader itself has no mapping.
	Untranslatable
)

func (o Outcome) String() string {
	switch o {
	case Translated:
		return "translated"
	case NodesDisabled:
		return "nodes disabled"
	case NoOutput:
		return "no output node"
	case SurfaceUnlinked:
		return "surface unlinked"
	case Untranslatable:
		return "untranslatable"
	}
	return "unknown"
}

// TextureExporter writes the image behind a texture node to the output
// directory and returns the written path.
type TextureExporter interface {
	Export(ctx context.Context, node *scene.Node) (string, error)
}

// Options configures a Translator.
type Options struct {
	// ExportTextures makes TEX_IMAGE nodes translatable.
	ExportTextures bool

	// Textures receives texture nodes when ExportTextures is set.
	Textures TextureExporter

	// Overrides replaces the per-kind conversion table. Nil selects
	// DefaultOverrides.
	Overrides map[string]Override

	// Workers bounds concurrent materials in TranslateAll. Values below 1
	// mean sequential.
	Workers int

	Logger *log.Logger
}

// Translator converts material node graphs into Nori elements.
type Translator struct {
	mapping   *config.Mapping
	opts      Options
	overrides map[string]Override
	logger    *log.Logger
}

// New returns a Translator driven by mapping. A nil mapping behaves like an
// empty one: nothing is translatable.
func New(mapping *config.Mapping, opts Options) *Translator {
	if mapping == nil {
		mapping = &config.Mapping{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	overrides := opts.Overrides
	if overrides == nil {
		overrides = DefaultOverrides()
	}
	return &Translator{
		mapping:   mapping,
		opts:      opts,
		overrides: overrides,
		logger:    opts.Logger,
	}
}

// Translate converts m into a single element tree. It returns nil and the
// reason when the material cannot produce one.
func (t *Translator) Translate(ctx context.Context, m *scene.Material) (*nori.Element, Outcome) {
	logger := t.logger.With("material", m.Name)

	if !m.UseNodes {
		logger.Info("material does not use nodes, skipping")
		return nil, NodesDisabled
	}
	out := m.Output()
	if out == nil {
		logger.Info("material has no output node, skipping")
		return nil, NoOutput
	}
	surface := out.Input(scene.SurfaceInput)
	if surface == nil || !surface.Linked() || surface.Links[0].From == nil {
		logger.Info("material output has no surface shader, skipping")
		return nil, SurfaceUnlinked
	}

	w := &walk{
		t:       t,
		ctx:     ctx,
		logger:  logger,
		visited: make(map[*scene.Node]struct{}),
	}
	el := w.visit(surface.Links[0].From)
	if el == nil {
		logger.Info("surface shader is not translatable", "node", surface.Links[0].From.Name)
		return nil, Untranslatable
	}
	return el, Translated
}

// Batch holds the results of TranslateAll keyed by material name.
type Batch struct {
	Elements map[string]*nori.Element
	Outcomes map[string]Outcome
}

// TranslateAll translates every material. Elements only holds materials
// that produced one. When names repeat, the later material wins.
func (t *Translator) TranslateAll(ctx context.Context, materials []*scene.Material) (*Batch, error) {
	type result struct {
		el      *nori.Element
		outcome Outcome
	}
	results := make([]result, len(materials))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.opts.Workers, 1))
	for i, m := range materials {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			el, outcome := t.Translate(gctx, m)
			results[i] = result{el: el, outcome: outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Batch{
		Elements: make(map[string]*nori.Element, len(materials)),
		Outcomes: make(map[string]Outcome, len(materials)),
	}
	for i, m := range materials {
		if _, dup := b.Outcomes[m.Name]; dup {
			t.logger.Warn("duplicate material name, later definition wins", "material", m.Name)
		}
		b.Outcomes[m.Name] = results[i].outcome
		if results[i].el != nil {
			b.Elements[m.Name] = results[i].el
		} else {
			delete(b.Elements, m.Name)
		}
	}
	return b, nil
}

type walk struct {
	t       *Translator
	ctx     context.Context
	logger  *log.Logger
	visited map[*scene.Node]struct{}
}

// visit translates the subtree rooted at n in post-order. A node already
// visited in this walk yields nil.
func (w *walk) visit(n *scene.Node) *nori.Element {
	if _, seen := w.visited[n]; seen {
		return nil
	}
	w.visited[n] = struct{}{}

	var children []*nori.Element
	for _, s := range n.Inputs {
		for _, l := range s.Links {
			if l.From == nil {
				continue
			}
			child := w.visit(l.From)
			if child == nil {
				continue
			}
			if param, ok := w.t.mapping.Param(n.Kind, s.Name); ok {
				child.Set("name", param)
			}
			children = append(children, child)
		}
	}

	el, ok := w.t.convert(w.ctx, w.logger, n)
	if !ok {
		w.logger.Debug("dropping untranslatable node", "node", n.Name, "kind", n.Kind)
		return nil
	}
	return el.Append(children...)
}

// convert builds the element for a single node without its linked
// children.
func (t *Translator) convert(ctx context.Context, logger *log.Logger, n *scene.Node) (*nori.Element, bool) {
	tag, tagged := t.mapping.Tag(n.Kind)
	texture := n.Kind == scene.KindTexImage && t.opts.ExportTextures
	if !tagged && !texture {
		return nil, false
	}
	if !tagged {
		tag = DefaultTextureTag
	}

	el := nori.New(tag)
	if typ, ok := t.mapping.Type(n.Kind); ok {
		el.Set("type", typ)
	}

	if o, ok := t.overrides[n.Kind]; ok {
		return o(&Context{ctx: ctx, t: t, logger: logger}, n, el)
	}
	t.addScalars(logger, n, el)
	return el, true
}

// addScalars writes every unlinked, mapped input socket of n as a scalar
// child of el.
func (t *Translator) addScalars(logger *log.Logger, n *scene.Node, el *nori.Element) {
	for _, s := range n.Inputs {
		if s.Linked() {
			continue
		}
		param, ok := t.mapping.Param(n.Kind, s.Name)
		if !ok {
			continue
		}
		kind, ok := t.mapping.Scalar(s.Type)
		if !ok {
			logger.Debug("no scalar tag for socket type", "node", n.Name, "socket", s.Name, "type", s.Type)
			continue
		}
		el.AddScalar(kind, param, FormatValue(s.Default, kind))
	}
}
