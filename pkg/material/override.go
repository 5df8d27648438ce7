package material

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
)

// DefaultTextureTag is the element tag of texture nodes whose kind has no
// node_tag_map entry.
const DefaultTextureTag = "texture"

// MirrorThreshold is the alpha below which a glossy BSDF is written as a
// perfect mirror.
const MirrorThreshold = 1e-5

// Context gives an Override access to the running translation.
type Context struct {
	ctx    context.Context
	t      *Translator
	logger *log.Logger
}

// Context returns the context of the Translate call.
func (c *Context) Context() context.Context { return c.ctx }

// Logger returns the material-scoped logger.
func (c *Context) Logger() *log.Logger { return c.logger }

// Scalars writes the generic scalar children of n onto el.
func (c *Context) Scalars(n *scene.Node, el *nori.Element) {
	c.t.addScalars(c.logger, n, el)
}

// Override converts one node kind. el comes prefilled with the mapped tag
// and type; the override may extend or replace it. Children translated
// from linked inputs are appended to the returned element. Returning false
// marks the node untranslatable.
type Override func(c *Context, n *scene.Node, el *nori.Element) (*nori.Element, bool)

// DefaultOverrides returns a fresh copy of the built-in override table.
func DefaultOverrides() map[string]Override {
	return map[string]Override{
		scene.KindEmission: emission,
		scene.KindGlossy:   glossy,
		scene.KindTexImage: texImage,
	}
}

func emission(c *Context, n *scene.Node, el *nori.Element) (*nori.Element, bool) {
	var rgb [3]float64
	if s := n.Input("Color"); s != nil {
		rgb = s.Default.RGB()
	}
	strength := 1.0
	if s := n.Input("Strength"); s != nil {
		strength = s.Default.Scalar()
	}
	radiance := []float64{rgb[0] * strength, rgb[1] * strength, rgb[2] * strength}
	el.AddScalar(KindColor, "radiance", nori.FormatColor(radiance))
	return el, true
}

func glossy(c *Context, n *scene.Node, el *nori.Element) (*nori.Element, bool) {
	var roughness float64
	if s := n.Input("Roughness"); s != nil {
		roughness = s.Default.Scalar()
	}
	alpha := roughness * roughness
	if alpha < MirrorThreshold {
		return nori.Typed("bsdf", "mirror"), true
	}
	el.AddScalar(KindFloat, "alpha", nori.FormatRounded(alpha, nori.Precision))
	el.AddScalar(KindColor, "kd", "0,0,0")
	return el, true
}

func texImage(c *Context, n *scene.Node, el *nori.Element) (*nori.Element, bool) {
	if !c.t.opts.ExportTextures {
		return nil, false
	}
	if c.t.opts.Textures == nil {
		c.logger.Warn("texture export enabled without an exporter", "node", n.Name)
		return el, true
	}
	path, err := c.t.opts.Textures.Export(c.ctx, n)
	if err != nil {
		c.logger.Warn("texture export failed", "node", n.Name, "error", err)
		return el, true
	}
	c.logger.Debug("exported texture", "node", n.Name, "path", path)
	return el, true
}
