package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/thecodec/bento/pkg/config"
	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/render"
	"github.com/thecodec/bento/pkg/scene"
)

// Options configures material graph rendering.
type Options struct {
	// Detailed includes unlinked socket defaults in node labels.
	Detailed bool

	// Mapping marks nodes without a tag as untranslatable. Nil disables
	// the marking.
	Mapping *config.Mapping

	// ExportTextures treats texture image nodes as translatable.
	ExportTextures bool
}

// ToDOT converts a material's node graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(m *scene.Material, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", m.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range m.Nodes {
		for _, s := range n.Inputs {
			for _, l := range s.Links {
				if l.From == nil {
					continue
				}
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.From.Name, n.Name, s.Name)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *scene.Node, detailed bool) string {
	label := n.Name + "\n" + n.Kind
	if !detailed {
		return label
	}

	var parts []string
	for _, s := range n.Inputs {
		if s.Linked() || s.Default.IsNone() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", s.Name, s.Default))
	}
	if n.Image != nil {
		parts = append(parts, "image: "+n.Image.Name)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *scene.Node, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Kind == scene.KindOutputMaterial:
		attrs = append(attrs, "fillcolor=lightblue")
	case opts.Mapping != nil && !translatable(n, opts):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey30")
	}
	return attrs
}

func translatable(n *scene.Node, opts Options) bool {
	if n.Kind == scene.KindTexImage {
		return opts.ExportTextures
	}
	_, ok := opts.Mapping.Tag(n.Kind)
	return ok
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
