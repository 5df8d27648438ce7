// Package render provides visualization output for material graphs.
//
// # Overview
//
// Node graphs are easier to debug as pictures than as scene files. This
// package contains:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Material graph diagrams (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg), named by [Rasterizer].
//
//	svg, err := dot.RenderSVG(dot.ToDOT(m, dot.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Material Graphs
//
// The [dot] subpackage renders a material's node graph with Graphviz.
// Nodes appear as boxes labelled with name and kind, and links appear as
// arrows from the producing node to the consuming socket.
//
// [dot]: github.com/thecodec/bento/pkg/render/dot
package render
