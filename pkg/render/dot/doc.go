// Package dot renders material node graphs as Graphviz diagrams.
//
// [ToDOT] lays the graph out left to right, the way shader editors do:
// texture and input nodes on the left, the material output on the right.
// Each link becomes an edge labelled with the consuming socket. With
// [Options.Mapping] set, nodes the exporter cannot translate are drawn
// dashed and grey, which makes dropped subtrees easy to spot.
//
//	src := dot.ToDOT(m, dot.Options{Mapping: config.Default()})
//	svg, err := dot.RenderSVG(src)
package dot
