// Package material translates shader node graphs into Nori scene elements.
//
// # Overview
//
// A [Translator] walks a material's node graph depth-first, starting at the
// node linked to the material output's Surface input, and builds one
// [nori.Element] tree per material. Which nodes become which elements is
// decided entirely by a [config.Mapping]:
//
//   - node_tag_map picks the element tag for a node kind
//   - node_map picks its type attribute
//   - parameter_map names sockets, both for unlinked sockets written as
//     scalar parameters and for linked sockets whose child element is
//     nested under the consumer
//   - type_map picks the scalar tag for a socket data type
//
// # Best Effort
//
// Translation never fails. A node kind with no tag drops the subtree rooted
// at that node; the rest of the material is still exported. A material
// without node shading, without an output node, or with nothing linked to
// Surface yields no element at all, reported through [Outcome].
//
// # Overrides
//
// A few node kinds need renderer-specific arithmetic instead of the
// table-driven parameter copy. They are handled by [Override] functions
// registered per kind; see [DefaultOverrides]:
//
//   - EMISSION writes radiance = color × strength
//   - BSDF_GLOSSY writes alpha = roughness², or becomes a mirror when
//     alpha is below [MirrorThreshold]; linked inputs still nest under it
//   - TEX_IMAGE hands the image to a [TextureExporter]
//
// # Shared Nodes
//
// A node reachable through several links is translated once. The first
// consumer (in socket order) receives the element; later consumers receive
// nothing. Existing exports rely on this, so it is kept as is.
//
// # Concurrency
//
// Translate keeps all traversal state on the stack of the call, so one
// Translator may be used from several goroutines. [Translator.TranslateAll]
// uses that to translate materials in parallel when Workers > 1.
package material
