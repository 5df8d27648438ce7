// Package config loads the node mapping tables that drive material export.
//
// # File Format
//
// The mapping file is TOML with four required top-level tables:
//
//	[node_tag_map]          # node kind -> XML element tag
//	BSDF_DIFFUSE = "bsdf"
//
//	[node_map]              # node kind -> type="..." attribute
//	BSDF_DIFFUSE = "diffuse"
//
//	[parameter_map]         # node kind -> socket name -> parameter name
//	BSDF_DIFFUSE = { Color = "albedo" }
//
//	[type_map]              # socket data type -> scalar tag
//	RGBA = "color"
//	VALUE = "float"
//
// # Loading
//
// [Load] treats a missing file as an empty [Mapping]: every node becomes
// untranslatable and the export contains no materials. A file that exists
// but lacks one of the tables is rejected up front with
// errors.ErrCodeInvalidConfig so lookups never fail halfway through a run.
//
// [Default] returns the built-in mapping, which covers the shader nodes the
// Nori renderer understands out of the box.
package config
