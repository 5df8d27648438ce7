// Package mesh writes scene geometry as Wavefront OBJ files.
//
// Each mesh object is transformed into world space and split by material
// slot. Every slot that owns at least one face becomes its own file,
// meshes/<object>_<material>.obj, so the scene document can attach one
// material per mesh. Objects without material slots are written whole to
// meshes/<object>.obj.
//
// Files contain o, v, vt and f records. Faces reference texture
// coordinates (v/vt) only when the mesh has a UV layer. Axes are written as
// the host stores them (Z up).
package mesh
