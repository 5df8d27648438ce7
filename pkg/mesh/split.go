package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/thecodec/bento/pkg/scene"
)

// Submesh is a self-contained piece of a mesh with compact indices.
type Submesh struct {
	Name     string
	Material string // "" for objects without material slots
	Vertices []mgl64.Vec3
	UVs      []mgl64.Vec2
	Faces    []scene.Face
}

// World returns the object's mesh with every vertex transformed by its
// world matrix.
func World(obj *scene.Object) *scene.Mesh {
	src := obj.Mesh
	m := &scene.Mesh{
		Vertices:  make([]mgl64.Vec3, len(src.Vertices)),
		UVs:       src.UVs,
		Faces:     src.Faces,
		Materials: src.Materials,
	}
	for i, v := range src.Vertices {
		m.Vertices[i] = obj.MatrixWorld.Mul4x1(v.Vec4(1)).Vec3()
	}
	return m
}

// Split divides obj into submeshes, one per material slot that owns faces.
// Objects without slots yield a single submesh named after the object.
func Split(obj *scene.Object) []Submesh {
	if obj.Mesh == nil {
		return nil
	}
	m := World(obj)
	if len(m.Materials) == 0 {
		return []Submesh{{
			Name:     obj.Name,
			Vertices: m.Vertices,
			UVs:      m.UVs,
			Faces:    m.Faces,
		}}
	}

	var out []Submesh
	for slot, material := range m.Materials {
		sm, ok := extract(m, slot)
		if !ok {
			continue
		}
		sm.Name = obj.Name + "_" + material
		sm.Material = material
		out = append(out, sm)
	}
	return out
}

// extract copies the faces assigned to slot, remapping vertex and UV
// indices in first-use order.
func extract(m *scene.Mesh, slot int) (Submesh, bool) {
	var sm Submesh
	verts := make(map[int]int)
	uvs := make(map[int]int)

	for _, f := range m.Faces {
		if f.Material != slot {
			continue
		}
		face := scene.Face{Vertices: make([]int, len(f.Vertices)), Material: 0}
		for i, vi := range f.Vertices {
			ni, ok := verts[vi]
			if !ok {
				ni = len(sm.Vertices)
				verts[vi] = ni
				sm.Vertices = append(sm.Vertices, m.Vertices[vi])
			}
			face.Vertices[i] = ni
		}
		if len(f.UV) > 0 {
			face.UV = make([]int, len(f.UV))
			for i, ui := range f.UV {
				ni, ok := uvs[ui]
				if !ok {
					ni = len(sm.UVs)
					uvs[ui] = ni
					sm.UVs = append(sm.UVs, m.UVs[ui])
				}
				face.UV[i] = ni
			}
		}
		sm.Faces = append(sm.Faces, face)
	}
	return sm, len(sm.Faces) > 0
}
