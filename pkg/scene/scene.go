package scene

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
)

// Well-known node kinds.
const (
	KindOutputMaterial = "OUTPUT_MATERIAL"
	KindEmission       = "EMISSION"
	KindGlossy         = "BSDF_GLOSSY"
	KindTexImage       = "TEX_IMAGE"
)

// SurfaceInput is the output node socket that receives the shader.
const SurfaceInput = "Surface"

// Object types.
const (
	ObjectMesh   = "MESH"
	ObjectLight  = "LIGHT"
	ObjectCamera = "CAMERA"
)

// Light types.
const LightPoint = "POINT"

// Scene is a fully evaluated scene ready for export.
type Scene struct {
	// Source is the file the scene was loaded from, if any. Relative image
	// paths resolve against its directory.
	Source    string
	Render    Render
	Camera    *Camera
	Materials []*Material
	Objects   []*Object
}

// Render holds the host's render settings, used when an export asks for
// the scene's own sample count or resolution.
type Render struct {
	Engine  string
	Samples int
	Width   int
	Height  int
}

// Camera is the active scene camera.
type Camera struct {
	Name        string
	Angle       float64 // horizontal field of view in radians
	MatrixWorld mgl64.Mat4
}

// Material is a named shader graph.
type Material struct {
	Name     string
	UseNodes bool
	Nodes    []*Node
}

// Node is one shader node in a material graph.
type Node struct {
	Name   string
	Kind   string
	Inputs []*Socket
	Image  *Image // set on texture nodes
}

// Socket is a named node input.
type Socket struct {
	Name    string
	Type    string // host data type: RGBA, VALUE, INT, SHADER, ...
	Default Value
	Links   []Link
}

// Link connects the output of From to the socket that owns the link.
type Link struct {
	From       *Node
	FromSocket string
}

// Image is the source image of a texture node.
type Image struct {
	Name string
	// Path is the on-disk location of the image, relative to the scene file
	// unless absolute.
	Path string
	// Data holds packed image bytes when the host embeds them in the scene.
	Data []byte
}

// Object is a scene object.
type Object struct {
	Name        string
	Type        string
	MatrixWorld mgl64.Mat4
	Location    mgl64.Vec3
	Mesh        *Mesh
	Light       *Light
}

// Mesh is evaluated geometry in object space.
type Mesh struct {
	Vertices  []mgl64.Vec3
	UVs       []mgl64.Vec2
	Faces     []Face
	Materials []string // material slot names, indexed by Face.Material
}

// Face is one polygon. UV holds indices into Mesh.UVs, parallel to Vertices,
// or is empty when the mesh has no UV layer.
type Face struct {
	Vertices []int
	UV       []int
	Material int
}

// Light is a lamp attached to an object.
type Light struct {
	Type      string
	Color     mgl64.Vec3
	Energy    float64
	Normalize bool
}

// Output returns the first material output node, or nil.
func (m *Material) Output() *Node {
	for _, n := range m.Nodes {
		if n.Kind == KindOutputMaterial {
			return n
		}
	}
	return nil
}

// Node returns the node with the given name, or nil.
func (m *Material) Node(name string) *Node {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Input returns the named input socket, or nil.
func (n *Node) Input(name string) *Socket {
	for _, s := range n.Inputs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Linked reports whether the socket has at least one incoming link.
func (s *Socket) Linked() bool { return len(s.Links) > 0 }

// Dir returns the directory relative image paths resolve against.
func (s *Scene) Dir() string {
	if s.Source == "" {
		return "."
	}
	return filepath.Dir(s.Source)
}

// Material returns the material with the given name, or nil.
func (s *Scene) Material(name string) *Material {
	for _, m := range s.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}
