package nori

import (
	"io"
	"path"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/thecodec/bento/pkg/scene"
)

// MeshDir is the directory, relative to the scene document, that holds
// exported OBJ files.
const MeshDir = "meshes"

// matrixPrecision is the rounding applied to camera matrix entries.
const matrixPrecision = 6

// hostPi is the approximation of pi the exporter has always used for the
// radians-to-degrees conversion. Kept as a variable so the division happens
// in float64 arithmetic, matching existing exports bit for bit.
var hostPi = 3.14159265

// Settings are the renderer-level parameters of a scene document.
type Settings struct {
	Integrator           string
	SampleCount          int
	Width                int
	Height               int
	ReconstructionFilter string
	PointLights          bool
}

// MeshRef is an exported mesh file and the material assigned to it.
type MeshRef struct {
	File     string // file name inside MeshDir
	Material string // "" when the mesh has no material slot
}

// Assembler builds the top-level scene document.
type Assembler struct {
	Settings Settings
	Logger   *log.Logger
}

// NewAssembler returns an assembler; a nil logger discards output.
func NewAssembler(s Settings, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Assembler{Settings: s, Logger: logger}
}

// Build assembles the <scene> element. Material elements are cloned for
// each mesh that references them, so the caller's map is left untouched.
func (a *Assembler) Build(cam *scene.Camera, meshes []MeshRef, materials map[string]*Element, objects []*scene.Object) *Element {
	root := New("scene")
	root.Append(Typed("integrator", a.Settings.Integrator))

	sampler := Typed("sampler", "independent")
	sampler.AddScalar("integer", "sampleCount", strconv.Itoa(a.Settings.SampleCount))
	root.Append(sampler)

	if cam != nil {
		root.Append(a.camera(cam))
	}

	for _, m := range meshes {
		if el := a.mesh(m, materials); el != nil {
			root.Append(el)
		}
	}

	if a.Settings.PointLights {
		for _, obj := range objects {
			if el := pointLight(obj); el != nil {
				root.Append(el)
			}
		}
	}
	return root
}

func (a *Assembler) camera(cam *scene.Camera) *Element {
	el := Typed("camera", "perspective")
	el.AddScalar("float", "fov", FormatFloat(cam.Angle*(180.0/hostPi)))
	el.AddScalar("integer", "width", strconv.Itoa(a.Settings.Width))
	el.AddScalar("integer", "height", strconv.Itoa(a.Settings.Height))

	transform := New("transform", Attr{Name: "name", Value: "toWorld"})
	transform.Append(New("scale", Attr{Name: "value", Value: "1 1 -1"}))
	transform.Append(New("matrix", Attr{Name: "value", Value: formatMatrix(cam)}))
	el.Append(transform)

	el.Append(Typed("rfilter", a.Settings.ReconstructionFilter))
	return el
}

// formatMatrix lists the world matrix row by row.
func formatMatrix(cam *scene.Camera) string {
	values := make([]float64, 0, 16)
	for row := range 4 {
		for col := range 4 {
			values = append(values, cam.MatrixWorld.At(row, col))
		}
	}
	return FormatList(values, matrixPrecision, " ")
}

func (a *Assembler) mesh(m MeshRef, materials map[string]*Element) *Element {
	if m.Material == "" {
		// Meshes without a material slot are not exported until a default
		// material is defined.
		a.Logger.Debug("skipping mesh without material", "file", m.File)
		return nil
	}
	el := Typed("mesh", "obj")
	el.AddScalar("string", "filename", path.Join(MeshDir, m.File))

	mat, ok := materials[m.Material]
	if !ok || mat == nil {
		a.Logger.Warn("material not exported; mesh uses renderer default", "file", m.File, "material", m.Material)
		return el
	}
	return el.Append(mat.Clone())
}

func pointLight(obj *scene.Object) *Element {
	if obj.Type != scene.ObjectLight || obj.Light == nil || obj.Light.Type != scene.LightPoint {
		return nil
	}
	l := obj.Light
	strength := l.Energy
	if !l.Normalize {
		strength *= 4
	}
	power := []float64{l.Color[0] * strength, l.Color[1] * strength, l.Color[2] * strength}

	el := Typed("emitter", "point")
	el.AddScalar("point", "position", FormatList(obj.Location[:], Precision, " "))
	el.AddScalar("color", "power", FormatColor(power))
	return el
}
