package material

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodec/bento/pkg/config"
	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
)

func node(name, kind string, inputs ...*scene.Socket) *scene.Node {
	return &scene.Node{Name: name, Kind: kind, Inputs: inputs}
}

func socket(name, typ string, def scene.Value, from ...*scene.Node) *scene.Socket {
	s := &scene.Socket{Name: name, Type: typ, Default: def}
	for _, n := range from {
		s.Links = append(s.Links, scene.Link{From: n, FromSocket: "BSDF"})
	}
	return s
}

// material wires surface into a fresh output node.
func material(name string, surface *scene.Node, extra ...*scene.Node) *scene.Material {
	out := node("Material Output", scene.KindOutputMaterial, socket(scene.SurfaceInput, "SHADER", scene.Value{}, surface))
	nodes := append([]*scene.Node{out, surface}, extra...)
	return &scene.Material{Name: name, UseNodes: true, Nodes: nodes}
}

func diffuse(name string, rgba ...float64) *scene.Node {
	return node(name, "BSDF_DIFFUSE", socket("Color", "RGBA", scene.Vector(rgba...)))
}

func translate(t *testing.T, tr *Translator, m *scene.Material) *nori.Element {
	t.Helper()
	el, outcome := tr.Translate(context.Background(), m)
	require.Equal(t, Translated, outcome)
	require.NotNil(t, el)
	return el
}

func TestTranslateDiffuse(t *testing.T) {
	tr := New(config.Default(), Options{})
	el := translate(t, tr, material("Red", diffuse("Diffuse", 0.8, 0.1, 0.1, 1)))

	assert.Equal(t, "<bsdf type=\"diffuse\">\n  <color name=\"albedo\" value=\"0.8,0.1,0.1\"/>\n</bsdf>\n", el.String())
}

func TestTranslateUnmappedKind(t *testing.T) {
	tr := New(config.Default(), Options{})
	_, outcome := tr.Translate(context.Background(), material("Toon", node("Toon", "BSDF_TOON")))
	assert.Equal(t, Untranslatable, outcome)
}

func TestTranslateEmptyMapping(t *testing.T) {
	tr := New(nil, Options{})
	el, outcome := tr.Translate(context.Background(), material("Red", diffuse("Diffuse", 1, 0, 0, 1)))
	assert.Nil(t, el)
	assert.Equal(t, Untranslatable, outcome)
}

func TestTranslateMissingSurface(t *testing.T) {
	tr := New(config.Default(), Options{})
	ctx := context.Background()

	disabled := material("Flat", diffuse("Diffuse", 1, 1, 1, 1))
	disabled.UseNodes = false
	_, outcome := tr.Translate(ctx, disabled)
	assert.Equal(t, NodesDisabled, outcome)

	noOutput := &scene.Material{Name: "Loose", UseNodes: true, Nodes: []*scene.Node{diffuse("Diffuse", 1, 1, 1, 1)}}
	_, outcome = tr.Translate(ctx, noOutput)
	assert.Equal(t, NoOutput, outcome)

	out := node("Material Output", scene.KindOutputMaterial, socket(scene.SurfaceInput, "SHADER", scene.Value{}))
	unlinked := &scene.Material{Name: "Unlinked", UseNodes: true, Nodes: []*scene.Node{out}}
	el, outcome := tr.Translate(ctx, unlinked)
	assert.Nil(t, el)
	assert.Equal(t, SurfaceUnlinked, outcome)
	assert.Equal(t, "surface unlinked", outcome.String())
}

func TestTranslateEmission(t *testing.T) {
	tr := New(config.Default(), Options{})
	emit := node("Emission", scene.KindEmission,
		socket("Color", "RGBA", scene.Vector(1, 0.5, 0.25, 1)),
		socket("Strength", "VALUE", scene.Float(2)),
	)
	el := translate(t, tr, material("Lamp", emit))

	assert.Equal(t, "emitter", el.Tag)
	assert.Equal(t, "area", el.Type())
	require.Len(t, el.Children, 1)
	assert.Equal(t, "radiance", el.Children[0].Name())
	assert.Equal(t, "2.0,1.0,0.5", mustValue(t, el.Children[0]))
}

func TestTranslateEmissionGray(t *testing.T) {
	tr := New(config.Default(), Options{})
	emit := node("Emission", scene.KindEmission,
		socket("Color", "RGBA", scene.Vector(0.5, 0.5, 0.5, 1)),
		socket("Strength", "VALUE", scene.Float(2)),
	)
	el := translate(t, tr, material("Lamp", emit))
	assert.Equal(t, "1.0,1.0,1.0", mustValue(t, el.Child("color", "radiance")))
}

func TestTranslateGlossy(t *testing.T) {
	// threshold squares to exactly MirrorThreshold; its float neighbours
	// square to the nearest values on either side.
	threshold := math.Sqrt(MirrorThreshold)
	require.Equal(t, MirrorThreshold, threshold*threshold)
	below, above := math.Nextafter(threshold, 0), math.Nextafter(threshold, 1)
	require.Less(t, below*below, MirrorThreshold)
	require.Greater(t, above*above, MirrorThreshold)

	tests := []struct {
		name      string
		roughness float64
		wantType  string
		wantAlpha string
	}{
		{"mirror", 0.003, "mirror", ""},
		{"zero", 0, "mirror", ""},
		{"threshold", threshold, "microfacet", "0.0"},
		{"just below threshold", below, "mirror", ""},
		{"just above threshold", above, "microfacet", "0.0"},
		{"rough", 0.5, "microfacet", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(config.Default(), Options{})
			glossy := node("Glossy", scene.KindGlossy,
				socket("Color", "RGBA", scene.Vector(1, 1, 1, 1)),
				socket("Roughness", "VALUE", scene.Float(tt.roughness)),
			)
			el := translate(t, tr, material("Metal", glossy))

			assert.Equal(t, "bsdf", el.Tag)
			assert.Equal(t, tt.wantType, el.Type())
			if tt.wantAlpha == "" {
				assert.Empty(t, el.Children)
				assert.Equal(t, "<bsdf type=\"mirror\"/>\n", el.String())
				return
			}
			require.Len(t, el.Children, 2)
			assert.Equal(t, tt.wantAlpha, mustValue(t, el.Child("float", "alpha")))
			assert.Equal(t, "0,0,0", mustValue(t, el.Child("color", "kd")))
		})
	}
}

func TestTranslateMirrorKeepsLinkedChildren(t *testing.T) {
	tr := New(config.Default(), Options{})
	tex := node("Checker", "TEX_CHECKER", socket("Scale", "VALUE", scene.Float(5)))
	glossy := node("Glossy", scene.KindGlossy,
		socket("Color", "RGBA", scene.Vector(1, 1, 1, 1), tex),
		socket("Roughness", "VALUE", scene.Float(0)),
	)
	el := translate(t, tr, material("Chrome", glossy, tex))

	assert.Equal(t, "mirror", el.Type())
	require.Len(t, el.Children, 1)
	assert.Equal(t, "texture", el.Children[0].Tag)
	assert.Equal(t, "checkerboard", el.Children[0].Type())
	assert.Equal(t, "kd", el.Children[0].Name())
	assert.Nil(t, el.Child("float", "alpha"))
	assert.Nil(t, el.Child("color", "kd"))
}

func TestTranslateNestedNaming(t *testing.T) {
	tr := New(config.Default(), Options{})
	checker := node("Checker", "TEX_CHECKER",
		socket("Color1", "RGBA", scene.Vector(1, 1, 1, 1)),
		socket("Color2", "RGBA", scene.Vector(0, 0, 0, 1)),
		socket("Scale", "VALUE", scene.Float(5)),
	)
	surface := node("Diffuse", "BSDF_DIFFUSE", socket("Color", "RGBA", scene.Vector(1, 1, 1, 1), checker))
	el := translate(t, tr, material("Checkered", surface, checker))

	want := `<bsdf type="diffuse">
  <texture type="checkerboard" name="albedo">
    <color name="value1" value="1.0,1.0,1.0"/>
    <color name="value2" value="0.0,0.0,0.0"/>
    <float name="scale" value="5.0"/>
  </texture>
</bsdf>
`
	assert.Equal(t, want, el.String())
}

func TestTranslateUnnamedChild(t *testing.T) {
	m, err := config.Parse([]byte(`
[node_tag_map]
MIX_SHADER = "bsdf"
BSDF_DIFFUSE = "bsdf"
[node_map]
MIX_SHADER = "mix"
BSDF_DIFFUSE = "diffuse"
[parameter_map]
[type_map]
VALUE = "float"
`))
	require.NoError(t, err)
	tr := New(m, Options{})

	a := diffuse("A", 1, 0, 0, 1)
	b := diffuse("B", 0, 1, 0, 1)
	mix := node("Mix", "MIX_SHADER",
		socket("Fac", "VALUE", scene.Float(0.5)),
		socket("Shader", "SHADER", scene.Value{}, a),
		socket("Shader_001", "SHADER", scene.Value{}, b),
	)
	el := translate(t, tr, material("Mix", mix, a, b))

	require.Len(t, el.Children, 2)
	assert.Equal(t, "", el.Children[0].Name())
	assert.Equal(t, "diffuse", el.Children[1].Type())
}

func TestTranslateDroppedSubtree(t *testing.T) {
	tr := New(config.Default(), Options{})
	noise := node("Noise", "TEX_NOISE", socket("Scale", "VALUE", scene.Float(5)))
	surface := node("Diffuse", "BSDF_DIFFUSE", socket("Color", "RGBA", scene.Vector(1, 1, 1, 1), noise))
	el := translate(t, tr, material("Noisy", surface, noise))

	// The linked socket is not written as a scalar and the unmapped child is gone.
	assert.Empty(t, el.Children)
}

func TestTranslateSharedNode(t *testing.T) {
	m, err := config.Parse([]byte(`
[node_tag_map]
MIX_SHADER = "bsdf"
BSDF_DIFFUSE = "bsdf"
[node_map]
MIX_SHADER = "mix"
BSDF_DIFFUSE = "diffuse"
[parameter_map]
MIX_SHADER = { Shader = "first", Shader_001 = "second" }
[type_map]
`))
	require.NoError(t, err)
	tr := New(m, Options{})

	shared := diffuse("Shared", 1, 1, 1, 1)
	mix := node("Mix", "MIX_SHADER",
		socket("Shader", "SHADER", scene.Value{}, shared),
		socket("Shader_001", "SHADER", scene.Value{}, shared),
	)
	el := translate(t, tr, material("Diamond", mix, shared))

	require.Len(t, el.Children, 1)
	assert.Equal(t, "first", el.Children[0].Name())
}

func TestTranslateSkipsUnknownScalarType(t *testing.T) {
	tr := New(config.Default(), Options{})
	surface := node("Diffuse", "BSDF_DIFFUSE", socket("Color", "CUSTOM", scene.Vector(1, 1, 1)))
	el := translate(t, tr, material("Odd", surface))
	assert.Empty(t, el.Children)
}

func TestTranslateIdempotent(t *testing.T) {
	tr := New(config.Default(), Options{})
	checker := node("Checker", "TEX_CHECKER", socket("Scale", "VALUE", scene.Float(5)))
	surface := node("Diffuse", "BSDF_DIFFUSE", socket("Color", "RGBA", scene.Vector(1, 1, 1, 1), checker))
	m := material("Checkered", surface, checker)

	first := translate(t, tr, m).String()
	second := translate(t, tr, m).String()
	assert.Equal(t, first, second)
}

type fakeTextures struct {
	mu    sync.Mutex
	nodes []string
	err   error
}

func (f *fakeTextures) Export(_ context.Context, n *scene.Node) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes = append(f.nodes, n.Name)
	if f.err != nil {
		return "", f.err
	}
	return "textures/" + n.Image.Name + ".png", nil
}

func texturedMaterial() *scene.Material {
	img := node("Image Texture", scene.KindTexImage, socket("Vector", "VECTOR", scene.Vector(0, 0, 0)))
	img.Image = &scene.Image{Name: "wood", Path: "wood.png"}
	surface := node("Diffuse", "BSDF_DIFFUSE", socket("Color", "RGBA", scene.Vector(1, 1, 1, 1), img))
	return material("Wood", surface, img)
}

func TestTranslateTexture(t *testing.T) {
	textures := &fakeTextures{}
	tr := New(config.Default(), Options{ExportTextures: true, Textures: textures})
	el := translate(t, tr, texturedMaterial())

	require.Len(t, el.Children, 1)
	tex := el.Children[0]
	assert.Equal(t, "texture", tex.Tag)
	assert.Equal(t, "image", tex.Type())
	assert.Equal(t, "albedo", tex.Name())
	assert.Empty(t, tex.Children)
	assert.Equal(t, []string{"Image Texture"}, textures.nodes)
}

func TestTranslateTextureDisabled(t *testing.T) {
	textures := &fakeTextures{}
	tr := New(config.Default(), Options{Textures: textures})
	el := translate(t, tr, texturedMaterial())

	assert.Empty(t, el.Children)
	assert.Empty(t, textures.nodes)
}

func TestTranslateTextureFailureKeepsElement(t *testing.T) {
	textures := &fakeTextures{err: errors.New("disk full")}
	tr := New(config.Default(), Options{ExportTextures: true, Textures: textures})
	el := translate(t, tr, texturedMaterial())

	require.Len(t, el.Children, 1)
	assert.Equal(t, "texture", el.Children[0].Tag)
}

func TestTranslateTextureDefaultTag(t *testing.T) {
	m, err := config.Parse([]byte(`
[node_tag_map]
BSDF_DIFFUSE = "bsdf"
[node_map]
BSDF_DIFFUSE = "diffuse"
[parameter_map]
BSDF_DIFFUSE = { Color = "albedo" }
[type_map]
`))
	require.NoError(t, err)
	tr := New(m, Options{ExportTextures: true, Textures: &fakeTextures{}})
	el := translate(t, tr, texturedMaterial())

	require.Len(t, el.Children, 1)
	assert.Equal(t, DefaultTextureTag, el.Children[0].Tag)
	_, typed := el.Children[0].Get("type")
	assert.False(t, typed)
}

func TestCustomOverride(t *testing.T) {
	overrides := DefaultOverrides()
	overrides["BSDF_DIFFUSE"] = func(c *Context, n *scene.Node, el *nori.Element) (*nori.Element, bool) {
		c.Scalars(n, el)
		el.AddScalar("float", "extra", "1.0")
		return el, true
	}
	tr := New(config.Default(), Options{Overrides: overrides})
	el := translate(t, tr, material("Red", diffuse("Diffuse", 1, 0, 0, 1)))

	require.Len(t, el.Children, 2)
	assert.Equal(t, "albedo", el.Children[0].Name())
	assert.Equal(t, "extra", el.Children[1].Name())
}

func TestTranslateAll(t *testing.T) {
	materials := []*scene.Material{
		material("Red", diffuse("Diffuse", 1, 0, 0, 1)),
		material("Toon", node("Toon", "BSDF_TOON")),
		material("Blue", diffuse("Diffuse", 0, 0, 1, 1)),
		material("Red", diffuse("Diffuse", 0, 1, 0, 1)),
	}

	sequential, err := New(config.Default(), Options{}).TranslateAll(context.Background(), materials)
	require.NoError(t, err)
	parallel, err := New(config.Default(), Options{Workers: 4}).TranslateAll(context.Background(), materials)
	require.NoError(t, err)

	require.Len(t, sequential.Elements, 2)
	assert.Equal(t, "0.0,1.0,0.0", mustValue(t, sequential.Elements["Red"].Child("color", "albedo")))
	assert.Equal(t, Untranslatable, sequential.Outcomes["Toon"])
	assert.Len(t, sequential.Outcomes, 3)

	for name, el := range sequential.Elements {
		assert.Equal(t, el.String(), parallel.Elements[name].String(), name)
	}
	assert.Equal(t, sequential.Outcomes, parallel.Outcomes)
}

func TestTranslateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(config.Default(), Options{}).TranslateAll(ctx, []*scene.Material{
		material("Red", diffuse("Diffuse", 1, 0, 0, 1)),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func mustValue(t *testing.T, e *nori.Element) string {
	t.Helper()
	require.NotNil(t, e)
	v, ok := e.Get("value")
	require.True(t, ok)
	return v
}
