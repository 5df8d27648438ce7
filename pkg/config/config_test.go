package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodec/bento/pkg/errors"
)

const sampleTOML = `
[node_tag_map]
BSDF_DIFFUSE = "bsdf"

[node_map]
BSDF_DIFFUSE = "diffuse"

[parameter_map]
BSDF_DIFFUSE = { Color = "albedo" }

[type_map]
RGBA = "color"
VALUE = "float"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleTOML))
	require.NoError(t, err)

	tag, ok := m.Tag("BSDF_DIFFUSE")
	assert.True(t, ok)
	assert.Equal(t, "bsdf", tag)

	typ, ok := m.Type("BSDF_DIFFUSE")
	assert.True(t, ok)
	assert.Equal(t, "diffuse", typ)

	param, ok := m.Param("BSDF_DIFFUSE", "Color")
	assert.True(t, ok)
	assert.Equal(t, "albedo", param)

	_, ok = m.Param("BSDF_DIFFUSE", "Roughness")
	assert.False(t, ok)
	_, ok = m.Param("EMISSION", "Color")
	assert.False(t, ok)

	scalar, ok := m.Scalar("VALUE")
	assert.True(t, ok)
	assert.Equal(t, "float", scalar)

	assert.False(t, m.Empty())
	assert.Empty(t, m.UnknownKeys())
}

func TestParseMissingTable(t *testing.T) {
	for _, missing := range RequiredTables {
		t.Run(missing, func(t *testing.T) {
			var buf bytes.Buffer
			for _, table := range RequiredTables {
				if table == missing {
					continue
				}
				buf.WriteString("[" + table + "]\n")
			}
			_, err := Parse(buf.Bytes())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestParseEmptyTables(t *testing.T) {
	m, err := Parse([]byte("[node_tag_map]\n[node_map]\n[parameter_map]\n[type_map]\n"))
	require.NoError(t, err)
	assert.True(t, m.Empty())
	assert.NotNil(t, m.Params)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[node_tag_map\n"},
		{"wrong shape", "node_tag_map = 5\n[node_map]\n[parameter_map]\n[type_map]\n"},
		{"nested where flat expected", "[node_tag_map]\nA = { B = \"c\" }\n[node_map]\n[parameter_map]\n[type_map]\n"},
		{"array table", "[[node_map]]\nA = \"b\"\n[node_tag_map]\n[parameter_map]\n[type_map]\n"},
		{"flat parameter entry", "[node_tag_map]\n[node_map]\n[parameter_map]\nBSDF_DIFFUSE = \"albedo\"\n[type_map]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
		})
	}
}

func TestParseWrongShapeMessage(t *testing.T) {
	_, err := Parse([]byte("node_tag_map = 5\n[node_map]\n[parameter_map]\n[type_map]\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "table [node_tag_map] must be a table")
	assert.NotContains(t, err.Error(), "missing")
}

func TestParseUnknownKeys(t *testing.T) {
	m, err := Parse([]byte(sampleTOML + "\n[node_tags]\nX = \"y\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"node_tags"}, m.UnknownKeys())
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.True(t, m.Empty())
	assert.Equal(t, "", m.Source())

	_, ok := m.Tag("BSDF_DIFFUSE")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Source())
	assert.False(t, m.Empty())
}

func TestDefault(t *testing.T) {
	m := Default()
	require.NotNil(t, m)
	assert.Same(t, m, Default())

	for _, kind := range []string{"BSDF_DIFFUSE", "BSDF_GLOSSY", "EMISSION", "TEX_IMAGE"} {
		_, ok := m.Tag(kind)
		assert.True(t, ok, "builtin mapping should tag %s", kind)
	}
	scalar, _ := m.Scalar("RGBA")
	assert.Equal(t, "color", scalar)
}

func TestResolve(t *testing.T) {
	m, err := Resolve(BuiltinName)
	require.NoError(t, err)
	assert.Same(t, Default(), m)

	m, err = Resolve(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))

	m, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Default().Tags, m.Tags)
	assert.Equal(t, Default().Params, m.Params)

	var again bytes.Buffer
	require.NoError(t, m.Encode(&again))
	assert.Equal(t, buf.String(), again.String())
}
