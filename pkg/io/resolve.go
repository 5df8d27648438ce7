package io

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/scene"
)

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidScene, format, args...)
}

func resolve(f *sceneFile) (*scene.Scene, error) {
	s := &scene.Scene{
		Render: scene.Render{
			Engine:  f.Render.Engine,
			Samples: f.Render.Samples,
			Width:   f.Render.Width,
			Height:  f.Render.Height,
		},
	}

	if f.Camera != nil {
		m, err := matrix(f.Camera.MatrixWorld)
		if err != nil {
			return nil, invalid("camera %q: %v", f.Camera.Name, err)
		}
		s.Camera = &scene.Camera{Name: f.Camera.Name, Angle: f.Camera.Angle, MatrixWorld: m}
	}

	for i := range f.Materials {
		m, err := resolveMaterial(&f.Materials[i])
		if err != nil {
			return nil, err
		}
		s.Materials = append(s.Materials, m)
	}

	for i := range f.Objects {
		obj, err := resolveObject(&f.Objects[i])
		if err != nil {
			return nil, err
		}
		s.Objects = append(s.Objects, obj)
	}
	return s, nil
}

func resolveMaterial(f *materialFile) (*scene.Material, error) {
	m := &scene.Material{Name: f.Name, UseNodes: f.UseNodes}
	byName := make(map[string]*scene.Node, len(f.Nodes))

	// Create every node first so links may point forward.
	for i := range f.Nodes {
		nf := &f.Nodes[i]
		if nf.Name == "" {
			return nil, invalid("material %q: node %d has no name", f.Name, i)
		}
		if _, dup := byName[nf.Name]; dup {
			return nil, invalid("material %q: duplicate node name %q", f.Name, nf.Name)
		}
		n := &scene.Node{Name: nf.Name, Kind: nf.Kind}
		if nf.Image != nil {
			img, err := resolveImage(nf.Image)
			if err != nil {
				return nil, invalid("material %q: node %q: %v", f.Name, nf.Name, err)
			}
			n.Image = img
		}
		byName[nf.Name] = n
		m.Nodes = append(m.Nodes, n)
	}

	for i := range f.Nodes {
		nf := &f.Nodes[i]
		n := m.Nodes[i]
		for _, sf := range nf.Inputs {
			def, err := value(sf.Type, sf.Default)
			if err != nil {
				return nil, invalid("material %q: node %q: socket %q: %v", f.Name, nf.Name, sf.Name, err)
			}
			s := &scene.Socket{Name: sf.Name, Type: sf.Type, Default: def}
			for _, lf := range sf.Links {
				from, ok := byName[lf.From]
				if !ok {
					return nil, invalid("material %q: node %q: socket %q links unknown node %q", f.Name, nf.Name, sf.Name, lf.From)
				}
				s.Links = append(s.Links, scene.Link{From: from, FromSocket: lf.Socket})
			}
			n.Inputs = append(n.Inputs, s)
		}
	}
	return m, nil
}

func resolveImage(f *imageFile) (*scene.Image, error) {
	img := &scene.Image{Name: f.Name, Path: f.Path}
	if f.Data != "" {
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return nil, fmt.Errorf("image %q: decode data: %w", f.Name, err)
		}
		img.Data = data
	}
	if img.Path == "" && img.Data == nil {
		return nil, fmt.Errorf("image %q has neither path nor data", f.Name)
	}
	return img, nil
}

func resolveObject(f *objectFile) (*scene.Object, error) {
	m, err := matrix(f.MatrixWorld)
	if err != nil {
		return nil, invalid("object %q: %v", f.Name, err)
	}
	obj := &scene.Object{Name: f.Name, Type: f.Type, MatrixWorld: m}

	switch len(f.Location) {
	case 0:
		obj.Location = m.Col(3).Vec3()
	case 3:
		obj.Location = mgl64.Vec3{f.Location[0], f.Location[1], f.Location[2]}
	default:
		return nil, invalid("object %q: location needs 3 components, got %d", f.Name, len(f.Location))
	}

	if f.Mesh != nil {
		mesh, err := resolveMesh(f.Mesh)
		if err != nil {
			return nil, invalid("object %q: %v", f.Name, err)
		}
		obj.Mesh = mesh
	}
	if f.Light != nil {
		l := &scene.Light{Type: f.Light.Type, Energy: f.Light.Energy, Normalize: f.Light.Normalize}
		switch len(f.Light.Color) {
		case 0:
			l.Color = mgl64.Vec3{1, 1, 1}
		case 3, 4:
			l.Color = mgl64.Vec3{f.Light.Color[0], f.Light.Color[1], f.Light.Color[2]}
		default:
			return nil, invalid("object %q: light color needs 3 components, got %d", f.Name, len(f.Light.Color))
		}
		obj.Light = l
	}
	return obj, nil
}

func resolveMesh(f *meshFile) (*scene.Mesh, error) {
	m := &scene.Mesh{Materials: f.Materials}
	for i, v := range f.Vertices {
		if len(v) != 3 {
			return nil, fmt.Errorf("vertex %d needs 3 components, got %d", i, len(v))
		}
		m.Vertices = append(m.Vertices, mgl64.Vec3{v[0], v[1], v[2]})
	}
	for i, uv := range f.UVs {
		if len(uv) != 2 {
			return nil, fmt.Errorf("uv %d needs 2 components, got %d", i, len(uv))
		}
		m.UVs = append(m.UVs, mgl64.Vec2{uv[0], uv[1]})
	}
	for i, ff := range f.Faces {
		if len(ff.Vertices) < 3 {
			return nil, fmt.Errorf("face %d has %d vertices", i, len(ff.Vertices))
		}
		for _, vi := range ff.Vertices {
			if vi < 0 || vi >= len(m.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, vi)
			}
		}
		if len(ff.UV) > 0 {
			if len(ff.UV) != len(ff.Vertices) {
				return nil, fmt.Errorf("face %d: %d uv indices for %d vertices", i, len(ff.UV), len(ff.Vertices))
			}
			for _, ui := range ff.UV {
				if ui < 0 || ui >= len(m.UVs) {
					return nil, fmt.Errorf("face %d: uv index %d out of range", i, ui)
				}
			}
		}
		if ff.Material < 0 || (len(m.Materials) > 0 && ff.Material >= len(m.Materials)) {
			return nil, fmt.Errorf("face %d: material index %d out of range", i, ff.Material)
		}
		m.Faces = append(m.Faces, scene.Face{Vertices: ff.Vertices, UV: ff.UV, Material: ff.Material})
	}
	return m, nil
}

// matrix converts four rows into a matrix. An empty list is the identity.
func matrix(rows [][]float64) (mgl64.Mat4, error) {
	if len(rows) == 0 {
		return mgl64.Ident4(), nil
	}
	if len(rows) != 4 {
		return mgl64.Mat4{}, fmt.Errorf("matrix_world needs 4 rows, got %d", len(rows))
	}
	var r [4]mgl64.Vec4
	for i, row := range rows {
		if len(row) != 4 {
			return mgl64.Mat4{}, fmt.Errorf("matrix_world row %d needs 4 values, got %d", i, len(row))
		}
		r[i] = mgl64.Vec4{row[0], row[1], row[2], row[3]}
	}
	return mgl64.Mat4FromRows(r[0], r[1], r[2], r[3]), nil
}

// value converts a decoded default into a typed socket value.
func value(socketType string, raw any) (scene.Value, error) {
	if raw == nil {
		return scene.Value{}, nil
	}
	switch socketType {
	case "INT":
		f, ok := number(raw)
		if !ok || f != math.Trunc(f) {
			return scene.Value{}, fmt.Errorf("INT default must be an integer, got %v", raw)
		}
		return scene.Int(int64(f)), nil
	case "BOOLEAN":
		b, ok := raw.(bool)
		if !ok {
			return scene.Value{}, fmt.Errorf("BOOLEAN default must be true or false, got %v", raw)
		}
		return scene.Bool(b), nil
	}

	switch v := raw.(type) {
	case bool:
		return scene.Bool(v), nil
	case string:
		return scene.String(v), nil
	case []any:
		comps := make([]float64, len(v))
		for i, c := range v {
			f, ok := number(c)
			if !ok {
				return scene.Value{}, fmt.Errorf("component %d is not a number: %v", i, c)
			}
			comps[i] = f
		}
		return scene.Vector(comps...), nil
	}
	if f, ok := number(raw); ok {
		return scene.Float(f), nil
	}
	return scene.Value{}, fmt.Errorf("unsupported default %v", raw)
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
