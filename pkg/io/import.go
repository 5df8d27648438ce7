package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thecodec/bento/pkg/errors"
	"github.com/thecodec/bento/pkg/scene"
)

// Format identifies a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor returns the scene format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene file extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
}

// ImportScene reads and resolves the scene file at path.
// The returned scene's Source is set to path.
func ImportScene(path string) (*scene.Scene, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	s, err := ReadScene(f, format)
	if err != nil {
		return nil, err
	}
	s.Source = path
	return s, nil
}

// ReadScene decodes a scene in the given format from r.
func ReadScene(r io.Reader, format Format) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read scene")
	}

	var file sceneFile
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&file)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", format)
	}
	return resolve(&file)
}
