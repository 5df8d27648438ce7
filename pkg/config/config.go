package config

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/thecodec/bento/pkg/errors"
)

// Table names as they appear in the mapping file.
const (
	TableTags    = "node_tag_map"
	TableTypes   = "node_map"
	TableParams  = "parameter_map"
	TableScalars = "type_map"
)

// RequiredTables lists the top-level tables every mapping file must define.
var RequiredTables = []string{TableTags, TableTypes, TableParams, TableScalars}

// Mapping holds the lookup tables for one export run.
// It is read-only after loading and safe for concurrent readers.
type Mapping struct {
	Tags    map[string]string            `toml:"node_tag_map"`
	Types   map[string]string            `toml:"node_map"`
	Params  map[string]map[string]string `toml:"parameter_map"`
	Scalars map[string]string            `toml:"type_map"`

	source  string
	unknown []string
}

// Tag returns the element tag for a node kind.
func (m *Mapping) Tag(kind string) (string, bool) {
	t, ok := m.Tags[kind]
	return t, ok && t != ""
}

// Type returns the type attribute for a node kind.
func (m *Mapping) Type(kind string) (string, bool) {
	t, ok := m.Types[kind]
	return t, ok && t != ""
}

// Param returns the target parameter name for a socket on a node kind.
func (m *Mapping) Param(kind, socket string) (string, bool) {
	p, ok := m.Params[kind][socket]
	return p, ok && p != ""
}

// Scalar returns the scalar tag ("color", "float", ...) for a socket data type.
func (m *Mapping) Scalar(dataType string) (string, bool) {
	s, ok := m.Scalars[dataType]
	return s, ok && s != ""
}

// Empty reports whether the mapping translates nothing.
func (m *Mapping) Empty() bool {
	return len(m.Tags) == 0
}

// Source returns the path the mapping was loaded from, or "" for
// built-in and empty mappings.
func (m *Mapping) Source() string { return m.source }

// UnknownKeys returns top-level keys in the file that no table consumed.
// They are not an error but usually indicate a typo in a table name.
func (m *Mapping) UnknownKeys() []string { return m.unknown }

// Load reads a mapping file from path.
// A missing file yields an empty mapping and no error.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Mapping{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.source = path
	return m, nil
}

// Parse decodes and validates mapping tables from TOML data.
func Parse(data []byte) (*Mapping, error) {
	var m Mapping
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode mapping")
	}
	for _, table := range RequiredTables {
		if !md.IsDefined(table) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "missing required table [%s]", table)
		}
		if md.Type(table) != "Hash" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "table [%s] must be a table, got %s", table, md.Type(table))
		}
	}
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == TableParams && md.Type(key...) != "Hash" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "[%s] entry %q must be a table, got %s", TableParams, key[1], md.Type(key...))
		}
	}
	for _, key := range md.Undecoded() {
		if len(key) == 1 {
			m.unknown = append(m.unknown, key.String())
		}
	}
	m.normalize()
	return &m, nil
}

// Encode writes the mapping as TOML. Keys are sorted, so the output is stable.
func (m *Mapping) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode mapping")
	}
	return nil
}

// normalize replaces nil tables with empty ones so lookups never
// distinguish "table absent" from "key absent".
func (m *Mapping) normalize() {
	if m.Tags == nil {
		m.Tags = map[string]string{}
	}
	if m.Types == nil {
		m.Types = map[string]string{}
	}
	if m.Params == nil {
		m.Params = map[string]map[string]string{}
	}
	if m.Scalars == nil {
		m.Scalars = map[string]string{}
	}
}
