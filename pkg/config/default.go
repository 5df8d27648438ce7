package config

import (
	_ "embed"
	"sync"
)

//go:embed default.toml
var defaultTOML []byte

var (
	defaultOnce    sync.Once
	defaultMapping *Mapping
)

// BuiltinName selects [Default] wherever a config path is accepted.
const BuiltinName = "builtin"

// Default returns the built-in mapping.
// The returned value is shared; callers must not modify it.
func Default() *Mapping {
	defaultOnce.Do(func() {
		m, err := Parse(defaultTOML)
		if err != nil {
			panic("config: invalid built-in mapping: " + err.Error())
		}
		defaultMapping = m
	})
	return defaultMapping
}

// Resolve loads the mapping named by path, treating [BuiltinName] as [Default].
func Resolve(path string) (*Mapping, error) {
	if path == BuiltinName {
		return Default(), nil
	}
	return Load(path)
}
