// Package pkg provides the core libraries for Bento, a scene exporter for
// the Nori educational renderer.
//
// # Overview
//
// Bento turns an evaluated scene (camera, materials with shader node graphs,
// mesh objects, lamps) into the files Nori reads: a scene.xml document,
// one OBJ file per mesh and material slot, and converted image textures.
// The heart of the exporter is the material graph translator, which walks
// each material's node graph from its output node and emits nested Nori
// elements according to a user-editable TOML mapping.
//
// # Architecture
//
// The typical data flow through Bento:
//
//	Scene description (YAML/JSON)
//	         ↓
//	    [io] package (decode + resolve node links)
//	         ↓
//	    [scene] package (evaluated scene model)
//	         ↓
//	    [material] + [mesh] + [texture] (translate, split, convert)
//	         ↓
//	    [nori] package (assemble + serialize)
//	         ↓
//	    scene.xml, meshes/*.obj, textures/*
//
// # Quick Start
//
// Translate a single material with the built-in mapping:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/thecodec/bento/pkg/config"
//	    "github.com/thecodec/bento/pkg/io"
//	    "github.com/thecodec/bento/pkg/material"
//	    "github.com/thecodec/bento/pkg/nori"
//	)
//
//	s, _ := io.ImportScene("scene.yaml")
//	tr := material.New(config.Default(), material.Options{})
//	el, outcome := tr.Translate(context.Background(), s.Material("Red"))
//	if outcome == material.Translated {
//	    nori.Write(os.Stdout, el)
//	}
//
// Export a whole scene:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Export(ctx, s, pipeline.Options{OutputPath: "out/scene.xml"})
//
// # Main Packages
//
// [config] - Mapping tables (node tags, node types, parameter names, scalar
// types) loaded from TOML, plus the bundled default mapping.
//
// [scene] - The scene model: materials, nodes, sockets, links, objects.
//
// [io] - Scene description decoding (YAML and JSON) and name resolution.
//
// [material] - The material graph translator and its per-kind overrides
// (emission, glossy, image texture).
//
// [mesh] - Submesh splitting by material slot and OBJ writing.
//
// [texture] - Image texture conversion with content-hash caching.
//
// [nori] - The output element tree, number formatting, and scene assembly.
//
// [pipeline] - Export options and the staged export runner used by the CLI.
//
// [render] - Material graph diagrams ([render/dot]) and SVG conversion.
//
// ## Infrastructure
//
// [cache] - File and null caches with key derivation for texture outputs.
//
// [observability] - Hooks for export stages, materials and cache lookups.
//
// [errors] - Structured error codes shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/material/...           # Specific package
//
// [config]: https://pkg.go.dev/github.com/thecodec/bento/pkg/config
// [scene]: https://pkg.go.dev/github.com/thecodec/bento/pkg/scene
// [io]: https://pkg.go.dev/github.com/thecodec/bento/pkg/io
// [material]: https://pkg.go.dev/github.com/thecodec/bento/pkg/material
// [mesh]: https://pkg.go.dev/github.com/thecodec/bento/pkg/mesh
// [texture]: https://pkg.go.dev/github.com/thecodec/bento/pkg/texture
// [nori]: https://pkg.go.dev/github.com/thecodec/bento/pkg/nori
// [pipeline]: https://pkg.go.dev/github.com/thecodec/bento/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/thecodec/bento/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/thecodec/bento/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/thecodec/bento/pkg/cache
// [observability]: https://pkg.go.dev/github.com/thecodec/bento/pkg/observability
// [errors]: https://pkg.go.dev/github.com/thecodec/bento/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/thecodec/bento/pkg/buildinfo
package pkg
