// Package io loads scene description files into [scene.Scene] values.
//
// # Overview
//
// A scene file is the host-independent snapshot of everything an export
// needs: render settings, the active camera, material node graphs, and
// evaluated object geometry. Files are YAML or JSON; the format is picked
// from the extension. Both formats share the same schema.
//
// # Schema
//
//	render:
//	  engine: CYCLES
//	  samples: 64
//	  width: 640
//	  height: 480
//	camera:
//	  name: Camera
//	  angle: 0.6911           # horizontal field of view, radians
//	  matrix_world:           # four rows; identity when omitted
//	    - [1, 0, 0, 0]
//	    - [0, 1, 0, 0]
//	    - [0, 0, 1, 5]
//	    - [0, 0, 0, 1]
//	materials:
//	  - name: Red
//	    use_nodes: true
//	    nodes:
//	      - name: Material Output
//	        kind: OUTPUT_MATERIAL
//	        inputs:
//	          - name: Surface
//	            type: SHADER
//	            links: [{from: Diffuse, socket: BSDF}]
//	      - name: Diffuse
//	        kind: BSDF_DIFFUSE
//	        inputs:
//	          - {name: Color, type: RGBA, default: [0.8, 0.1, 0.1, 1]}
//	      - name: Image Texture
//	        kind: TEX_IMAGE
//	        image: {name: wood, path: textures/wood.png}
//	objects:
//	  - name: Cube
//	    type: MESH
//	    matrix_world: [...]
//	    mesh:
//	      vertices: [[-1, -1, 0], [1, -1, 0], [1, 1, 0]]
//	      uvs: [[0, 0], [1, 0], [1, 1]]
//	      faces:
//	        - {vertices: [0, 1, 2], uv: [0, 1, 2], material: 0}
//	      materials: [Red]
//	  - name: Lamp
//	    type: LIGHT
//	    location: [0, 0, 4]
//	    light: {type: POINT, color: [1, 1, 1], energy: 100, normalize: true}
//
// # Links
//
// A link's from field names another node of the same material. Node names
// must be unique within a material. Unknown names are rejected with
// [errors.ErrCodeInvalidScene].
//
// # Default Values
//
// A socket's default may be a number, a list of numbers, a boolean, or a
// string. INT sockets always decode to integers and BOOLEAN sockets to
// booleans; any other socket decodes numbers as floats.
//
// # Images
//
// An image either points at a file (path, relative to the scene file unless
// absolute) or carries its bytes inline as base64 (data).
//
// [errors.ErrCodeInvalidScene]: github.com/thecodec/bento/pkg/errors.ErrCodeInvalidScene
package io
