// Package nori builds and serializes Nori scene documents.
//
// A Nori scene is a small XML dialect: every object is an element whose tag
// names its role (bsdf, emitter, mesh, camera) and whose type attribute
// selects the implementation. Parameters are leaf elements whose tag is the
// value kind:
//
//	<bsdf type="diffuse">
//	  <color name="albedo" value="0.8,0.8,0.8"/>
//	</bsdf>
//
// [Element] is the in-memory tree. [Write] serializes it with an XML
// declaration, two-space indentation and self-closing empty elements;
// output is byte-for-byte deterministic for a given tree.
//
// [Assembler] builds the top-level <scene> document from exported meshes,
// translated materials, the camera, and point lights.
//
// # Number Formatting
//
// [Round] rounds at a fixed number of decimals using the exact binary value
// of its argument; exact ties go to the even digit. [FormatFloat]
// prints the shortest representation that round-trips, always with at
// least one fractional digit ("1.0", "0.25"), switching to exponent form
// below 1e-4 and at or above 1e16. Golden files depend on these rules.
package nori
