// Package scene is Bento's host-independent model of a 3D scene.
//
// A host application (or a test) fills these types with already-evaluated
// data: meshes are final polygons in object space, materials are shader
// node graphs, and every object carries its world matrix. Nothing in this
// package performs I/O; see package io for reading scene description files.
//
// # Node Graphs
//
// A [Material] owns its [Node] values. Each node has ordered input
// [Socket] values, and each socket has zero or more [Link] values pointing
// at the node that feeds it. Node identity is pointer identity: the same
// *Node may be reachable through several links.
//
// Scene values are read-only once built. Exporters never modify them, so a
// scene may be shared by concurrent readers.
package scene
