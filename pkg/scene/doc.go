// Package scene provides an in-memory host scene for tile sessions.
//
// [Memory] implements both [session.SceneAPI] and [session.SelectionAPI]. It
// models the two-node layout of a typical DCC package: every box is a
// transform node carrying position and rotation, with a child shape node
// carrying width, height and depth. Regeneration resolves a transform to its
// shape through [Memory.ResolveSizeTarget].
//
// # Attributes
//
// Channels map to attribute names as follows:
//
//	SizeX   -> width       (shape)
//	SizeY   -> depth       (shape)
//	SizeZ   -> height      (shape)
//	Height  -> translateY  (transform)
//	RotateX -> rotateX     (transform)
//	RotateY -> rotateY     (transform)
//	RotateZ -> rotateZ     (transform)
//
// # Persistence
//
// A scene and the session tiles bound to it round-trip through a JSON
// [Snapshot], which lets the CLI run generate and regenerate as separate
// invocations against the same file.
package scene
