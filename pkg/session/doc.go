// Package session orchestrates tile generation against a host scene.
//
// # Overview
//
// A [Session] owns the list of tiles it created and exposes the two user
// actions of the tool:
//
//   - [Session.Generate] lays out a fresh grid (package layout) and creates one
//     box per placement through the host [SceneAPI]
//   - [Session.Regenerate] redraws size, height and rotation for a selection
//     of existing objects, skipping channels marked keep-on-regenerate
//
// [Session.Clear] removes previously generated tiles; Generate calls it first
// when the parameter set asks to clear before generating.
//
// # Host Collaborators
//
// The scene graph is reached only through [SceneAPI] and [SelectionAPI]. How a
// [params.Channel] maps onto a host attribute, and how an object's size-bearing
// shape is found, are adapter concerns (see package scene for an in-memory
// adapter).
//
// # Failure Semantics
//
// Generate aborts on the first host failure and returns an EXTERNAL error;
// tiles created before the failure stay tracked so that a later Clear removes
// them. Nothing is rolled back. Regenerate treats objects independently: a
// failed write is recorded and processing continues with the next channel
// and the next object.
//
// A Session is not safe for concurrent use.
package session
