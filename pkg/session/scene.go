package session

import (
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// Handle is an opaque reference to a host scene object.
type Handle string

// SceneAPI is the host scene capability used by a Session.
type SceneAPI interface {
	// CreateBox creates a box primitive with width X, depth Y and height Z.
	CreateBox(size layout.Vec3) (Handle, error)
	// Move sets the world position of h.
	Move(h Handle, pos layout.Vec3) error
	// Rotate sets the Euler rotation of h in degrees.
	Rotate(h Handle, rot layout.Vec3) error
	// Delete removes h from the scene.
	Delete(h Handle) error
	// Exists reports whether h still refers to a live object.
	Exists(h Handle) bool
	// SetAttribute writes the host attribute backing channel c.
	SetAttribute(h Handle, c params.Channel, value float64) error
	// ResolveSizeTarget returns the object that carries the size attributes of
	// h. ok is false when h has no such object.
	ResolveSizeTarget(h Handle) (target Handle, ok bool)
}

// SelectionAPI reports the host's current selection.
type SelectionAPI interface {
	CurrentSelection() ([]Handle, error)
}

// Tile is a generated object together with the placement that created it.
type Tile struct {
	Handle    Handle           `json:"handle"`
	Placement layout.Placement `json:"placement"`
}
