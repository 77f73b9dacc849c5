package scene

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/session"
)

// Kind distinguishes transform nodes from shape nodes.
type Kind string

const (
	KindTransform Kind = "transform"
	KindShape     Kind = "shape"
)

// Attribute names.
const (
	AttrWidth      = "width"
	AttrHeight     = "height"
	AttrDepth      = "depth"
	AttrTranslateX = "translateX"
	AttrTranslateY = "translateY"
	AttrTranslateZ = "translateZ"
	AttrRotateX    = "rotateX"
	AttrRotateY    = "rotateY"
	AttrRotateZ    = "rotateZ"
)

var transformAttrs = []string{AttrTranslateX, AttrTranslateY, AttrTranslateZ, AttrRotateX, AttrRotateY, AttrRotateZ}

// AttributeName returns the attribute written for c.
func AttributeName(c params.Channel) string {
	switch c {
	case params.SizeX:
		return AttrWidth
	case params.SizeY:
		return AttrDepth
	case params.SizeZ:
		return AttrHeight
	case params.Height:
		return AttrTranslateY
	case params.RotateX:
		return AttrRotateX
	case params.RotateY:
		return AttrRotateY
	case params.RotateZ:
		return AttrRotateZ
	default:
		return ""
	}
}

// Object is a node in the scene.
type Object struct {
	Handle session.Handle     `json:"handle"`
	Kind   Kind               `json:"kind"`
	Parent session.Handle     `json:"parent,omitempty"`
	Attrs  map[string]float64 `json:"attrs"`
}

func (o *Object) clone() *Object {
	c := *o
	c.Attrs = make(map[string]float64, len(o.Attrs))
	for k, v := range o.Attrs {
		c.Attrs[k] = v
	}
	return &c
}

// Memory is a thread-safe in-memory scene.
type Memory struct {
	mu        sync.RWMutex
	objects   map[session.Handle]*Object
	order     []session.Handle
	selection []session.Handle
}

// NewMemory returns an empty scene.
func NewMemory() *Memory {
	return &Memory{objects: make(map[session.Handle]*Object)}
}

// CreateBox adds a transform named tile_<id> and a child shape named
// tile_<id>Shape. size holds width, depth and height.
func (m *Memory) CreateBox(size layout.Vec3) (session.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.newHandle("tile_")
	shape := h + "Shape"
	m.add(&Object{Handle: h, Kind: KindTransform, Attrs: zeroAttrs(transformAttrs)})
	m.add(&Object{
		Handle: shape,
		Kind:   KindShape,
		Parent: h,
		Attrs: map[string]float64{
			AttrWidth:  size.X,
			AttrDepth:  size.Y,
			AttrHeight: size.Z,
		},
	})
	return h, nil
}

// AddTransform adds a transform without a shape, e.g. a locator or group.
// It cannot be regenerated.
func (m *Memory) AddTransform(name string) (session.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := session.Handle(name)
	if h == "" {
		h = m.newHandle("null_")
	}
	if _, ok := m.objects[h]; ok {
		return "", tgerrors.New(tgerrors.ErrCodeInvalidInput, "object %q already exists", h)
	}
	m.add(&Object{Handle: h, Kind: KindTransform, Attrs: zeroAttrs(transformAttrs)})
	return h, nil
}

// Move sets translateX/Y/Z of h.
func (m *Memory) Move(h session.Handle, pos layout.Vec3) error {
	return m.setAll(h, KindTransform, map[string]float64{
		AttrTranslateX: pos.X,
		AttrTranslateY: pos.Y,
		AttrTranslateZ: pos.Z,
	})
}

// Rotate sets rotateX/Y/Z of h.
func (m *Memory) Rotate(h session.Handle, rot layout.Vec3) error {
	return m.setAll(h, KindTransform, map[string]float64{
		AttrRotateX: rot.X,
		AttrRotateY: rot.Y,
		AttrRotateZ: rot.Z,
	})
}

// Delete removes h and its children.
func (m *Memory) Delete(h session.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[h]; !ok {
		return tgerrors.New(tgerrors.ErrCodeNotFound, "no object %q", h)
	}
	gone := map[session.Handle]bool{h: true}
	for _, o := range m.objects {
		if o.Parent == h {
			gone[o.Handle] = true
		}
	}
	for g := range gone {
		delete(m.objects, g)
	}
	m.order = slices.DeleteFunc(m.order, func(x session.Handle) bool { return gone[x] })
	m.selection = slices.DeleteFunc(m.selection, func(x session.Handle) bool { return gone[x] })
	return nil
}

// Exists reports whether h is in the scene.
func (m *Memory) Exists(h session.Handle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[h]
	return ok
}

// SetAttribute writes the attribute backing c on h. Size channels are only
// accepted on shapes and the others only on transforms.
func (m *Memory) SetAttribute(h session.Handle, c params.Channel, value float64) error {
	name := AttributeName(c)
	if name == "" {
		return tgerrors.New(tgerrors.ErrCodeInvalidInput, "unknown channel %d", int(c))
	}
	kind := KindTransform
	if c.IsSize() {
		kind = KindShape
	}
	return m.setAll(h, kind, map[string]float64{name: value})
}

// ResolveSizeTarget returns the shape of transform h.
func (m *Memory) ResolveSizeTarget(h session.Handle) (session.Handle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[h]
	if !ok || o.Kind != KindTransform {
		return "", false
	}
	for _, c := range m.order {
		if child := m.objects[c]; child.Parent == h && child.Kind == KindShape {
			return c, true
		}
	}
	return "", false
}

// Attribute reads a single attribute.
func (m *Memory) Attribute(h session.Handle, name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[h]
	if !ok {
		return 0, false
	}
	v, ok := o.Attrs[name]
	return v, ok
}

// Object returns a copy of h.
func (m *Memory) Object(h session.Handle) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[h]
	if !ok {
		return Object{}, false
	}
	return *o.clone(), true
}

// Objects returns copies of every object in creation order.
func (m *Memory) Objects() []Object {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Object, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, *m.objects[h].clone())
	}
	return out
}

// Transforms returns the handles of all transforms in creation order.
func (m *Memory) Transforms() []session.Handle {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []session.Handle
	for _, h := range m.order {
		if m.objects[h].Kind == KindTransform {
			out = append(out, h)
		}
	}
	return out
}

// Select replaces the selection. Unknown handles fail with NOT_FOUND and
// leave the selection unchanged.
func (m *Memory) Select(handles ...session.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range handles {
		if _, ok := m.objects[h]; !ok {
			return tgerrors.New(tgerrors.ErrCodeNotFound, "no object %q", h)
		}
	}
	m.selection = slices.Clone(handles)
	return nil
}

// CurrentSelection returns the selected handles in selection order.
func (m *Memory) CurrentSelection() ([]session.Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.selection), nil
}

func (m *Memory) setAll(h session.Handle, kind Kind, attrs map[string]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.objects[h]
	if !ok {
		return tgerrors.New(tgerrors.ErrCodeNotFound, "no object %q", h)
	}
	if o.Kind != kind {
		return tgerrors.New(tgerrors.ErrCodeInvalidInput, "%s %q has no such attribute", o.Kind, h)
	}
	for k, v := range attrs {
		o.Attrs[k] = v
	}
	return nil
}

func (m *Memory) add(o *Object) {
	m.objects[o.Handle] = o
	m.order = append(m.order, o.Handle)
}

// newHandle returns an unused handle with a short random suffix.
// Callers hold m.mu.
func (m *Memory) newHandle(prefix string) session.Handle {
	for {
		id := uuid.New()
		h := session.Handle(prefix + id.String()[:8])
		_, taken := m.objects[h]
		_, shapeTaken := m.objects[h+"Shape"]
		if !taken && !shapeTaken {
			return h
		}
	}
}

func zeroAttrs(names []string) map[string]float64 {
	attrs := make(map[string]float64, len(names))
	for _, n := range names {
		attrs[n] = 0
	}
	return attrs
}

var (
	_ session.SceneAPI     = (*Memory)(nil)
	_ session.SelectionAPI = (*Memory)(nil)
)
