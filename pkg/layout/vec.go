package layout

// Vec3 is a world-space vector. For positions X runs along the columns, Y is
// the vertical height offset and Z runs along the rows.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Min returns the component-wise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 { return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)} }

// Max returns the component-wise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 { return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)} }
