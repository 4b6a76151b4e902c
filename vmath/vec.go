package vmath

import "math"

// Vec3F is a float64 3D vector; the spatial index reads X and Z as the horizontal plane
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// PlanarDistSq returns the squared distance on the X/Z plane
func PlanarDistSq(a, b Vec3F) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// Int2 is an integer 2D coordinate used for world cells, grid cells and chunks
type Int2 struct {
	X, Y int32
}

func I2Add(a, b Int2) Int2 {
	return Int2{a.X + b.X, a.Y + b.Y}
}

// I2Shr applies an arithmetic right shift to both axes (floors negatives)
func I2Shr(v Int2, bits uint) Int2 {
	return Int2{v.X >> bits, v.Y >> bits}
}

// I2Shl applies a left shift to both axes
func I2Shl(v Int2, bits uint) Int2 {
	return Int2{v.X << bits, v.Y << bits}
}

// FloorPlanar floors the horizontal components of a position into an integer cell
// Components beyond the int32 range saturate; NaN maps to 0.
func FloorPlanar(v Vec3F) Int2 {
	return Int2{floorInt32(v.X), floorInt32(v.Z)}
}

// PlanarInRange reports whether both horizontal components floor without clamping
func PlanarInRange(v Vec3F) bool {
	return inInt32(v.X) && inInt32(v.Z)
}

func inInt32(f float64) bool {
	return f >= math.MinInt32 && f < math.MaxInt32+1
}

func floorInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f < math.MinInt32:
		return math.MinInt32
	case f >= math.MaxInt32+1:
		return math.MaxInt32
	}
	return int32(math.Floor(f))
}
