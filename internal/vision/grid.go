// Package vision computes tile-grid visibility: shadow-casting field of view,
// 3D line tracing with transparency accumulation, and graded line-of-sight
// checks between world positions. The package is stateless; every query takes
// its inputs explicitly and returns a fresh result, so observers can be
// processed in parallel against a read-only world.
package vision

import "math"

// GridCoord identifies one cell of the infinite sparse 3D grid.
// Comparable, so it can be used directly as a map key.
type GridCoord struct {
	X, Y, Z int
}

// Distance returns the 3D Euclidean distance between two cell coordinates.
func (c GridCoord) Distance(o GridCoord) float64 {
	dx := float64(o.X - c.X)
	dy := float64(o.Y - c.Y)
	dz := float64(o.Z - c.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Vec3 is a world-space position or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Scale returns v multiplied component-wise by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// CellOcclusion is the sight-relevant data one grid cell exposes.
// A nil *CellOcclusion from the world means open air: no blocking,
// no attenuation.
type CellOcclusion struct {
	BlocksSight  bool    // fully opaque obstacle
	Transparency float64 // 0 = opaque, 1 = perfectly clear (windows, light foliage)
	Height       float64 // physical obstruction height in world units
	IsFoliage    bool    // vegetation; treated as ordinary transparency here
}

// World is the read-only contract the vision core needs from a tile world.
// Implementations must be safe for concurrent reads if observers are
// processed in parallel.
type World interface {
	// CellOcclusionAt returns the occlusion data for a cell, or nil when the
	// cell is empty air. Absent data is a normal state, never an error.
	CellOcclusionAt(c GridCoord) *CellOcclusion

	// WorldToGrid maps a world position to the cell containing it.
	WorldToGrid(p Vec3) GridCoord

	// GridToWorld returns the world-space center of a cell. It is the
	// inverse of WorldToGrid up to cell-center rounding.
	GridToWorld(c GridCoord) Vec3
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
