package vision

import "math"

// shadowCasterCutoff: a cell taller than the eye still lets light through
// when its transparency is at least this value (clean glass casts no shadow).
const shadowCasterCutoff = 0.9

// FOVResult is the materialized output of a field-of-view calculation:
// parallel slices in first-visit order, one visibility factor per cell.
type FOVResult struct {
	VisibleCells      []GridCoord
	VisibilityFactors []float64
}

// octants are the eight directional sweeps that decompose the 360° field.
// Within one octant, a cell is origin + (col·dx, row·dy).
var octants = [8][2]int{
	{1, 0},   // east
	{0, 1},   // north
	{-1, 0},  // west
	{0, -1},  // south
	{1, 1},   // northeast
	{-1, 1},  // northwest
	{-1, -1}, // southwest
	{1, -1},  // southeast
}

// CalculateFOV returns every cell visible from pos within the observer's
// effective range, each tagged with a visibility factor in [0, 1]. Cells
// reached by more than one octant keep their maximum factor. A blind
// observer sees nothing.
func CalculateFOV(pos Vec3, cp Capability, env Environment, w World, focused bool) FOVResult {
	var res FOVResult
	index := make(map[GridCoord]int)

	CalculateFOVWithCallback(pos, cp, env, w, focused, func(c GridCoord, visibility float64) {
		if i, seen := index[c]; seen {
			if visibility > res.VisibilityFactors[i] {
				res.VisibilityFactors[i] = visibility
			}
			return
		}
		index[c] = len(res.VisibleCells)
		res.VisibleCells = append(res.VisibleCells, c)
		res.VisibilityFactors = append(res.VisibilityFactors, visibility)
	})

	return res
}

// CalculateFOVWithCallback is the streaming variant of CalculateFOV: fn is
// invoked synchronously for every visible cell. A cell on an octant seam may
// be reported more than once, with possibly different factors; the caller
// decides how to reconcile duplicates. The origin cell is always reported
// first with factor 1.0.
func CalculateFOVWithCallback(pos Vec3, cp Capability, env Environment, w World, focused bool, fn func(c GridCoord, visibility float64)) {
	if cp.Blind {
		return
	}

	origin := w.WorldToGrid(pos)
	maxRange := cp.EffectiveRange(env, focused)

	fn(origin, 1.0)

	for _, oct := range octants {
		castOctant(origin, w, cp.EyeHeight, maxRange, env, fn, oct[0], oct[1])
	}
}

// castOctant sweeps one octant row by row, outward from the origin, until
// either the range is exhausted or the accumulated shadow covers the whole
// [-1, 1] slope span. Transparency of occluders accumulates across the rows
// of this octant and dims everything seen behind them.
func castOctant(origin GridCoord, w World, eyeHeight, maxRange float64, env Environment, fn func(GridCoord, float64), dx, dy int) {
	var shadows shadowList
	transparency := 1.0

	maxRow := int(math.Ceil(maxRange))
	for row := 1; row <= maxRow; row++ {
		castRow(origin, w, eyeHeight, maxRange, env, fn, row, &shadows, &transparency, dx, dy)
		if shadows.full() {
			return
		}
	}
}

// castRow visits one distance band of an octant. Cells whose corner slopes
// both fall inside recorded shadow are skipped without a callback; every
// other cell in range is reported, and occluders extend the shadow list.
func castRow(origin GridCoord, w World, eyeHeight, maxRange float64, env Environment, fn func(GridCoord, float64), row int, shadows *shadowList, transparency *float64, dx, dy int) {
	// Column span bounded by the initial [-1, 1] slope interval.
	for col := -row; col <= row; col++ {
		cell := GridCoord{
			X: origin.X + col*dx,
			Y: origin.Y + row*dy,
			Z: origin.Z,
		}

		dist := math.Sqrt(float64(col*col + row*row))
		if dist > maxRange {
			continue
		}

		left := cellSlope(col, row, -0.5)
		right := cellSlope(col, row, 0.5)
		if shadows.contains(left) && shadows.contains(right) {
			continue
		}

		fn(cell, visibilityFactor(dist, *transparency, env))

		occ := w.CellOcclusionAt(cell)
		if occ != nil && castsShadow(occ, eyeHeight) {
			shadows.add(shadowInterval{start: left, end: right})
			*transparency *= occ.Transparency
		}
	}
}

// cellSlope is the slope from the origin to a cell corner, offset ±0.5
// columns from the cell center.
func cellSlope(col, row int, colOffset float64) float64 {
	if row == 0 {
		return 0
	}
	return (float64(col) + colOffset) / (float64(row) + 0.5)
}

// castsShadow reports whether a cell blocks light for shadow propagation.
// Cells at or below eye height never do; opaque cells always do; tall
// see-through cells only when dirty enough to matter.
func castsShadow(occ *CellOcclusion, eyeHeight float64) bool {
	if occ.Height <= eyeHeight {
		return false
	}
	if occ.BlocksSight {
		return true
	}
	return occ.Transparency < shadowCasterCutoff
}

// visibilityFactor grades one visible cell: a gentle linear distance falloff
// floored at 0.1, dimmed by whatever the sight line has already passed
// through and by the current weather, clamped to [0, 1].
func visibilityFactor(dist, transparency float64, env Environment) float64 {
	v := math.Max(0.1, 1-dist*0.01)
	v *= transparency
	v *= env.WeatherVisibilityModifier()
	return clamp01(v)
}
