package vision

// opaqueCutoff is the accumulated-transparency level below which a traced
// path is treated as fully blocked.
const opaqueCutoff = 0.1

// TraceResult reports what a line trace through the world encountered.
type TraceResult struct {
	Hit          bool      // did the line stop on an obstacle?
	HitCell      GridCoord // cell that stopped it
	HitPoint     Vec3      // world-space center of the blocking cell
	Distance     float64   // cells traveled before the stop, or full length
	Transparency float64   // product of per-cell transparencies passed through
}

// TraceLine visits every grid cell on the straight path from start to end,
// in order, start cell first. It is a 3D generalization of Bresenham's line:
// the axis with the largest delta drives, one step per iteration, with
// double-delta error accumulators for the other two axes. Ties between axes
// resolve x-then-y-then-z, so cell order is deterministic for any pair of
// endpoints. The visitor receives each cell and its Euclidean distance from
// start; returning false stops the trace.
func TraceLine(start, end GridCoord, visit func(c GridCoord, dist float64) bool) {
	dx := abs(end.X - start.X)
	dy := abs(end.Y - start.Y)
	dz := abs(end.Z - start.Z)

	xs := step(start.X, end.X)
	ys := step(start.Y, end.Y)
	zs := step(start.Z, end.Z)

	cur := start
	if !visit(cur, 0) {
		return
	}

	switch {
	case dx >= dy && dx >= dz:
		p1 := 2*dy - dx
		p2 := 2*dz - dx
		for cur.X != end.X {
			cur.X += xs
			if p1 >= 0 {
				cur.Y += ys
				p1 -= 2 * dx
			}
			if p2 >= 0 {
				cur.Z += zs
				p2 -= 2 * dx
			}
			p1 += 2 * dy
			p2 += 2 * dz
			if !visit(cur, start.Distance(cur)) {
				return
			}
		}
	case dy >= dx && dy >= dz:
		p1 := 2*dx - dy
		p2 := 2*dz - dy
		for cur.Y != end.Y {
			cur.Y += ys
			if p1 >= 0 {
				cur.X += xs
				p1 -= 2 * dy
			}
			if p2 >= 0 {
				cur.Z += zs
				p2 -= 2 * dy
			}
			p1 += 2 * dx
			p2 += 2 * dz
			if !visit(cur, start.Distance(cur)) {
				return
			}
		}
	default:
		p1 := 2*dy - dz
		p2 := 2*dx - dz
		for cur.Z != end.Z {
			cur.Z += zs
			if p1 >= 0 {
				cur.Y += ys
				p1 -= 2 * dz
			}
			if p2 >= 0 {
				cur.X += xs
				p2 -= 2 * dz
			}
			p1 += 2 * dy
			p2 += 2 * dx
			if !visit(cur, start.Distance(cur)) {
				return
			}
		}
	}
}

// LineTiles returns every cell the line from start to end passes through.
func LineTiles(start, end GridCoord) []GridCoord {
	tiles := make([]GridCoord, 0, int(start.Distance(end))+1)
	TraceLine(start, end, func(c GridCoord, _ float64) bool {
		tiles = append(tiles, c)
		return true
	})
	return tiles
}

// TraceWithOcclusion traces from start to end through the world, stopping on
// the first cell that is both sight-blocking and taller than the observer's
// eye height. Cells shorter than eye height never block; the observer looks
// over them. Transparency of every passed cell multiplies into the running
// product, which only ever decreases; once it drops below opaqueCutoff the
// path is treated as blocked. Cells with no occlusion data are open air.
func TraceWithOcclusion(start, end GridCoord, w World, eyeHeight float64) TraceResult {
	res := TraceResult{Transparency: 1.0}

	TraceLine(start, end, func(c GridCoord, dist float64) bool {
		occ := w.CellOcclusionAt(c)
		if occ == nil {
			return true
		}

		if occ.BlocksSight && eyeHeight < occ.Height {
			res.Hit = true
			res.HitCell = c
			res.Distance = dist
			res.HitPoint = w.GridToWorld(c)
			return false
		}

		res.Transparency *= occ.Transparency
		if res.Transparency < opaqueCutoff {
			res.Hit = true
			res.HitCell = c
			res.Distance = dist
			res.HitPoint = w.GridToWorld(c)
			return false
		}
		return true
	})

	if !res.Hit {
		res.Distance = start.Distance(end)
	}
	return res
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if to > from {
		return 1
	}
	return -1
}
