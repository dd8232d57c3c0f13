package vision

import "math"

// partialCutoff splits a hit trace between PartiallyVisible and Blocked by
// its accumulated transparency.
const partialCutoff = 0.5

// LOSResult grades a point-to-point visibility check.
type LOSResult int

const (
	// LOSClear means an unobstructed sight line within range.
	LOSClear LOSResult = iota
	// LOSBlocked means a solid obstacle fully blocks the line.
	LOSBlocked
	// LOSPartial means the target shows through a window or foliage.
	LOSPartial
	// LOSTooFar means the target is beyond the effective vision range.
	LOSTooFar
	// LOSOutOfFOV means the target sits outside the observer's view cone.
	// The core never returns it from CheckLineOfSight; callers compose
	// InFieldOfView and tag their own results with it.
	LOSOutOfFOV
)

func (r LOSResult) String() string {
	switch r {
	case LOSClear:
		return "clear"
	case LOSBlocked:
		return "blocked"
	case LOSPartial:
		return "partial"
	case LOSTooFar:
		return "too-far"
	case LOSOutOfFOV:
		return "out-of-fov"
	}
	return "unknown"
}

// Visible reports whether the grade counts as seeing the target at all.
func (r LOSResult) Visible() bool {
	return r == LOSClear || r == LOSPartial
}

// LOSReport is the detailed answer to one observer→target sight question.
type LOSReport struct {
	Result           LOSResult
	VisibilityFactor float64   // 0 = invisible, 1 = fully visible
	Distance         float64   // world-space observer→target distance
	EffectiveRange   float64   // max range after environmental modifiers
	BlockingCell     GridCoord // cell that blocked vision, when blocked
	TargetPosition   Vec3
}

// CheckLineOfSight answers whether an observer at from can see a target at
// to, without computing a full field of view. Out-of-range targets short-
// circuit to TooFar before any tracing. The sight line starts at the
// observer's eye (from raised by EyeHeight) and is graded by what it passes
// through: Clear, PartiallyVisible behind enough transparency, or Blocked.
func CheckLineOfSight(from, to Vec3, cp Capability, env Environment, w World, focused bool) LOSReport {
	rep := LOSReport{TargetPosition: to}

	rep.EffectiveRange = cp.EffectiveRange(env, focused)
	rep.Distance = to.Sub(from).Length()

	if rep.Distance > rep.EffectiveRange {
		rep.Result = LOSTooFar
		return rep
	}

	eye := from
	eye.Z += cp.EyeHeight

	trace := TraceWithOcclusion(w.WorldToGrid(eye), w.WorldToGrid(to), w, cp.EyeHeight)

	if trace.Hit {
		rep.BlockingCell = trace.HitCell
		if trace.Transparency > partialCutoff {
			rep.Result = LOSPartial
			rep.VisibilityFactor = trace.Transparency
		} else {
			rep.Result = LOSBlocked
		}
		return rep
	}

	rep.Result = LOSClear
	distanceFactor := 1 - rep.Distance/rep.EffectiveRange
	rep.VisibilityFactor = clamp01(distanceFactor * env.WeatherVisibilityModifier() * trace.Transparency)
	return rep
}

// InFieldOfView reports whether target lies inside the forward-facing cone
// of halfAngleDeg degrees around forward. It is orthogonal to occlusion and
// range; callers that need full gating compose it with CheckLineOfSight.
// A target at (or within a millimeter of) the observer's position is
// trivially in view.
func InFieldOfView(pos, forward, target Vec3, halfAngleDeg float64) bool {
	toTarget := target.Sub(pos)
	dist := toTarget.Length()
	if dist < 1e-3 {
		return true
	}
	toTarget = toTarget.Scale(1 / dist)

	cosHalf := math.Cos(halfAngleDeg * math.Pi / 180)
	return forward.Dot(toTarget) >= cosHalf
}
